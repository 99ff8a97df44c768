package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"wrapped not found", fmt.Errorf("listing abc: %w", ErrNotFound), KindNotFound},
		{"forbidden", ErrForbidden, KindForbidden},
		{"conflict", fmt.Errorf("account: %w", ErrConflict), KindConflict},
		{"expired token", ErrTokenExpired, KindTokenExpired},
		{"signature", fmt.Errorf("verify: %w", ErrTokenSignatureInvalid), KindTokenSignatureInvalid},
		{"raw error", errors.New("connection reset"), KindInternal},
		{"internal", ErrInternal, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestIsTokenError(t *testing.T) {
	assert.True(t, IsTokenError(fmt.Errorf("x: %w", ErrTokenMalformed)))
	assert.False(t, IsTokenError(ErrUnauthorized))
}

func TestNewIdentity(t *testing.T) {
	id, ok := NewIdentity("a1", "a@x.com", RoleAdmin)
	assert.True(t, ok)
	assert.True(t, id.IsAdmin())
	assert.True(t, id.Authenticated())

	id, ok = NewIdentity("u1", "u@x.com", RoleUser)
	assert.True(t, ok)
	assert.False(t, id.IsAdmin())
	assert.Equal(t, "user", id.Kind.String())

	_, ok = NewIdentity("u1", "u@x.com", "root")
	assert.False(t, ok)

	assert.False(t, AnonymousIdentity().Authenticated())
}

func TestListingExpired(t *testing.T) {
	now := time.Now()
	l := &Listing{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, l.Expired(now))

	l.ExpiresAt = now.Add(-time.Second)
	assert.True(t, l.Expired(now))

	l.ExpiresAt = time.Time{}
	assert.False(t, l.Expired(now))
}

func TestListingAttributesApply(t *testing.T) {
	l := &Listing{ListingID: "l1", AccountID: "a1", Status: StatusSold, Views: 7}
	ListingAttributes{Title: "Toyota Yaris 2020", Price: 5000000, Mileage: 40000}.Apply(l)

	assert.Equal(t, "Toyota Yaris 2020", l.Title)
	assert.Equal(t, int64(5000000), l.Price)
	assert.Equal(t, StatusSold, l.Status)
	assert.Equal(t, int64(7), l.Views)
	assert.Equal(t, "a1", l.AccountID)
}
