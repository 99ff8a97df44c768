package service

import (
	"context"
	"fmt"

	"autoClassifieds/internal/models"
)

// CanMutateListing is the ownership rule: the caller owns the listing or is an administrator.
func CanMutateListing(identity models.Identity, listing *models.Listing) bool {
	if !identity.Authenticated() || listing == nil {
		return false
	}
	return identity.IsAdmin() || identity.AccountID == listing.AccountID
}

// RequireAdmin fails with ErrForbidden unless the caller is an administrator.
func RequireAdmin(identity models.Identity) error {
	if !identity.IsAdmin() {
		return fmt.Errorf("administrator role required: %w", models.ErrForbidden)
	}
	return nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller stored by WithIdentity, or an anonymous identity.
func IdentityFromContext(ctx context.Context) models.Identity {
	identity, ok := ctx.Value(identityKey{}).(models.Identity)
	if !ok {
		return models.AnonymousIdentity()
	}
	return identity
}
