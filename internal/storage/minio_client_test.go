package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		name        string
		prefix      string
		fileName    string
		contentType string
		wantPrefix  string
		wantSuffix  string
	}{
		{"extension from file name", "listings/l1", "Front.JPG", "image/jpeg", "listings/l1/", ".jpg"},
		{"extension from content type", "listings/l1/", "blob", "image/png", "listings/l1/", ".png"},
		{"no prefix", "", "a.webp", "", "", ".webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ObjectName(tt.prefix, tt.fileName, tt.contentType)
			assert.True(t, strings.HasPrefix(got, tt.wantPrefix), got)
			assert.True(t, strings.HasSuffix(got, tt.wantSuffix), got)
		})
	}

	assert.NotEqual(t, ObjectName("p", "a.jpg", ""), ObjectName("p", "a.jpg", ""))
}

func TestObjectURL(t *testing.T) {
	assert.Equal(t,
		"http://cdn.local:9000/listings/listings/l1/x.jpg",
		ObjectURL("http://cdn.local:9000/", "listings", "listings/l1/x.jpg"))
}
