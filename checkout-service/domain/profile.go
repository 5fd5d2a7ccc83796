package domain

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrLookupUnavailable reports that the external identity lookup failed or
// timed out. Callers degrade to a placeholder display; checkout is never
// blocked on it.
var ErrLookupUnavailable = errors.New("recipient details unavailable")

// RecipientProfile is what the external lookup can tell us about a handle
type RecipientProfile struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Followers   int64  `json:"followers"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// ProfileLookup resolves a normalized handle against a third-party
// service. Implementations return ErrLookupUnavailable on any failure.
type ProfileLookup interface {
	Lookup(ctx context.Context, handle string) (*RecipientProfile, error)
}

// NormalizeHandle trims whitespace and a single leading '@'
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
