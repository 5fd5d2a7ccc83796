package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LookupRecipientQuery asks the external collaborator about a handle
type LookupRecipientQuery struct {
	Handle string `json:"handle"`
}

// LookupRecipientResponse carries the lookup result. When the collaborator
// fails, Available is false and Note carries the muted inline message; the
// checkout flow is never blocked on it.
type LookupRecipientResponse struct {
	Handle    string                   `json:"handle"`
	Available bool                     `json:"available"`
	Profile   *domain.RecipientProfile `json:"profile,omitempty"`
	Note      string                   `json:"note,omitempty"`
}

// LookupRecipient use case resolves recipient details, degrading silently
type LookupRecipient struct {
	profileLookup domain.ProfileLookup
}

// NewLookupRecipient creates a new LookupRecipient use case
func NewLookupRecipient(profileLookup domain.ProfileLookup) *LookupRecipient {
	return &LookupRecipient{profileLookup: profileLookup}
}

// Execute looks up the recipient profile
func (uc *LookupRecipient) Execute(ctx context.Context, query *LookupRecipientQuery) (*LookupRecipientResponse, error) {
	handle := domain.NormalizeHandle(query.Handle)
	if handle == "" {
		return nil, errors.New("handle is required")
	}

	profile, err := uc.profileLookup.Lookup(ctx, handle)
	if err != nil {
		log.WithField("handle", handle).WithError(err).Debug("recipient lookup degraded")
		return &LookupRecipientResponse{
			Handle:    handle,
			Available: false,
			Note:      "Details unavailable",
		}, nil
	}

	return &LookupRecipientResponse{
		Handle:    handle,
		Available: true,
		Profile:   profile,
	}, nil
}
