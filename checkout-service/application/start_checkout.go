package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// StartCheckoutCommand represents the command to start a checkout visit
type StartCheckoutCommand struct {
	RecipientHandle string `json:"recipient_handle,omitempty"`
}

// StartCheckoutResponse represents the response after starting a checkout
type StartCheckoutResponse struct {
	CheckoutID string `json:"checkout_id"`
}

// StartCheckout use case creates a new checkout session
type StartCheckout struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewStartCheckout creates a new StartCheckout use case
func NewStartCheckout(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *StartCheckout {
	return &StartCheckout{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute starts a checkout in the catalog phase with the seeded vault
func (uc *StartCheckout) Execute(ctx context.Context, cmd *StartCheckoutCommand) (*StartCheckoutResponse, error) {
	checkout := domain.CreateCheckout(domain.NewPackageCatalog(), domain.SeedCard())

	if cmd.RecipientHandle != "" {
		checkout.SetRecipient(cmd.RecipientHandle)
	}

	err := commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &StartCheckoutResponse{CheckoutID: checkout.ID.String()}, nil
}
