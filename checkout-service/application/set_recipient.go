package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// SetRecipientCommand stores the recipient handle for this visit
type SetRecipientCommand struct {
	CheckoutID string `json:"checkout_id"`
	Handle     string `json:"handle"`
}

// SetRecipient use case normalizes and stores the recipient handle
type SetRecipient struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewSetRecipient creates a new SetRecipient use case
func NewSetRecipient(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *SetRecipient {
	return &SetRecipient{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute sets the recipient handle
func (uc *SetRecipient) Execute(ctx context.Context, cmd *SetRecipientCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		checkout.SetRecipient(cmd.Handle)
		return nil
	})
}
