package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// SaveCardNowCommand represents the explicit save action ahead of
// submission.
type SaveCardNowCommand struct {
	CheckoutID string `json:"checkout_id"`
}

// SaveCardNow use case saves a valid draft immediately and disables the
// auto-save that would otherwise fire on submit.
type SaveCardNow struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewSaveCardNow creates a new SaveCardNow use case
func NewSaveCardNow(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *SaveCardNow {
	return &SaveCardNow{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute performs the early save
func (uc *SaveCardNow) Execute(ctx context.Context, cmd *SaveCardNowCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		if checkout.Session == nil {
			return domain.ErrNoActiveSession
		}
		return checkout.Session.SaveCardNow()
	})
}
