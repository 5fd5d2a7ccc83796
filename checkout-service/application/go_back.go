package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// GoBackCommand represents leaving the current phase
type GoBackCommand struct {
	CheckoutID string `json:"checkout_id"`
}

// GoBack use case closes amount entry or abandons the payment view. An
// active session is torn down, cancelling its pending timers.
type GoBack struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewGoBack creates a new GoBack use case
func NewGoBack(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *GoBack {
	return &GoBack{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute returns the checkout to the catalog phase
func (uc *GoBack) Execute(ctx context.Context, cmd *GoBackCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		return checkout.Back()
	})
}
