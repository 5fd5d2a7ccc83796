package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// BuySelectedCommand represents the buy action on the current selection
type BuySelectedCommand struct {
	CheckoutID string `json:"checkout_id"`
}

// BuySelected use case routes the buy action: a fixed bundle goes to
// payment, the custom placeholder opens amount entry.
type BuySelected struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewBuySelected creates a new BuySelected use case
func NewBuySelected(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *BuySelected {
	return &BuySelected{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute performs the buy action
func (uc *BuySelected) Execute(ctx context.Context, cmd *BuySelectedCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		return checkout.Buy()
	})
}
