package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// AcknowledgeSuccessCommand represents the "done" action on the success
// screen.
type AcknowledgeSuccessCommand struct {
	CheckoutID string `json:"checkout_id"`
}

// AcknowledgeSuccess use case closes a succeeded session and returns the
// checkout to the catalog.
type AcknowledgeSuccess struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewAcknowledgeSuccess creates a new AcknowledgeSuccess use case
func NewAcknowledgeSuccess(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *AcknowledgeSuccess {
	return &AcknowledgeSuccess{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute acknowledges the success screen
func (uc *AcknowledgeSuccess) Execute(ctx context.Context, cmd *AcknowledgeSuccessCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		return checkout.AcknowledgeSuccess()
	})
}
