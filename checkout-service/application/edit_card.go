package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// EditCardFieldCommand represents a keystroke on a new-card input field
type EditCardFieldCommand struct {
	CheckoutID string `json:"checkout_id"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}

// ToggleSaveCardCommand sets the save-card opt-in
type ToggleSaveCardCommand struct {
	CheckoutID string `json:"checkout_id"`
	Save       bool   `json:"save"`
}

// EditCard use case applies new-card draft edits and the save opt-in
type EditCard struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewEditCard creates a new EditCard use case
func NewEditCard(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *EditCard {
	return &EditCard{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// EditField applies a keystroke to the new-card draft
func (uc *EditCard) EditField(ctx context.Context, cmd *EditCardFieldCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		if checkout.Session == nil {
			return domain.ErrNoActiveSession
		}
		return checkout.Session.EditCardField(domain.CardField(cmd.Field), cmd.Value)
	})
}

// ToggleSave sets the save-card opt-in for the current draft
func (uc *EditCard) ToggleSave(ctx context.Context, cmd *ToggleSaveCardCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		if checkout.Session == nil {
			return domain.ErrNoActiveSession
		}
		return checkout.Session.ToggleSaveCard(cmd.Save)
	})
}
