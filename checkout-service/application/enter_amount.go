package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/pkg/errors"
)

// KeypadInputCommand represents one keypad token during amount entry
type KeypadInputCommand struct {
	CheckoutID string `json:"checkout_id"`
	Token      string `json:"token"`
}

// QuickAmountCommand replaces the amount buffer with a quick-select value
type QuickAmountCommand struct {
	CheckoutID string `json:"checkout_id"`
	Value      int    `json:"value"`
}

// ContinueAmountCommand confirms the entered amount
type ContinueAmountCommand struct {
	CheckoutID string `json:"checkout_id"`
}

// EnterAmount use case drives keypad-based custom amount entry
type EnterAmount struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewEnterAmount creates a new EnterAmount use case
func NewEnterAmount(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *EnterAmount {
	return &EnterAmount{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Keypad applies a single keypad token
func (uc *EnterAmount) Keypad(ctx context.Context, cmd *KeypadInputCommand) error {
	if cmd.Token == "" {
		return errors.New("keypad token is required")
	}

	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return uc.commit(ctx, checkout, func() error {
		return checkout.KeypadInput(cmd.Token)
	})
}

// Quick replaces the buffer with a quick-select value
func (uc *EnterAmount) Quick(ctx context.Context, cmd *QuickAmountCommand) error {
	if cmd.Value <= 0 {
		return errors.New("quick amount must be positive")
	}

	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return uc.commit(ctx, checkout, func() error {
		return checkout.QuickAmount(cmd.Value)
	})
}

// Continue confirms the amount and moves the checkout to payment
func (uc *EnterAmount) Continue(ctx context.Context, cmd *ContinueAmountCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return uc.commit(ctx, checkout, func() error {
		return checkout.ContinueAmount()
	})
}

func (uc *EnterAmount) commit(ctx context.Context, checkout *domain.Checkout, fn func() error) error {
	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, fn)
}
