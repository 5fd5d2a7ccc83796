package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/pkg/errors"
)

// SelectPaymentMethodCommand represents the command to switch the active
// payment method.
type SelectPaymentMethodCommand struct {
	CheckoutID string `json:"checkout_id"`
	Kind       string `json:"kind"`
	CardID     string `json:"card_id,omitempty"`
}

// SelectPaymentMethod use case switches among saved cards, PayPal and the
// new-card form.
type SelectPaymentMethod struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewSelectPaymentMethod creates a new SelectPaymentMethod use case
func NewSelectPaymentMethod(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *SelectPaymentMethod {
	return &SelectPaymentMethod{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute switches the active payment method
func (uc *SelectPaymentMethod) Execute(ctx context.Context, cmd *SelectPaymentMethodCommand) error {
	selection, err := parseMethodSelection(cmd.Kind, cmd.CardID)
	if err != nil {
		return err
	}

	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		if checkout.Session == nil {
			return domain.ErrNoActiveSession
		}
		return checkout.Session.SelectMethod(selection, checkout.Vault)
	})
}

func parseMethodSelection(kind, cardID string) (domain.MethodSelection, error) {
	switch domain.MethodKind(kind) {
	case domain.MethodSavedCard:
		if cardID == "" {
			return domain.MethodSelection{}, errors.New("card ID is required for a saved card")
		}
		return domain.MethodSelection{
			Kind:   domain.MethodSavedCard,
			CardID: models.ID(cardID),
		}, nil
	case domain.MethodPayPal:
		return domain.MethodSelection{Kind: domain.MethodPayPal}, nil
	case domain.MethodNewCard:
		return domain.MethodSelection{Kind: domain.MethodNewCard}, nil
	default:
		return domain.MethodSelection{}, errors.Errorf("unknown payment method kind: %s", kind)
	}
}
