package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/pkg/errors"
)

// SaveCardCommand represents an accepted save-card event to merge into
// the saved set.
type SaveCardCommand struct {
	CheckoutID models.ID `json:"checkout_id"`
	CardID     models.ID `json:"card_id"`
	Number     string    `json:"number"`
	Name       string    `json:"name"`
	Expiry     string    `json:"expiry"`
}

// SaveCard use case merges a save-card event into the vault. Cards are
// unique by full number; a duplicate event is dropped without error.
type SaveCard struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewSaveCard creates a new SaveCard use case
func NewSaveCard(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *SaveCard {
	return &SaveCard{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute merges the card into the saved set
func (uc *SaveCard) Execute(ctx context.Context, cmd *SaveCardCommand) error {
	if cmd.Number == "" || cmd.Name == "" || cmd.Expiry == "" {
		return errors.New("card number, name and expiry are required")
	}

	checkout, err := uc.checkoutRepository.FindByID(ctx, cmd.CheckoutID)
	if err != nil {
		return errors.Wrap(err, "failed to find checkout")
	}
	if checkout == nil {
		return domain.ErrCheckoutClosed
	}

	checkout.Lock()
	if !checkout.MergeSavedCard(cmd.CardID, cmd.Number, cmd.Name, cmd.Expiry) {
		checkout.Unlock()
		return nil
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		checkout.Unlock()
		return errors.Wrap(err, "failed to save checkout")
	}

	evts := checkout.Events()
	checkout.ClearEvents()
	checkout.Unlock()

	return publishEvents(ctx, uc.eventPublisher, evts)
}
