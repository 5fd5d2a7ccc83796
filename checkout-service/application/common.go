package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/pkg/errors"
)

// loadCheckout finds a checkout by its raw id string
func loadCheckout(ctx context.Context, repo domain.CheckoutRepository, rawID string) (*domain.Checkout, error) {
	id, err := models.NewID(rawID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid checkout ID")
	}

	checkout, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout")
	}
	if checkout == nil {
		return nil, domain.ErrCheckoutClosed
	}

	return checkout, nil
}

// commitCheckout runs fn under the aggregate lock, saves the checkout and
// drains its recorded events, then publishes them once the lock is
// released. Subscribers that load the same checkout therefore never
// deadlock against the committing caller.
func commitCheckout(
	ctx context.Context,
	repo domain.CheckoutRepository,
	publisher events.Publisher,
	checkout *domain.Checkout,
	fn func() error,
) error {
	checkout.Lock()

	if err := fn(); err != nil {
		checkout.Unlock()
		return err
	}

	if err := repo.Save(ctx, checkout); err != nil {
		checkout.Unlock()
		return errors.Wrap(err, "failed to save checkout")
	}

	evts := checkout.Events()
	checkout.ClearEvents()
	checkout.Unlock()

	return publishEvents(ctx, publisher, evts)
}

// publishEvents publishes already-drained events
func publishEvents(ctx context.Context, publisher events.Publisher, evts []*events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	if err := publisher.Publish(ctx, evts...); err != nil {
		return errors.Wrap(err, "failed to publish events")
	}
	return nil
}
