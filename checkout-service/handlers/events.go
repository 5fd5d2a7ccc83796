package handlers

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/application"
	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CheckoutEventHandlers handles checkout-related events in the choreography
type CheckoutEventHandlers struct {
	saveCard *application.SaveCard
	logger   *logrus.Logger
}

// NewCheckoutEventHandlers creates new checkout event handlers
func NewCheckoutEventHandlers(saveCard *application.SaveCard, logger *logrus.Logger) *CheckoutEventHandlers {
	return &CheckoutEventHandlers{
		saveCard: saveCard,
		logger:   logger,
	}
}

// HandlerID returns the unique identifier for this event handler
func (h *CheckoutEventHandlers) HandlerID() string {
	return "checkout-service-event-handler"
}

// Handle implements the events.EventHandler interface
func (h *CheckoutEventHandlers) Handle(ctx context.Context, event *events.Event) error {
	switch event.Topic {
	case events.CardSaveRequestedEvent:
		return h.HandleCardSaveRequested(ctx, event)
	default:
		// Unknown topic, ignore
		return nil
	}
}

// HandleCardSaveRequested merges an accepted card into the saved set
func (h *CheckoutEventHandlers) HandleCardSaveRequested(ctx context.Context, event *events.Event) error {
	var data domain.CardSaveRequestedData
	if err := event.UnmarshalPayload(&data); err != nil {
		return errors.Wrap(err, "failed to parse card save requested data")
	}

	cmd := &application.SaveCardCommand{
		CheckoutID: data.CheckoutID,
		CardID:     data.CardID,
		Number:     data.Number,
		Name:       data.Name,
		Expiry:     data.Expiry,
	}

	if err := h.saveCard.Execute(ctx, cmd); err != nil {
		h.logger.WithError(err).WithField("checkout_id", data.CheckoutID.String()).
			Error("Failed to save card")
		return nil // duplicate or closed checkout is not retryable
	}

	return nil
}
