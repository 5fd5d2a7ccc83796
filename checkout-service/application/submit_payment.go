package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/coinshop/recharge-system/shared/timers"
	log "github.com/sirupsen/logrus"
)

// SubmitPaymentCommand represents the command to submit the payment
type SubmitPaymentCommand struct {
	CheckoutID string `json:"checkout_id"`
}

// SubmitPayment use case moves the session into simulated processing and
// schedules the delayed success transition. Card payments resolve after a
// fixed 2s delay; wallet payments run a cosmetic 1s countdown alongside an
// independent fixed 3s delay.
type SubmitPayment struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
	scheduler          timers.Scheduler
}

// NewSubmitPayment creates a new SubmitPayment use case
func NewSubmitPayment(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
	scheduler timers.Scheduler,
) *SubmitPayment {
	return &SubmitPayment{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
		scheduler:          scheduler,
	}
}

// Execute submits the payment. A submission blocked by validation returns
// domain.ErrSubmitBlocked and leaves the session untouched.
func (uc *SubmitPayment) Execute(ctx context.Context, cmd *SubmitPaymentCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		session := checkout.Session
		if session == nil {
			return domain.ErrNoActiveSession
		}

		if err := session.Submit(); err != nil {
			return err
		}

		checkoutID := checkout.ID
		sessionID := session.ID

		switch session.Status {
		case domain.SessionStatusProcessingWallet:
			session.AttachTimer(uc.scheduler.Every(domain.WalletCountdownTick, func() {
				uc.tickCountdown(checkoutID, sessionID)
			}))
			session.AttachTimer(uc.scheduler.Schedule(domain.WalletProcessingDelay, func() {
				uc.completeProcessing(checkoutID, sessionID)
			}))
		case domain.SessionStatusProcessingCard:
			session.AttachTimer(uc.scheduler.Schedule(domain.CardProcessingDelay, func() {
				uc.completeProcessing(checkoutID, sessionID)
			}))
		}

		return nil
	})
}

// tickCountdown advances the cosmetic wallet countdown by one second
func (uc *SubmitPayment) tickCountdown(checkoutID, sessionID models.ID) {
	ctx := context.Background()

	checkout, err := uc.checkoutRepository.FindByID(ctx, checkoutID)
	if err != nil || checkout == nil {
		return
	}

	checkout.Lock()
	defer checkout.Unlock()

	session := liveSession(checkout, sessionID)
	if session == nil {
		return
	}

	session.TickCountdown()
	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		log.WithField("checkout_id", checkoutID.String()).WithError(err).Error("failed to save countdown tick")
	}
}

// completeProcessing fires when the fixed processing delay elapses. A
// session that was torn down or replaced in the meantime is left alone;
// the teardown and this guard run under the same aggregate lock, so a
// stale timer can never turn an abandoned session into a success.
func (uc *SubmitPayment) completeProcessing(checkoutID, sessionID models.ID) {
	ctx := context.Background()

	checkout, err := uc.checkoutRepository.FindByID(ctx, checkoutID)
	if err != nil || checkout == nil {
		return
	}

	checkout.Lock()

	session := liveSession(checkout, sessionID)
	if session == nil {
		checkout.Unlock()
		return
	}

	if err := session.CompleteProcessing(); err != nil {
		checkout.Unlock()
		log.WithFields(log.Fields{
			"checkout_id": checkoutID.String(),
			"session_id":  sessionID.String(),
		}).WithError(err).Debug("dropping stale completion")
		return
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		checkout.Unlock()
		log.WithField("checkout_id", checkoutID.String()).WithError(err).Error("failed to save completed payment")
		return
	}

	evts := checkout.Events()
	checkout.ClearEvents()
	checkout.Unlock()

	if err := publishEvents(ctx, uc.eventPublisher, evts); err != nil {
		log.WithField("checkout_id", checkoutID.String()).WithError(err).Error("failed to publish completion events")
	}
}

// liveSession returns the checkout's session only when it is still the
// one the timer was scheduled for. Callers hold the aggregate lock.
func liveSession(checkout *domain.Checkout, sessionID models.ID) *domain.PaymentSession {
	if checkout.Session == nil || checkout.Session.ID != sessionID {
		return nil
	}
	return checkout.Session
}
