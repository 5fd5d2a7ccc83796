package domain

import (
	"fmt"
	"time"

	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/coinshop/recharge-system/shared/timers"
	"github.com/pkg/errors"
)

// Simulated processing delays. The wallet countdown is cosmetic; the
// transition to succeeded is governed only by the wall delay, so the two
// wallet constants stay independent on purpose.
const (
	CardProcessingDelay   = 2 * time.Second
	WalletProcessingDelay = 3 * time.Second
	WalletCountdownSeed   = 3
	WalletCountdownTick   = time.Second
)

// SessionStatus represents the lifecycle state of a payment session
type SessionStatus string

const (
	SessionStatusMethodSelected   SessionStatus = "method_selected"
	SessionStatusProcessingCard   SessionStatus = "processing_card"
	SessionStatusProcessingWallet SessionStatus = "processing_wallet"
	SessionStatusSucceeded        SessionStatus = "succeeded"
	SessionStatusTornDown         SessionStatus = "torn_down"
)

// MethodKind tags the active payment method
type MethodKind string

const (
	MethodSavedCard MethodKind = "saved_card"
	MethodPayPal    MethodKind = "paypal"
	MethodNewCard   MethodKind = "new_card"
)

// MethodSelection is the tagged payment-method choice. CardID is set only
// for saved cards.
type MethodSelection struct {
	Kind   MethodKind `json:"kind"`
	CardID models.ID  `json:"card_id,omitempty"`
}

var (
	ErrSubmitBlocked     = errors.New("submission blocked by incomplete card details")
	ErrSessionProcessing = errors.New("session is already processing")
	ErrSessionFinished   = errors.New("session already finished")
	ErrUnknownSavedCard  = errors.New("card is not in the saved set")
	ErrSaveBlocked       = errors.New("card save blocked")
	ErrNotProcessing     = errors.New("session is not processing")
	ErrNotSucceeded      = errors.New("session has not succeeded")
)

// PaymentSession drives a single payment attempt for the active bundle:
// method selection, new-card drafting, simulated processing and the
// terminal success report. The simulation never rejects a structurally
// valid submission.
type PaymentSession struct {
	ID              models.ID
	CheckoutID      models.ID
	Bundle          Bundle
	RecipientHandle string
	Method          MethodSelection
	Draft           NewCardDraft
	SaveCard        bool
	Status          SessionStatus
	Countdown       int
	Timestamps      models.Timestamps

	events  []*events.Event
	cancels []timers.Cancel
}

// NewPaymentSession starts a session for the given bundle. The default
// method is the first saved card when one exists, otherwise a new card.
func NewPaymentSession(checkoutID models.ID, bundle Bundle, recipientHandle string, vault *CardVault) *PaymentSession {
	method := MethodSelection{Kind: MethodNewCard}
	if first, ok := vault.First(); ok {
		method = MethodSelection{Kind: MethodSavedCard, CardID: first.ID}
	}

	return &PaymentSession{
		ID:              models.GenerateUUID(),
		CheckoutID:      checkoutID,
		Bundle:          bundle,
		RecipientHandle: recipientHandle,
		Method:          method,
		SaveCard:        true,
		Status:          SessionStatusMethodSelected,
		Timestamps:      models.NewTimestamps(),
	}
}

// SelectMethod switches the active payment method. Draft edits are
// preserved across switches; only the active tag changes.
func (s *PaymentSession) SelectMethod(selection MethodSelection, vault *CardVault) error {
	if err := s.ensureSelecting(); err != nil {
		return err
	}

	switch selection.Kind {
	case MethodSavedCard:
		if _, ok := vault.FindByID(selection.CardID); !ok {
			return ErrUnknownSavedCard
		}
	case MethodPayPal, MethodNewCard:
	default:
		return errors.Errorf("unknown payment method kind: %s", selection.Kind)
	}

	s.Method = selection
	s.touch()
	return nil
}

// CardField names an editable new-card input
type CardField string

const (
	CardFieldNumber CardField = "number"
	CardFieldName   CardField = "name"
	CardFieldExpiry CardField = "expiry"
)

// EditCardField applies a keystroke to the new-card draft. The number is
// stored as sanitized digits; the expiry is reformatted on every edit.
func (s *PaymentSession) EditCardField(field CardField, raw string) error {
	if err := s.ensureSelecting(); err != nil {
		return err
	}
	if s.Method.Kind != MethodNewCard {
		return errors.New("card fields are editable only for a new card")
	}

	switch field {
	case CardFieldNumber:
		s.Draft.Number = SanitizeCardDigits(raw)
	case CardFieldName:
		s.Draft.Name = raw
	case CardFieldExpiry:
		s.Draft.Expiry = FormatExpiry(raw)
	default:
		return errors.Errorf("unknown card field: %s", field)
	}

	s.touch()
	return nil
}

// ToggleSaveCard sets the save-card opt-in for the current draft
func (s *PaymentSession) ToggleSaveCard(on bool) error {
	if err := s.ensureSelecting(); err != nil {
		return err
	}
	s.SaveCard = on
	s.touch()
	return nil
}

// CanSubmit reports whether submission is currently permitted
func (s *PaymentSession) CanSubmit() bool {
	if s.Status != SessionStatusMethodSelected {
		return false
	}
	if s.Method.Kind == MethodNewCard {
		return s.Draft.Valid()
	}
	return true
}

// Submit moves the session into simulated processing. A blocked submission
// leaves the session exactly where it was.
func (s *PaymentSession) Submit() error {
	if s.Status != SessionStatusMethodSelected {
		return s.ensureSelecting()
	}
	if !s.CanSubmit() {
		return ErrSubmitBlocked
	}

	if s.Method.Kind == MethodPayPal {
		s.Status = SessionStatusProcessingWallet
		s.Countdown = WalletCountdownSeed
	} else {
		s.Status = SessionStatusProcessingCard
	}
	s.touch()

	s.recordEvent(events.NewEvent(s.ID, events.PaymentSubmittedEvent, PaymentSubmittedData{
		CheckoutID: s.CheckoutID,
		SessionID:  s.ID,
		Method:     s.Method,
		Coins:      s.Bundle.Coins,
		Price:      s.Bundle.Price,
	}))

	return nil
}

// TickCountdown decrements the cosmetic wallet countdown, clamped at zero
func (s *PaymentSession) TickCountdown() {
	if s.Status == SessionStatusProcessingWallet && s.Countdown > 0 {
		s.Countdown--
	}
}

// CountdownDisplay renders the countdown as MM:SS
func (s *PaymentSession) CountdownDisplay() string {
	return fmt.Sprintf("%02d:%02d", s.Countdown/60, s.Countdown%60)
}

// CompleteProcessing fires when the fixed processing delay elapses. A
// torn-down session rejects the transition, which is what keeps a leaked
// timer from resurrecting a discarded session.
func (s *PaymentSession) CompleteProcessing() error {
	if s.Status != SessionStatusProcessingCard && s.Status != SessionStatusProcessingWallet {
		return ErrNotProcessing
	}

	s.Status = SessionStatusSucceeded
	s.Countdown = 0
	s.touch()
	s.cancelTimers()

	if s.Method.Kind == MethodNewCard && s.SaveCard && s.Draft.Valid() {
		s.recordCardSaveRequested()
	}

	s.recordEvent(events.NewEvent(s.ID, events.PaymentSucceededEvent, PaymentSucceededData{
		CheckoutID:      s.CheckoutID,
		SessionID:       s.ID,
		Coins:           s.Bundle.Coins,
		Price:           s.Bundle.Price,
		RecipientHandle: s.RecipientHandle,
	}))

	return nil
}

// SaveCardNow explicitly saves the draft ahead of submission. It clears
// the opt-in so the submit path does not emit a second save for the same
// draft.
func (s *PaymentSession) SaveCardNow() error {
	if err := s.ensureSelecting(); err != nil {
		return err
	}
	if s.Method.Kind != MethodNewCard || !s.SaveCard || !s.Draft.Valid() {
		return ErrSaveBlocked
	}

	s.recordCardSaveRequested()
	s.SaveCard = false
	s.touch()
	return nil
}

func (s *PaymentSession) recordCardSaveRequested() {
	s.recordEvent(events.NewEvent(s.ID, events.CardSaveRequestedEvent, CardSaveRequestedData{
		CheckoutID: s.CheckoutID,
		CardID:     models.GenerateUUID(),
		Number:     s.Draft.Number,
		Name:       s.Draft.Name,
		Expiry:     s.Draft.Expiry,
	}))
}

// AttachTimer registers a scheduled effect owned by this session so it can
// be revoked on teardown.
func (s *PaymentSession) AttachTimer(cancel timers.Cancel) {
	s.cancels = append(s.cancels, cancel)
}

// Teardown cancels every pending timer and closes the session. Safe to
// call in any state.
func (s *PaymentSession) Teardown() {
	s.cancelTimers()
	s.Status = SessionStatusTornDown
	s.touch()
}

func (s *PaymentSession) cancelTimers() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// Processing reports whether a simulated delay is running
func (s *PaymentSession) Processing() bool {
	return s.Status == SessionStatusProcessingCard || s.Status == SessionStatusProcessingWallet
}

func (s *PaymentSession) ensureSelecting() error {
	switch s.Status {
	case SessionStatusMethodSelected:
		return nil
	case SessionStatusProcessingCard, SessionStatusProcessingWallet:
		return ErrSessionProcessing
	default:
		return ErrSessionFinished
	}
}

func (s *PaymentSession) touch() {
	s.Timestamps = s.Timestamps.Update()
}

// Events returns recorded domain events
func (s *PaymentSession) Events() []*events.Event {
	return s.events
}

// ClearEvents clears recorded domain events
func (s *PaymentSession) ClearEvents() {
	s.events = make([]*events.Event, 0)
}

func (s *PaymentSession) recordEvent(event *events.Event) {
	s.events = append(s.events, event)
}

// Event data structures
type PaymentSubmittedData struct {
	CheckoutID models.ID       `json:"checkout_id"`
	SessionID  models.ID       `json:"session_id"`
	Method     MethodSelection `json:"method"`
	Coins      int             `json:"coins"`
	Price      models.Money    `json:"price"`
}

type PaymentSucceededData struct {
	CheckoutID      models.ID    `json:"checkout_id"`
	SessionID       models.ID    `json:"session_id"`
	Coins           int          `json:"coins"`
	Price           models.Money `json:"price"`
	RecipientHandle string       `json:"recipient_handle"`
}

type CardSaveRequestedData struct {
	CheckoutID models.ID `json:"checkout_id"`
	CardID     models.ID `json:"card_id"`
	Number     string    `json:"number"`
	Name       string    `json:"name"`
	Expiry     string    `json:"expiry"`
}
