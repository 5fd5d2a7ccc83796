package domain

import (
	"context"
	"sync"

	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/pkg/errors"
)

// CheckoutPhase is the top-level view phase
type CheckoutPhase string

const (
	PhaseCatalog     CheckoutPhase = "catalog"
	PhaseAmountEntry CheckoutPhase = "amount_entry"
	PhasePayment     CheckoutPhase = "payment"
)

var (
	ErrUnknownPackage  = errors.New("package not in catalog")
	ErrWrongPhase      = errors.New("action not available in current phase")
	ErrAmountBlocked   = errors.New("amount below the minimum")
	ErrCheckoutClosed  = errors.New("checkout not found")
	ErrNoActiveSession = errors.New("no active payment session")
)

// Checkout is the aggregate root for one recharge visit: the active
// bundle, the saved-card vault, the view phase and the live payment
// session.
type Checkout struct {
	ID                models.ID
	Catalog           *PackageCatalog
	Phase             CheckoutPhase
	SelectedPackageID int64
	RecipientHandle   string
	Vault             *CardVault
	AmountEntry       *AmountEntry
	Session           *PaymentSession
	Timestamps        models.Timestamps

	mu           sync.Mutex
	customBundle *Bundle
	events       []*events.Event
}

// Lock takes the aggregate lock. Use cases, timer callbacks and event
// handlers all work on the same in-memory instance, so every
// load-mutate-save sequence and every read of session state runs under
// this lock. Events are drained inside the lock and published after it is
// released, so subscribers can load the same checkout.
func (c *Checkout) Lock() {
	c.mu.Lock()
}

// Unlock releases the aggregate lock
func (c *Checkout) Unlock() {
	c.mu.Unlock()
}

// CreateCheckout starts a checkout in the catalog phase with the first
// fixed bundle selected and the vault seeded.
func CreateCheckout(catalog *PackageCatalog, seed ...CardRecord) *Checkout {
	checkout := &Checkout{
		ID:                models.GenerateUUID(),
		Catalog:           catalog,
		Phase:             PhaseCatalog,
		SelectedPackageID: catalog.First().ID,
		Vault:             NewCardVault(seed...),
		Timestamps:        models.NewTimestamps(),
	}

	checkout.recordEvent(events.NewEvent(checkout.ID, events.CheckoutStartedEvent, CheckoutStartedData{
		CheckoutID: checkout.ID,
	}))

	return checkout
}

// ActiveBundle is the bundle a payment would purchase: the instantiated
// custom bundle when one exists, otherwise the selected fixed entry.
func (c *Checkout) ActiveBundle() Bundle {
	if c.customBundle != nil {
		return *c.customBundle
	}
	if bundle, ok := c.Catalog.FindByID(c.SelectedPackageID); ok {
		return bundle
	}
	return c.Catalog.First()
}

// SetRecipient stores the normalized recipient handle for this visit
func (c *Checkout) SetRecipient(handle string) {
	c.RecipientHandle = NormalizeHandle(handle)
	c.touch()
}

// SelectPackage marks a catalog entry as selected. Selecting the custom
// placeholder opens amount entry immediately.
func (c *Checkout) SelectPackage(id int64) error {
	if c.Phase != PhaseCatalog {
		return ErrWrongPhase
	}

	bundle, ok := c.Catalog.FindByID(id)
	if !ok {
		return ErrUnknownPackage
	}

	c.SelectedPackageID = id
	c.touch()
	c.recordEvent(events.NewEvent(c.ID, events.PackageSelectedEvent, PackageSelectedData{
		CheckoutID: c.ID,
		PackageID:  id,
	}))

	if bundle.IsPlaceholder() {
		c.openAmountEntry()
	}
	return nil
}

// Buy acts on the current selection: a fixed bundle goes straight to
// payment, the custom placeholder opens amount entry.
func (c *Checkout) Buy() error {
	if c.Phase != PhaseCatalog {
		return ErrWrongPhase
	}

	selected, ok := c.Catalog.FindByID(c.SelectedPackageID)
	if !ok {
		return ErrUnknownPackage
	}

	if selected.IsPlaceholder() {
		c.openAmountEntry()
		return nil
	}

	c.customBundle = nil
	c.startPayment()
	return nil
}

func (c *Checkout) openAmountEntry() {
	c.Phase = PhaseAmountEntry
	c.AmountEntry = NewAmountEntry()
	c.touch()
}

// KeypadInput forwards a keypad token to amount entry
func (c *Checkout) KeypadInput(token string) error {
	if c.Phase != PhaseAmountEntry || c.AmountEntry == nil {
		return ErrWrongPhase
	}
	c.AmountEntry.Keypad(token)
	c.touch()
	return nil
}

// QuickAmount replaces the amount buffer with a quick-select value
func (c *Checkout) QuickAmount(value int) error {
	if c.Phase != PhaseAmountEntry || c.AmountEntry == nil {
		return ErrWrongPhase
	}
	c.AmountEntry.SetQuickAmount(value)
	c.touch()
	return nil
}

// ContinueAmount turns the entered amount into the active custom bundle
// and moves to payment.
func (c *Checkout) ContinueAmount() error {
	if c.Phase != PhaseAmountEntry || c.AmountEntry == nil {
		return ErrWrongPhase
	}
	if !c.AmountEntry.CanContinue() {
		return ErrAmountBlocked
	}

	bundle := c.Catalog.MakeCustomBundle(c.AmountEntry.Amount())
	c.customBundle = &bundle
	c.AmountEntry = nil

	c.recordEvent(events.NewEvent(c.ID, events.CustomAmountConfirmedEvent, CustomAmountConfirmedData{
		CheckoutID: c.ID,
		Coins:      bundle.Coins,
		Price:      bundle.Price,
	}))

	c.startPayment()
	return nil
}

func (c *Checkout) startPayment() {
	c.Session = NewPaymentSession(c.ID, c.ActiveBundle(), c.RecipientHandle, c.Vault)
	c.Phase = PhasePayment
	c.touch()
}

// Back leaves the current phase: closing amount entry or abandoning the
// payment view returns to the catalog and clears any custom bundle. The
// fixed selection is retained. An active session is torn down so its
// timers can never fire afterwards.
func (c *Checkout) Back() error {
	switch c.Phase {
	case PhaseAmountEntry:
		c.AmountEntry = nil
	case PhasePayment:
		if c.Session != nil {
			c.Session.Teardown()
			c.Session = nil
		}
	default:
		return ErrWrongPhase
	}

	c.customBundle = nil
	c.Phase = PhaseCatalog
	c.touch()
	c.recordEvent(events.NewEvent(c.ID, events.CheckoutAbandonedEvent, CheckoutAbandonedData{
		CheckoutID: c.ID,
	}))
	return nil
}

// AcknowledgeSuccess is the explicit "done" action on the success screen.
// It clears the per-visit recipient identity and returns to the catalog.
func (c *Checkout) AcknowledgeSuccess() error {
	if c.Phase != PhasePayment || c.Session == nil {
		return ErrNoActiveSession
	}
	if c.Session.Status != SessionStatusSucceeded {
		return ErrNotSucceeded
	}

	data := CheckoutCompletedData{
		CheckoutID:      c.ID,
		Coins:           c.Session.Bundle.Coins,
		Price:           c.Session.Bundle.Price,
		RecipientHandle: c.RecipientHandle,
	}

	c.Session.Teardown()
	c.Session = nil
	c.customBundle = nil
	c.RecipientHandle = ""
	c.Phase = PhaseCatalog
	c.touch()

	c.recordEvent(events.NewEvent(c.ID, events.CheckoutCompletedEvent, data))
	return nil
}

// MergeSavedCard merges an accepted save-card event into the vault,
// deduplicating by full card number. Duplicates are dropped silently.
func (c *Checkout) MergeSavedCard(id models.ID, number, name, expiry string) bool {
	added := c.Vault.Add(CardRecord{
		ID:         id,
		Number:     number,
		Name:       name,
		Expiry:     expiry,
		Timestamps: models.NewTimestamps(),
	})
	if !added {
		return false
	}

	c.touch()
	c.onSavedCardSetChanged()
	c.recordEvent(events.NewEvent(c.ID, events.CardSavedEvent, CardSavedData{
		CheckoutID: c.ID,
		CardID:     id,
		LastFour:   LastFour(number),
	}))
	return true
}

// onSavedCardSetChanged runs once per vault mutation. A session that is
// still picking a method snaps its default to the first saved card, which
// mirrors how the saved-card list drives the default selection.
func (c *Checkout) onSavedCardSetChanged() {
	if c.Session == nil || c.Session.Status != SessionStatusMethodSelected {
		return
	}
	if c.Session.Method.Kind != MethodNewCard {
		return
	}
	if first, ok := c.Vault.First(); ok {
		c.Session.Method = MethodSelection{Kind: MethodSavedCard, CardID: first.ID}
	}
}

func (c *Checkout) touch() {
	c.Timestamps = c.Timestamps.Update()
}

// Events returns recorded domain events, including the active session's
func (c *Checkout) Events() []*events.Event {
	out := make([]*events.Event, 0, len(c.events))
	out = append(out, c.events...)
	if c.Session != nil {
		out = append(out, c.Session.Events()...)
	}
	return out
}

// ClearEvents clears recorded domain events
func (c *Checkout) ClearEvents() {
	c.events = make([]*events.Event, 0)
	if c.Session != nil {
		c.Session.ClearEvents()
	}
}

func (c *Checkout) recordEvent(event *events.Event) {
	c.events = append(c.events, event)
}

// CheckoutRepository interface
type CheckoutRepository interface {
	Save(ctx context.Context, checkout *Checkout) error
	FindByID(ctx context.Context, id models.ID) (*Checkout, error)
	Delete(ctx context.Context, id models.ID) error
}

// Event data structures
type CheckoutStartedData struct {
	CheckoutID models.ID `json:"checkout_id"`
}

type PackageSelectedData struct {
	CheckoutID models.ID `json:"checkout_id"`
	PackageID  int64     `json:"package_id"`
}

type CustomAmountConfirmedData struct {
	CheckoutID models.ID    `json:"checkout_id"`
	Coins      int          `json:"coins"`
	Price      models.Money `json:"price"`
}

type CheckoutAbandonedData struct {
	CheckoutID models.ID `json:"checkout_id"`
}

type CheckoutCompletedData struct {
	CheckoutID      models.ID    `json:"checkout_id"`
	Coins           int          `json:"coins"`
	Price           models.Money `json:"price"`
	RecipientHandle string       `json:"recipient_handle"`
}

type CardSavedData struct {
	CheckoutID models.ID `json:"checkout_id"`
	CardID     models.ID `json:"card_id"`
	LastFour   string    `json:"last_four"`
}
