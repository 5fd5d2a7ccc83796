package domain

import (
	"github.com/coinshop/recharge-system/shared/models"
)

// CardRecord is a saved card. Records are immutable after creation and
// live only for the session; the full number is never re-exposed outward.
type CardRecord struct {
	ID         models.ID
	Number     string
	Name       string
	Expiry     string
	Timestamps models.Timestamps
}

// NewCardRecord creates a saved card with a fresh id
func NewCardRecord(number, name, expiry string) CardRecord {
	return CardRecord{
		ID:         models.GenerateUUID(),
		Number:     number,
		Name:       name,
		Expiry:     expiry,
		Timestamps: models.NewTimestamps(),
	}
}

// SeedCard is the card every checkout starts with
func SeedCard() CardRecord {
	return CardRecord{
		ID:         models.ID("default-card"),
		Number:     "4242424242424242",
		Name:       "TEST USER",
		Expiry:     "12/27",
		Timestamps: models.NewTimestamps(),
	}
}

// CardSummary is the outward-facing view of a saved card
type CardSummary struct {
	ID       string `json:"id"`
	LastFour string `json:"last_four"`
	Expiry   string `json:"expiry"`
}

// Summary strips the full number down to its last four digits
func (c CardRecord) Summary() CardSummary {
	return CardSummary{
		ID:       c.ID.String(),
		LastFour: LastFour(c.Number),
		Expiry:   c.Expiry,
	}
}

// CardVault is the session-scoped saved-card set. Cards are unique by full
// number; re-saving an existing number is a silent no-op.
type CardVault struct {
	cards []CardRecord
}

// NewCardVault creates a vault seeded with the given cards
func NewCardVault(seed ...CardRecord) *CardVault {
	vault := &CardVault{}
	for _, card := range seed {
		vault.Add(card)
	}
	return vault
}

// Add inserts a card unless one with the same full number exists. It
// reports whether the set changed.
func (v *CardVault) Add(card CardRecord) bool {
	if v.Contains(card.Number) {
		return false
	}
	v.cards = append(v.cards, card)
	return true
}

// Contains reports whether a card with the exact number is saved
func (v *CardVault) Contains(number string) bool {
	for _, c := range v.cards {
		if c.Number == number {
			return true
		}
	}
	return false
}

// FindByID returns the saved card with the given id
func (v *CardVault) FindByID(id models.ID) (CardRecord, bool) {
	for _, c := range v.cards {
		if c.ID == id {
			return c, true
		}
	}
	return CardRecord{}, false
}

// First returns the first saved card, if any
func (v *CardVault) First() (CardRecord, bool) {
	if len(v.cards) == 0 {
		return CardRecord{}, false
	}
	return v.cards[0], true
}

// Len returns the number of saved cards
func (v *CardVault) Len() int {
	return len(v.cards)
}

// Summaries returns the outward-facing list of saved cards
func (v *CardVault) Summaries() []CardSummary {
	out := make([]CardSummary, len(v.cards))
	for i, c := range v.cards {
		out[i] = c.Summary()
	}
	return out
}
