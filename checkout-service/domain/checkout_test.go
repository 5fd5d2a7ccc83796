package domain

import (
	"testing"

	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func newTestCheckout(t *testing.T) *Checkout {
	t.Helper()
	return CreateCheckout(NewPackageCatalog(), SeedCard())
}

func eventTopics(evts []*events.Event) []events.Topic {
	topics := make([]events.Topic, len(evts))
	for i, evt := range evts {
		topics[i] = evt.Topic
	}
	return topics
}

func TestCreateCheckout(t *testing.T) {
	checkout := newTestCheckout(t)

	assert.Equal(t, PhaseCatalog, checkout.Phase)
	assert.Equal(t, int64(1), checkout.SelectedPackageID)
	assert.Equal(t, 30, checkout.ActiveBundle().Coins)
	assert.Equal(t, 1, checkout.Vault.Len())
	assert.Contains(t, eventTopics(checkout.Events()), events.Topic(events.CheckoutStartedEvent))
}

func TestCheckout_SelectPackage(t *testing.T) {
	checkout := newTestCheckout(t)

	assert.NoError(t, checkout.SelectPackage(3))
	assert.Equal(t, PhaseCatalog, checkout.Phase)
	assert.Equal(t, 700, checkout.ActiveBundle().Coins)

	assert.ErrorIs(t, checkout.SelectPackage(42), ErrUnknownPackage)
}

func TestCheckout_SelectCustomPlaceholderOpensAmountEntry(t *testing.T) {
	checkout := newTestCheckout(t)

	assert.NoError(t, checkout.SelectPackage(8))

	assert.Equal(t, PhaseAmountEntry, checkout.Phase)
	assert.NotNil(t, checkout.AmountEntry)
}

func TestCheckout_BuyFixedBundle(t *testing.T) {
	checkout := newTestCheckout(t)
	assert.NoError(t, checkout.SelectPackage(2))

	assert.NoError(t, checkout.Buy())

	assert.Equal(t, PhasePayment, checkout.Phase)
	assert.NotNil(t, checkout.Session)
	assert.Equal(t, 350, checkout.Session.Bundle.Coins)
	assert.Equal(t, "3.65", checkout.Session.Bundle.Price.Format())

	// Out-of-phase catalog actions are rejected
	assert.ErrorIs(t, checkout.Buy(), ErrWrongPhase)
	assert.ErrorIs(t, checkout.SelectPackage(1), ErrWrongPhase)
}

func TestCheckout_CustomAmountFlow(t *testing.T) {
	checkout := newTestCheckout(t)
	assert.NoError(t, checkout.SelectPackage(8))

	assert.NoError(t, checkout.KeypadInput("5"))
	assert.NoError(t, checkout.KeypadInput("0"))
	assert.NoError(t, checkout.KeypadInput("0"))
	assert.NoError(t, checkout.ContinueAmount())

	assert.Equal(t, PhasePayment, checkout.Phase)
	assert.Nil(t, checkout.AmountEntry)

	bundle := checkout.ActiveBundle()
	assert.True(t, bundle.IsCustom)
	assert.Equal(t, 500, bundle.Coins)
	assert.Equal(t, "5.20", bundle.Price.Format())
	assert.Contains(t, eventTopics(checkout.Events()), events.Topic(events.CustomAmountConfirmedEvent))
}

func TestCheckout_ContinueBlockedBelowMinimum(t *testing.T) {
	checkout := newTestCheckout(t)
	assert.NoError(t, checkout.SelectPackage(8))

	assert.ErrorIs(t, checkout.ContinueAmount(), ErrAmountBlocked)
	assert.Equal(t, PhaseAmountEntry, checkout.Phase)
}

func TestCheckout_BackFromAmountEntry(t *testing.T) {
	checkout := newTestCheckout(t)
	assert.NoError(t, checkout.SelectPackage(8))
	assert.NoError(t, checkout.KeypadInput("5"))

	assert.NoError(t, checkout.Back())

	assert.Equal(t, PhaseCatalog, checkout.Phase)
	assert.Nil(t, checkout.AmountEntry)
	// The custom placeholder selection itself is retained
	assert.Equal(t, int64(8), checkout.SelectedPackageID)
}

func TestCheckout_BackFromPaymentTearsDownSession(t *testing.T) {
	checkout := newTestCheckout(t)
	assert.NoError(t, checkout.SelectPackage(8))
	assert.NoError(t, checkout.KeypadInput("7"))
	assert.NoError(t, checkout.ContinueAmount())

	session := checkout.Session
	assert.NoError(t, checkout.Back())

	assert.Equal(t, PhaseCatalog, checkout.Phase)
	assert.Nil(t, checkout.Session)
	assert.Equal(t, SessionStatusTornDown, session.Status)

	// The instantiated custom bundle is gone; the active bundle falls back
	// to the catalog entry for the retained selection.
	assert.True(t, checkout.ActiveBundle().IsPlaceholder())
	assert.Contains(t, eventTopics(checkout.Events()), events.Topic(events.CheckoutAbandonedEvent))

	assert.ErrorIs(t, checkout.Back(), ErrWrongPhase)
}

func TestCheckout_AcknowledgeSuccess(t *testing.T) {
	checkout := newTestCheckout(t)
	checkout.SetRecipient("@someuser")
	assert.Equal(t, "someuser", checkout.RecipientHandle)

	assert.NoError(t, checkout.Buy())

	// Not yet succeeded
	assert.ErrorIs(t, checkout.AcknowledgeSuccess(), ErrNotSucceeded)

	assert.NoError(t, checkout.Session.Submit())
	assert.NoError(t, checkout.Session.CompleteProcessing())
	assert.NoError(t, checkout.AcknowledgeSuccess())

	assert.Equal(t, PhaseCatalog, checkout.Phase)
	assert.Nil(t, checkout.Session)
	// The per-visit recipient identity is cleared on completion
	assert.Equal(t, "", checkout.RecipientHandle)
	assert.Contains(t, eventTopics(checkout.Events()), events.Topic(events.CheckoutCompletedEvent))

	assert.ErrorIs(t, checkout.AcknowledgeSuccess(), ErrNoActiveSession)
}

func TestCheckout_MergeSavedCardDeduplicates(t *testing.T) {
	checkout := newTestCheckout(t)

	added := checkout.MergeSavedCard(models.GenerateUUID(), "5105105105105100", "NEW USER", "01/30")
	assert.True(t, added)
	assert.Equal(t, 2, checkout.Vault.Len())
	assert.Contains(t, eventTopics(checkout.Events()), events.Topic(events.CardSavedEvent))

	// Same number again is dropped silently
	added = checkout.MergeSavedCard(models.GenerateUUID(), "5105105105105100", "OTHER NAME", "02/31")
	assert.False(t, added)
	assert.Equal(t, 2, checkout.Vault.Len())

	// Seed card number too
	added = checkout.MergeSavedCard(models.GenerateUUID(), "4242424242424242", "TEST USER", "12/27")
	assert.False(t, added)
	assert.Equal(t, 2, checkout.Vault.Len())
}

func TestCheckout_SavedCardArrivalSnapsSessionDefault(t *testing.T) {
	// No seed card, so the session starts on the new-card method
	checkout := CreateCheckout(NewPackageCatalog())
	assert.NoError(t, checkout.Buy())
	assert.Equal(t, MethodNewCard, checkout.Session.Method.Kind)

	cardID := models.GenerateUUID()
	assert.True(t, checkout.MergeSavedCard(cardID, "5105105105105100", "NEW USER", "01/30"))

	assert.Equal(t, MethodSavedCard, checkout.Session.Method.Kind)
	assert.Equal(t, cardID, checkout.Session.Method.CardID)
}

func TestCheckout_SavedCardArrivalLeavesExplicitChoiceAlone(t *testing.T) {
	checkout := CreateCheckout(NewPackageCatalog())
	assert.NoError(t, checkout.Buy())
	assert.NoError(t, checkout.Session.SelectMethod(MethodSelection{Kind: MethodPayPal}, checkout.Vault))

	assert.True(t, checkout.MergeSavedCard(models.GenerateUUID(), "5105105105105100", "NEW USER", "01/30"))

	assert.Equal(t, MethodPayPal, checkout.Session.Method.Kind)
}
