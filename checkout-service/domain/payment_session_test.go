package domain

import (
	"testing"

	"github.com/coinshop/recharge-system/shared/events"
	"github.com/coinshop/recharge-system/shared/models"
	"github.com/stretchr/testify/assert"
)

func newTestSession(t *testing.T, vault *CardVault) *PaymentSession {
	t.Helper()
	bundle := NewPackageCatalog().First()
	return NewPaymentSession(models.GenerateUUID(), bundle, "someuser", vault)
}

func completeDraft(t *testing.T, session *PaymentSession) {
	t.Helper()
	assert.NoError(t, session.EditCardField(CardFieldNumber, "4242 4242 4242 4242"))
	assert.NoError(t, session.EditCardField(CardFieldName, "TEST USER"))
	assert.NoError(t, session.EditCardField(CardFieldExpiry, "1227"))
}

func TestNewPaymentSession_DefaultMethod(t *testing.T) {
	seeded := newTestSession(t, NewCardVault(SeedCard()))
	assert.Equal(t, MethodSavedCard, seeded.Method.Kind)
	assert.Equal(t, models.ID("default-card"), seeded.Method.CardID)
	assert.True(t, seeded.SaveCard)

	empty := newTestSession(t, NewCardVault())
	assert.Equal(t, MethodNewCard, empty.Method.Kind)
}

func TestPaymentSession_SelectMethod(t *testing.T) {
	vault := NewCardVault(SeedCard())
	session := newTestSession(t, vault)

	err := session.SelectMethod(MethodSelection{Kind: MethodPayPal}, vault)
	assert.NoError(t, err)
	assert.Equal(t, MethodPayPal, session.Method.Kind)

	err = session.SelectMethod(MethodSelection{Kind: MethodSavedCard, CardID: "missing"}, vault)
	assert.ErrorIs(t, err, ErrUnknownSavedCard)
	assert.Equal(t, MethodPayPal, session.Method.Kind)
}

func TestPaymentSession_DraftSurvivesMethodSwitch(t *testing.T) {
	vault := NewCardVault()
	session := newTestSession(t, vault)
	completeDraft(t, session)

	assert.NoError(t, session.SelectMethod(MethodSelection{Kind: MethodPayPal}, vault))
	assert.NoError(t, session.SelectMethod(MethodSelection{Kind: MethodNewCard}, vault))

	assert.Equal(t, "4242424242424242", session.Draft.Number)
	assert.Equal(t, "12/27", session.Draft.Expiry)
}

func TestPaymentSession_SubmitBlockedOnIncompleteDraft(t *testing.T) {
	session := newTestSession(t, NewCardVault())
	assert.NoError(t, session.EditCardField(CardFieldNumber, "4242"))

	err := session.Submit()

	assert.ErrorIs(t, err, ErrSubmitBlocked)
	assert.Equal(t, SessionStatusMethodSelected, session.Status)
	assert.Empty(t, session.Events())
}

func TestPaymentSession_SubmitSavedCard(t *testing.T) {
	session := newTestSession(t, NewCardVault(SeedCard()))

	assert.NoError(t, session.Submit())

	assert.Equal(t, SessionStatusProcessingCard, session.Status)
	assert.True(t, session.Processing())

	evts := session.Events()
	assert.Len(t, evts, 1)
	assert.Equal(t, events.Topic(events.PaymentSubmittedEvent), evts[0].Topic)

	// A processing session rejects further edits
	assert.ErrorIs(t, session.ToggleSaveCard(false), ErrSessionProcessing)
	assert.ErrorIs(t, session.Submit(), ErrSessionProcessing)
}

func TestPaymentSession_SubmitPayPalCountdown(t *testing.T) {
	vault := NewCardVault(SeedCard())
	session := newTestSession(t, vault)
	assert.NoError(t, session.SelectMethod(MethodSelection{Kind: MethodPayPal}, vault))

	assert.NoError(t, session.Submit())

	assert.Equal(t, SessionStatusProcessingWallet, session.Status)
	assert.Equal(t, WalletCountdownSeed, session.Countdown)
	assert.Equal(t, "00:03", session.CountdownDisplay())

	// The countdown clamps at zero regardless of how many ticks land
	for i := 0; i < 5; i++ {
		session.TickCountdown()
	}
	assert.Equal(t, 0, session.Countdown)
	assert.Equal(t, "00:00", session.CountdownDisplay())
}

func TestPaymentSession_CompleteProcessing(t *testing.T) {
	session := newTestSession(t, NewCardVault(SeedCard()))
	assert.NoError(t, session.Submit())
	session.ClearEvents()

	assert.NoError(t, session.CompleteProcessing())

	assert.Equal(t, SessionStatusSucceeded, session.Status)
	evts := session.Events()
	assert.Len(t, evts, 1)
	assert.Equal(t, events.Topic(events.PaymentSucceededEvent), evts[0].Topic)

	// Completing twice is rejected
	assert.ErrorIs(t, session.CompleteProcessing(), ErrNotProcessing)
}

func TestPaymentSession_CompleteProcessingEmitsCardSave(t *testing.T) {
	session := newTestSession(t, NewCardVault())
	completeDraft(t, session)
	assert.NoError(t, session.Submit())
	session.ClearEvents()

	assert.NoError(t, session.CompleteProcessing())

	evts := session.Events()
	assert.Len(t, evts, 2)
	assert.Equal(t, events.Topic(events.CardSaveRequestedEvent), evts[0].Topic)
	assert.Equal(t, events.Topic(events.PaymentSucceededEvent), evts[1].Topic)
}

func TestPaymentSession_OptOutSkipsCardSave(t *testing.T) {
	session := newTestSession(t, NewCardVault())
	completeDraft(t, session)
	assert.NoError(t, session.ToggleSaveCard(false))
	assert.NoError(t, session.Submit())
	session.ClearEvents()

	assert.NoError(t, session.CompleteProcessing())

	evts := session.Events()
	assert.Len(t, evts, 1)
	assert.Equal(t, events.Topic(events.PaymentSucceededEvent), evts[0].Topic)
}

func TestPaymentSession_SaveCardNow(t *testing.T) {
	session := newTestSession(t, NewCardVault())
	completeDraft(t, session)

	assert.NoError(t, session.SaveCardNow())
	assert.False(t, session.SaveCard)

	evts := session.Events()
	assert.Len(t, evts, 1)
	assert.Equal(t, events.Topic(events.CardSaveRequestedEvent), evts[0].Topic)

	// The opt-in was consumed, a second explicit save is blocked
	assert.ErrorIs(t, session.SaveCardNow(), ErrSaveBlocked)

	// And the submit path emits no second save for the same draft
	session.ClearEvents()
	assert.NoError(t, session.Submit())
	assert.NoError(t, session.CompleteProcessing())
	for _, evt := range session.Events() {
		assert.NotEqual(t, events.Topic(events.CardSaveRequestedEvent), evt.Topic)
	}
}

func TestPaymentSession_SaveCardNowBlockedOnIncompleteDraft(t *testing.T) {
	session := newTestSession(t, NewCardVault())
	assert.NoError(t, session.EditCardField(CardFieldNumber, "4242"))

	assert.ErrorIs(t, session.SaveCardNow(), ErrSaveBlocked)
	assert.Empty(t, session.Events())
}

func TestPaymentSession_TeardownStopsCompletion(t *testing.T) {
	session := newTestSession(t, NewCardVault(SeedCard()))
	assert.NoError(t, session.Submit())

	cancelled := false
	session.AttachTimer(func() { cancelled = true })

	session.Teardown()

	assert.True(t, cancelled)
	assert.Equal(t, SessionStatusTornDown, session.Status)

	// A leaked timer callback cannot resurrect the session
	assert.ErrorIs(t, session.CompleteProcessing(), ErrNotProcessing)
	assert.NotEqual(t, SessionStatusSucceeded, session.Status)
}
