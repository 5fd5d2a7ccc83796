package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/coinshop/recharge-system/checkout-service/application"
	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
)

// CheckoutHandlers contains checkout HTTP handlers
type CheckoutHandlers struct {
	startCheckout      *application.StartCheckout
	getCheckout        *application.GetCheckout
	selectPackage      *application.SelectPackage
	buySelected        *application.BuySelected
	enterAmount        *application.EnterAmount
	selectMethod       *application.SelectPaymentMethod
	editCard           *application.EditCard
	submitPayment      *application.SubmitPayment
	saveCardNow        *application.SaveCardNow
	acknowledgeSuccess *application.AcknowledgeSuccess
	goBack             *application.GoBack
	setRecipient       *application.SetRecipient
	lookupRecipient    *application.LookupRecipient
}

// NewCheckoutHandlers creates new checkout handlers
func NewCheckoutHandlers(
	startCheckout *application.StartCheckout,
	getCheckout *application.GetCheckout,
	selectPackage *application.SelectPackage,
	buySelected *application.BuySelected,
	enterAmount *application.EnterAmount,
	selectMethod *application.SelectPaymentMethod,
	editCard *application.EditCard,
	submitPayment *application.SubmitPayment,
	saveCardNow *application.SaveCardNow,
	acknowledgeSuccess *application.AcknowledgeSuccess,
	goBack *application.GoBack,
	setRecipient *application.SetRecipient,
	lookupRecipient *application.LookupRecipient,
) *CheckoutHandlers {
	return &CheckoutHandlers{
		startCheckout:      startCheckout,
		getCheckout:        getCheckout,
		selectPackage:      selectPackage,
		buySelected:        buySelected,
		enterAmount:        enterAmount,
		selectMethod:       selectMethod,
		editCard:           editCard,
		submitPayment:      submitPayment,
		saveCardNow:        saveCardNow,
		acknowledgeSuccess: acknowledgeSuccess,
		goBack:             goBack,
		setRecipient:       setRecipient,
		lookupRecipient:    lookupRecipient,
	}
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/checkouts", func(r chi.Router) {
		r.Post("/", h.StartCheckout)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCheckout)
			r.Post("/package", h.SelectPackage)
			r.Post("/buy", h.BuySelected)
			r.Post("/amount/keypad", h.KeypadInput)
			r.Post("/amount/quick", h.QuickAmount)
			r.Post("/amount/continue", h.ContinueAmount)
			r.Post("/method", h.SelectMethod)
			r.Post("/card", h.EditCardField)
			r.Post("/save-toggle", h.ToggleSaveCard)
			r.Post("/submit", h.SubmitPayment)
			r.Post("/save-card", h.SaveCardNow)
			r.Post("/acknowledge", h.AcknowledgeSuccess)
			r.Post("/back", h.GoBack)
			r.Post("/recipient", h.SetRecipient)
			r.Get("/recipient", h.LookupRecipient)
		})
	})
}

// StartCheckout handles checkout creation requests
func (h *CheckoutHandlers) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var cmd application.StartCheckoutCommand
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	response, err := h.startCheckout.Execute(r.Context(), &cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// GetCheckout handles checkout snapshot requests
func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	query := &application.GetCheckoutQuery{CheckoutID: chi.URLParam(r, "id")}

	response, err := h.getCheckout.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// SelectPackage handles package selection requests
func (h *CheckoutHandlers) SelectPackage(w http.ResponseWriter, r *http.Request) {
	var cmd application.SelectPackageCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.selectPackage.Execute(r.Context(), &cmd))
}

// BuySelected handles the buy action
func (h *CheckoutHandlers) BuySelected(w http.ResponseWriter, r *http.Request) {
	cmd := application.BuySelectedCommand{CheckoutID: chi.URLParam(r, "id")}
	h.execute(w, h.buySelected.Execute(r.Context(), &cmd))
}

// KeypadInput handles keypad tokens during amount entry
func (h *CheckoutHandlers) KeypadInput(w http.ResponseWriter, r *http.Request) {
	var cmd application.KeypadInputCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.enterAmount.Keypad(r.Context(), &cmd))
}

// QuickAmount handles quick-select amounts during amount entry
func (h *CheckoutHandlers) QuickAmount(w http.ResponseWriter, r *http.Request) {
	var cmd application.QuickAmountCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.enterAmount.Quick(r.Context(), &cmd))
}

// ContinueAmount confirms the entered amount
func (h *CheckoutHandlers) ContinueAmount(w http.ResponseWriter, r *http.Request) {
	cmd := application.ContinueAmountCommand{CheckoutID: chi.URLParam(r, "id")}
	h.execute(w, h.enterAmount.Continue(r.Context(), &cmd))
}

// SelectMethod handles payment method switches
func (h *CheckoutHandlers) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var cmd application.SelectPaymentMethodCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.selectMethod.Execute(r.Context(), &cmd))
}

// EditCardField handles new-card draft edits
func (h *CheckoutHandlers) EditCardField(w http.ResponseWriter, r *http.Request) {
	var cmd application.EditCardFieldCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.editCard.EditField(r.Context(), &cmd))
}

// ToggleSaveCard handles the save-card opt-in
func (h *CheckoutHandlers) ToggleSaveCard(w http.ResponseWriter, r *http.Request) {
	var cmd application.ToggleSaveCardCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.editCard.ToggleSave(r.Context(), &cmd))
}

// SubmitPayment handles payment submission
func (h *CheckoutHandlers) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	cmd := application.SubmitPaymentCommand{CheckoutID: chi.URLParam(r, "id")}
	h.execute(w, h.submitPayment.Execute(r.Context(), &cmd))
}

// SaveCardNow handles the early save action
func (h *CheckoutHandlers) SaveCardNow(w http.ResponseWriter, r *http.Request) {
	cmd := application.SaveCardNowCommand{CheckoutID: chi.URLParam(r, "id")}
	h.execute(w, h.saveCardNow.Execute(r.Context(), &cmd))
}

// AcknowledgeSuccess handles the done action on the success screen
func (h *CheckoutHandlers) AcknowledgeSuccess(w http.ResponseWriter, r *http.Request) {
	cmd := application.AcknowledgeSuccessCommand{CheckoutID: chi.URLParam(r, "id")}
	h.execute(w, h.acknowledgeSuccess.Execute(r.Context(), &cmd))
}

// GoBack handles leaving the current phase
func (h *CheckoutHandlers) GoBack(w http.ResponseWriter, r *http.Request) {
	cmd := application.GoBackCommand{CheckoutID: chi.URLParam(r, "id")}
	h.execute(w, h.goBack.Execute(r.Context(), &cmd))
}

// SetRecipient stores the recipient handle
func (h *CheckoutHandlers) SetRecipient(w http.ResponseWriter, r *http.Request) {
	var cmd application.SetRecipientCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	h.execute(w, h.setRecipient.Execute(r.Context(), &cmd))
}

// LookupRecipient resolves recipient details, degrading silently
func (h *CheckoutHandlers) LookupRecipient(w http.ResponseWriter, r *http.Request) {
	query := &application.LookupRecipientQuery{Handle: r.URL.Query().Get("handle")}

	response, err := h.lookupRecipient.Execute(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *CheckoutHandlers) execute(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError maps domain sentinels to HTTP statuses. Validation blocks
// are conflicts, not server errors.
func writeError(w http.ResponseWriter, err error) {
	switch errors.Cause(err) {
	case domain.ErrCheckoutClosed:
		http.Error(w, err.Error(), http.StatusNotFound)
	case domain.ErrUnknownPackage, domain.ErrUnknownSavedCard:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case domain.ErrSubmitBlocked, domain.ErrAmountBlocked, domain.ErrSaveBlocked,
		domain.ErrWrongPhase, domain.ErrNoActiveSession, domain.ErrSessionProcessing,
		domain.ErrSessionFinished, domain.ErrNotProcessing, domain.ErrNotSucceeded:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
