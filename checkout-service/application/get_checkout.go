package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
)

// GetCheckoutQuery represents the query for a checkout snapshot
type GetCheckoutQuery struct {
	CheckoutID string `json:"checkout_id"`
}

// PackageView is one catalog entry as the view renders it
type PackageView struct {
	ID         int64  `json:"id"`
	CoinsLabel string `json:"coins_label"`
	Price      string `json:"price"`
	IsCustom   bool   `json:"is_custom"`
	Selected   bool   `json:"selected"`
}

// AmountEntryView is the state of the custom amount modal
type AmountEntryView struct {
	Display     string `json:"display"`
	Price       string `json:"price"`
	CanContinue bool   `json:"can_continue"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
}

// BundleSummaryView summarizes the active bundle
type BundleSummaryView struct {
	Coins int    `json:"coins"`
	Price string `json:"price"`
}

// SuccessView is the confirmation payload on the success screen
type SuccessView struct {
	Coins           int    `json:"coins"`
	Price           string `json:"price"`
	RecipientHandle string `json:"recipient_handle"`
}

// PaymentView is the state of the payment screen. The full card number is
// never exposed; only the masked display and saved-card summaries leave
// the session.
type PaymentView struct {
	Status           string                 `json:"status"`
	Method           domain.MethodSelection `json:"method"`
	Bundle           BundleSummaryView      `json:"bundle"`
	MaskedCardNumber string                 `json:"masked_card_number"`
	CardName         string                 `json:"card_name"`
	CardExpiry       string                 `json:"card_expiry"`
	SaveCard         bool                   `json:"save_card"`
	CanSubmit        bool                   `json:"can_submit"`
	Processing       bool                   `json:"processing"`
	Countdown        string                 `json:"countdown,omitempty"`
	Success          *SuccessView           `json:"success,omitempty"`
}

// CheckoutViewResponse is the full view snapshot
type CheckoutViewResponse struct {
	CheckoutID      string               `json:"checkout_id"`
	Phase           string               `json:"phase"`
	RecipientHandle string               `json:"recipient_handle"`
	Packages        []PackageView        `json:"packages"`
	QuickAmounts    []int                `json:"quick_amounts"`
	ActiveBundle    BundleSummaryView    `json:"active_bundle"`
	SavedCards      []domain.CardSummary `json:"saved_cards"`
	AmountEntry     *AmountEntryView     `json:"amount_entry,omitempty"`
	Payment         *PaymentView         `json:"payment,omitempty"`
}

// GetCheckout use case builds the view snapshot
type GetCheckout struct {
	checkoutRepository domain.CheckoutRepository
}

// NewGetCheckout creates a new GetCheckout use case
func NewGetCheckout(checkoutRepository domain.CheckoutRepository) *GetCheckout {
	return &GetCheckout{checkoutRepository: checkoutRepository}
}

// Execute returns the current checkout snapshot
func (uc *GetCheckout) Execute(ctx context.Context, query *GetCheckoutQuery) (*CheckoutViewResponse, error) {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, query.CheckoutID)
	if err != nil {
		return nil, err
	}

	checkout.Lock()
	defer checkout.Unlock()

	active := checkout.ActiveBundle()
	response := &CheckoutViewResponse{
		CheckoutID:      checkout.ID.String(),
		Phase:           string(checkout.Phase),
		RecipientHandle: checkout.RecipientHandle,
		QuickAmounts:    checkout.Catalog.QuickAmounts(),
		ActiveBundle: BundleSummaryView{
			Coins: active.Coins,
			Price: active.Price.Format(),
		},
		SavedCards: checkout.Vault.Summaries(),
	}

	for _, bundle := range checkout.Catalog.Bundles() {
		response.Packages = append(response.Packages, PackageView{
			ID:         bundle.ID,
			CoinsLabel: bundle.CoinsLabel(),
			Price:      bundle.Price.Format(),
			IsCustom:   bundle.IsCustom,
			Selected:   bundle.ID == checkout.SelectedPackageID,
		})
	}

	if entry := checkout.AmountEntry; entry != nil {
		response.AmountEntry = &AmountEntryView{
			Display:     entry.Display(),
			Price:       entry.Price().Format(),
			CanContinue: entry.CanContinue(),
			Min:         domain.MinCustomAmount,
			Max:         domain.MaxCustomAmount,
		}
	}

	if session := checkout.Session; session != nil {
		payment := &PaymentView{
			Status: string(session.Status),
			Method: session.Method,
			Bundle: BundleSummaryView{
				Coins: session.Bundle.Coins,
				Price: session.Bundle.Price.Format(),
			},
			MaskedCardNumber: session.Draft.Masked(),
			CardName:         session.Draft.Name,
			CardExpiry:       session.Draft.Expiry,
			SaveCard:         session.SaveCard,
			CanSubmit:        session.CanSubmit(),
			Processing:       session.Processing(),
		}

		if session.Status == domain.SessionStatusProcessingWallet {
			payment.Countdown = session.CountdownDisplay()
		}

		if session.Status == domain.SessionStatusSucceeded {
			payment.Success = &SuccessView{
				Coins:           session.Bundle.Coins,
				Price:           session.Bundle.Price.Format(),
				RecipientHandle: session.RecipientHandle,
			}
		}

		response.Payment = payment
	}

	return response, nil
}
