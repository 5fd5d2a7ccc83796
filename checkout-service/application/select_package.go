package application

import (
	"context"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/events"
)

// SelectPackageCommand represents the command to select a catalog entry
type SelectPackageCommand struct {
	CheckoutID string `json:"checkout_id"`
	PackageID  int64  `json:"package_id"`
}

// SelectPackage use case marks a catalog entry as the current selection
type SelectPackage struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
}

// NewSelectPackage creates a new SelectPackage use case
func NewSelectPackage(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
) *SelectPackage {
	return &SelectPackage{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
	}
}

// Execute selects a package. Selecting the custom placeholder opens
// amount entry.
func (uc *SelectPackage) Execute(ctx context.Context, cmd *SelectPackageCommand) error {
	checkout, err := loadCheckout(ctx, uc.checkoutRepository, cmd.CheckoutID)
	if err != nil {
		return err
	}

	return commitCheckout(ctx, uc.checkoutRepository, uc.eventPublisher, checkout, func() error {
		return checkout.SelectPackage(cmd.PackageID)
	})
}
