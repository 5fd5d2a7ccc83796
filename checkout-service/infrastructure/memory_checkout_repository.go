package infrastructure

import (
	"context"
	"sync"

	"github.com/coinshop/recharge-system/checkout-service/domain"
	"github.com/coinshop/recharge-system/shared/models"
)

var _ domain.CheckoutRepository = (*MemoryCheckoutRepository)(nil)

// MemoryCheckoutRepository keeps checkouts in process memory. Nothing
// outlives the process; that is the point of the simulation.
type MemoryCheckoutRepository struct {
	mu        sync.RWMutex
	checkouts map[models.ID]*domain.Checkout
}

// NewMemoryCheckoutRepository creates a new MemoryCheckoutRepository
func NewMemoryCheckoutRepository() *MemoryCheckoutRepository {
	return &MemoryCheckoutRepository{
		checkouts: make(map[models.ID]*domain.Checkout),
	}
}

// Save stores the checkout
func (r *MemoryCheckoutRepository) Save(_ context.Context, checkout *domain.Checkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkouts[checkout.ID] = checkout
	return nil
}

// FindByID returns the checkout or nil when unknown
func (r *MemoryCheckoutRepository) FindByID(_ context.Context, id models.ID) (*domain.Checkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checkouts[id], nil
}

// Delete removes the checkout
func (r *MemoryCheckoutRepository) Delete(_ context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkouts, id)
	return nil
}
