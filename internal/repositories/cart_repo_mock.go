package repositories

import (
	"context"
	"sync"

	"github.com/Manzzzx/cafe-pos/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// Get returns the session's cart, or a fresh empty cart if none is stored.
func (r *MockCartRepository) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[sessionID]
	if !ok {
		return models.NewCart(), nil
	}
	// Copy the item slice so callers cannot mutate stored state in place.
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart, nil
}

// Save stores the cart for the session.
func (r *MockCartRepository) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	stored := *cart
	stored.Items = items
	r.carts[sessionID] = stored
	return nil
}

// Delete removes the session's cart.
func (r *MockCartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}
