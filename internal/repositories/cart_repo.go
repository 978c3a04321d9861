package repositories

import (
	"context"

	"github.com/Manzzzx/cafe-pos/internal/models"
)

// CartRepository defines the persistence boundary for per-session carts. A
// cart survives application restarts until it is deleted (checkout or clear).
type CartRepository interface {
	// Get returns the cart stored for the session, or a fresh empty cart if
	// none exists.
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, sessionID string, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
