package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Manzzzx/cafe-pos/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// cart:{session_id} -> serialized models.Cart
	keyCart = "cart:%s"

	// An untouched cart eventually expires; every save refreshes the TTL.
	cartTTL = 24 * time.Hour
)

// RedisCartRepository stores carts in Redis so they survive restarts.
type RedisCartRepository struct {
	rdb *redis.Client
}

// NewRedisCartRepository creates a new instance of RedisCartRepository.
func NewRedisCartRepository(rdb *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{
		rdb: rdb,
	}
}

// Get returns the session's cart, or a fresh empty cart if none is stored.
func (r *RedisCartRepository) Get(ctx context.Context, sessionID string) (*models.Cart, error) {
	data, err := r.rdb.Get(ctx, fmt.Sprintf(keyCart, sessionID)).Bytes()
	if err == redis.Nil {
		return models.NewCart(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart for session %s: %w", sessionID, err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart for session %s: %w", sessionID, err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// Save serializes and stores the cart, refreshing its TTL.
func (r *RedisCartRepository) Save(ctx context.Context, sessionID string, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart for session %s: %w", sessionID, err)
	}
	if err := r.rdb.Set(ctx, fmt.Sprintf(keyCart, sessionID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", sessionID, err)
	}
	return nil
}

// Delete removes the session's cart.
func (r *RedisCartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, fmt.Sprintf(keyCart, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for session %s: %w", sessionID, err)
	}
	return nil
}
