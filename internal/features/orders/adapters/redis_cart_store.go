package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/miteshhgoyal/gearmates/internal/core/cache"
	"github.com/miteshhgoyal/gearmates/internal/features/orders/domain"
)

const cartKeyPrefix = "cart:"

// RedisCartStore implements the CartStore port on the cache adapter. Carts
// are small JSON documents keyed by user id with no expiration.
type RedisCartStore struct {
	cache cache.Cache
}

// NewRedisCartStore creates a new RedisCartStore.
func NewRedisCartStore(c cache.Cache) *RedisCartStore {
	return &RedisCartStore{cache: c}
}

// Get returns the user's cart, empty when none exists yet.
func (s *RedisCartStore) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := s.cache.Get(ctx, cartKeyPrefix+userID)
	if err != nil {
		if strings.Contains(err.Error(), "key not found") {
			return domain.NewCart(), nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = map[string]int{}
	}
	return &cart, nil
}

// Add increases the quantity of a product in the user's cart.
func (s *RedisCartStore) Add(ctx context.Context, userID, productID string, quantity int) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	cart.Add(productID, quantity)
	return s.save(ctx, userID, cart)
}

// Remove drops a product from the user's cart.
func (s *RedisCartStore) Remove(ctx context.Context, userID, productID string) error {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	cart.Remove(productID)
	return s.save(ctx, userID, cart)
}

// Clear empties the user's cart. Clearing an absent cart is a no-op.
func (s *RedisCartStore) Clear(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, cartKeyPrefix+userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) save(ctx context.Context, userID string, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.cache.Set(ctx, cartKeyPrefix+userID, data, 0); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
