package cache

import (
	"context"
	"time"
)

// Cache is the key-value store port behind the cart store and any other
// ephemeral state. Implementations are swappable (Redis in production,
// miniredis in tests).
type Cache interface {
	// Get retrieves a value by key. A missing key is an error whose text
	// contains "key not found"; callers that treat absence as empty check
	// for it.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the connection.
	Close() error
}
