package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	adapter, err := NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	return adapter, mr
}

// TestRedisAdapter_SetGet verifies the round trip.
func TestRedisAdapter_SetGet(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k1", []byte("v1"), 0))

	val, err := adapter.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), val)
}

// TestRedisAdapter_GetMissing verifies the "key not found" error contract.
func TestRedisAdapter_GetMissing(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key not found")
}

// TestRedisAdapter_TTL verifies expiration.
func TestRedisAdapter_TTL(t *testing.T) {
	adapter, mr := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k1", []byte("v1"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := adapter.Get(ctx, "k1")
	assert.Error(t, err)
}

// TestRedisAdapter_Delete verifies deletion, including of absent keys.
func TestRedisAdapter_Delete(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k1", []byte("v1"), 0))
	require.NoError(t, adapter.Delete(ctx, "k1"))
	require.NoError(t, adapter.Delete(ctx, "k1"))

	_, err := adapter.Get(ctx, "k1")
	assert.Error(t, err)
}

// TestRedisAdapter_Ping verifies reachability checks.
func TestRedisAdapter_Ping(t *testing.T) {
	adapter, mr := newTestAdapter(t)

	require.NoError(t, adapter.Ping(context.Background()))

	mr.Close()
	assert.Error(t, adapter.Ping(context.Background()))
}

// TestNewRedisAdapter_InvalidURL verifies URL parsing errors surface.
func TestNewRedisAdapter_InvalidURL(t *testing.T) {
	_, err := NewRedisAdapter("not-a-redis-url")
	assert.Error(t, err)
}
