//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"resource-scheduler/internal/infra/cache"
	"resource-scheduler/internal/pkg/config"
	"resource-scheduler/internal/testutil/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, ttl time.Duration) *cache.RedisAvailabilityCache {
	t.Helper()
	client, err := cache.NewClient(context.Background(), config.RedisConfig{Addr: dbtest.RedisAddr(t)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisAvailabilityCache(client, ttl)
}

func TestRedisAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	c := newCache(t, time.Minute)
	resourceA := uuid.New()
	resourceB := uuid.New()

	_, ok, err := c.Get(ctx, resourceA, "1:2:-")
	require.NoError(t, err)
	assert.False(t, ok, "miss on empty cache")

	require.NoError(t, c.Set(ctx, resourceA, "1:2:-", []byte(`{"available":true}`)))
	require.NoError(t, c.Set(ctx, resourceA, "3:4:-", []byte(`{"available":false}`)))
	require.NoError(t, c.Set(ctx, resourceB, "1:2:-", []byte(`{"available":true}`)))

	raw, ok, err := c.Get(ctx, resourceA, "3:4:-")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"available":false}`, string(raw))

	require.NoError(t, c.InvalidateResource(ctx, resourceA))

	for _, key := range []string{"1:2:-", "3:4:-"} {
		_, ok, err := c.Get(ctx, resourceA, key)
		require.NoError(t, err)
		assert.False(t, ok, "entry %s should be dropped with its resource", key)
	}
	_, ok, err = c.Get(ctx, resourceB, "1:2:-")
	require.NoError(t, err)
	assert.True(t, ok, "other resources keep their entries")
}

func TestRedisAvailabilityCache_Expires(t *testing.T) {
	ctx := context.Background()
	c := newCache(t, time.Second)
	resourceID := uuid.New()

	require.NoError(t, c.Set(ctx, resourceID, "k", []byte("v")))
	assert.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, resourceID, "k")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisAvailabilityCache_EntriesExpireIndependently(t *testing.T) {
	ctx := context.Background()
	c := newCache(t, 2*time.Second)
	resourceID := uuid.New()

	require.NoError(t, c.Set(ctx, resourceID, "first", []byte("1")))
	time.Sleep(time.Second)
	require.NoError(t, c.Set(ctx, resourceID, "second", []byte("2")))

	assert.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, resourceID, "first")
		return err == nil && !ok
	}, 3*time.Second, 50*time.Millisecond, "a later write must not extend the first entry")

	_, ok, err := c.Get(ctx, resourceID, "second")
	require.NoError(t, err)
	assert.True(t, ok, "second entry keeps its own TTL")
}

func TestRedisAvailabilityCache_WritesAfterInvalidation(t *testing.T) {
	ctx := context.Background()
	c := newCache(t, time.Minute)
	resourceID := uuid.New()

	require.NoError(t, c.InvalidateResource(ctx, resourceID), "invalidating a resource never cached")
	require.NoError(t, c.Set(ctx, resourceID, "k", []byte("old")))
	require.NoError(t, c.InvalidateResource(ctx, resourceID))

	_, ok, err := c.Get(ctx, resourceID, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, resourceID, "k", []byte("new")))
	raw, ok, err := c.Get(ctx, resourceID, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", string(raw))
}

func TestNewAvailabilityCache_DisabledWithoutAddress(t *testing.T) {
	client, err := cache.NewClient(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.IsType(t, cache.NoopCache{}, cache.NewAvailabilityCache(client, config.RedisConfig{}))
}
