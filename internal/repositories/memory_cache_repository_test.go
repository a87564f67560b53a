package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetDel(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheRepository(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "orders:anouar", `[{"orderName":"#1"}]`, time.Minute))

	got, err := cache.Get(ctx, "orders:anouar")
	require.NoError(t, err)
	assert.Equal(t, `[{"orderName":"#1"}]`, got)

	require.NoError(t, cache.Del(ctx, "orders:anouar", "payouts:anouar"))
	_, err = cache.Get(ctx, "orders:anouar")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCacheRepository(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	_, err := cache.Get(ctx, "k")
	assert.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCache_MissOnUnknownKey(t *testing.T) {
	cache := NewMemoryCacheRepository(nil)
	_, err := cache.Get(context.Background(), "нет такого")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
