package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

func TestMemoryCacheTypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	in := sample{Name: "btc", Values: map[string]float64{"2024-01-01": 42000}}
	require.NoError(t, mc.Set(ctx, "k", in, time.Minute))

	var out sample
	require.NoError(t, mc.Get(ctx, "k", &out))
	assert.Equal(t, in, out)

	require.NoError(t, mc.Set(ctx, "s", "raw", time.Minute))
	var s string
	require.NoError(t, mc.Get(ctx, "s", &s))
	assert.Equal(t, "raw", s)

	assert.ErrorIs(t, mc.Get(ctx, "missing", &s), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", 1, 10*time.Millisecond))
	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	var v int
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
	ok, _ = mc.Exists(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	time.Sleep(time.Millisecond)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "c", 3, time.Minute))

	assert.Equal(t, 2, mc.Len())
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	require.NoError(t, mc.Get(ctx, "a", &v))
	assert.Equal(t, 1, v)

	// overwriting an existing key never evicts
	require.NoError(t, mc.Set(ctx, "c", 4, time.Minute))
	assert.Equal(t, 2, mc.Len())
}

func TestMemoryCacheLock(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	ok, err := mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = mc.TryLock(ctx, "lock", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, mc.Unlock(ctx, "lock"))
	ok, _ = mc.TryLock(ctx, "lock", time.Minute)
	assert.True(t, ok)
}

func TestMemoryCacheCloseIsIdempotent(t *testing.T) {
	mc := NewMemoryCache(WithMemoryCleanup(time.Millisecond))
	require.NoError(t, mc.Close())
	require.NoError(t, mc.Close())
}

func TestLayeredCachePromotesFromL2(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2, WithLayeredMemorySize(8), WithLayeredL1TTL(time.Minute))
	defer lc.Close()

	in := sample{Name: "eth", Values: map[string]float64{"2024-01-01": 2300}}
	require.NoError(t, l2.Set(ctx, "k", in, time.Hour))

	var out sample
	require.NoError(t, lc.Get(ctx, "k", &out))
	assert.Equal(t, in, out)

	// served from L1 once promoted
	require.NoError(t, l2.Delete(ctx, "k"))
	out = sample{}
	require.NoError(t, lc.Get(ctx, "k", &out))
	assert.Equal(t, in, out)

	var s string
	require.NoError(t, l2.Set(ctx, "s", "plain", time.Hour))
	require.NoError(t, lc.Get(ctx, "s", &s))
	require.NoError(t, lc.Get(ctx, "s", &s))
	assert.Equal(t, "plain", s)
}

func TestLayeredCacheWriteThroughAndDelete(t *testing.T) {
	ctx := context.Background()
	l2 := NewMemoryCache()
	lc := NewLayeredCache(l2)
	defer lc.Close()

	require.NoError(t, lc.Set(ctx, "k", 7, time.Hour))
	var v int
	require.NoError(t, l2.Get(ctx, "k", &v))
	assert.Equal(t, 7, v)

	ok, err := lc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lc.Delete(ctx, "k"))
	assert.ErrorIs(t, lc.Get(ctx, "k", &v), ErrCacheMiss)

	ok, err = lc.TryLock(ctx, "refresh", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l2.TryLock(ctx, "refresh", time.Minute)
	assert.False(t, ok)
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "overlay:bitcoin", GenerateKey("overlay", "bitcoin"))
	assert.Equal(t, "overlay:bitcoin:3650", GenerateKeyWithParams("overlay", "bitcoin", 3650))
}
