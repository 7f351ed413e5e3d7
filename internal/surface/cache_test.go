package surface

import (
	"context"
	"path/filepath"
	"testing"

	"cost-planner/internal/location"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T, path string, s CostSurface) *Cache {
	t.Helper()

	cache, err := OpenCache(path, s, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	return cache
}

func TestCache_MemoizesAnswers(t *testing.T) {
	ctx := context.Background()
	inner := NewCounting(Uniform{Obstruction: 3, Bend: 7})
	cache := openTestCache(t, MemoryCachePath, inner)

	from, to := location.New(0, 0), location.New(10, 0)

	for i := 0; i < 3; i++ {
		w, err := cache.ObstructionWeight(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, 3.0, w)

		b, err := cache.BendCost(ctx, from, to)
		require.NoError(t, err)
		assert.Equal(t, 7.0, b)
	}

	assert.Equal(t, int64(1), inner.ObstructionCalls())
	assert.Equal(t, int64(1), inner.BendCalls())

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCache_DirectionMatters(t *testing.T) {
	ctx := context.Background()
	inner := NewCounting(Funcs{
		Obstruction: func(a, b location.Location) float64 { return 2*b.X + a.X },
	})
	cache := openTestCache(t, MemoryCachePath, inner)

	forward, err := cache.ObstructionWeight(ctx, location.New(0, 0), location.New(4, 0))
	require.NoError(t, err)
	backward, err := cache.ObstructionWeight(ctx, location.New(4, 0), location.New(0, 0))
	require.NoError(t, err)

	assert.Equal(t, 8.0, forward)
	assert.Equal(t, 4.0, backward)
	assert.Equal(t, int64(2), inner.ObstructionCalls())
}

func TestCache_DoesNotStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	inner := NewCounting(Funcs{})
	cache := openTestCache(t, MemoryCachePath, inner)

	for i := 0; i < 2; i++ {
		_, err := cache.BendCost(ctx, location.New(0, 0), location.New(1, 1))
		assert.True(t, errors.Is(err, ErrCostUnavailable))
	}

	assert.Equal(t, int64(2), inner.BendCalls())

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCache_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "costs.db")

	first := NewCounting(Uniform{Obstruction: 2})
	cache, err := OpenCache(path, first, nil)
	require.NoError(t, err)
	_, err = cache.ObstructionWeight(ctx, location.New(1, 1), location.New(2, 2))
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	second := NewCounting(Uniform{Obstruction: 99})
	reopened := openTestCache(t, path, second)

	w, err := reopened.ObstructionWeight(ctx, location.New(1, 1), location.New(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 2.0, w)
	assert.Zero(t, second.Calls())
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	inner := NewCounting(Uniform{Obstruction: 1})
	cache := openTestCache(t, MemoryCachePath, inner)

	_, err := cache.ObstructionWeight(ctx, location.New(0, 0), location.New(1, 0))
	require.NoError(t, err)
	require.NoError(t, cache.Clear(ctx))

	_, err = cache.ObstructionWeight(ctx, location.New(0, 0), location.New(1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(2), inner.ObstructionCalls())
}
