package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehousing/invoicing_backend/internal/platform/cache"
)

func TestGetCachesLoadedValue(t *testing.T) {
	loads := 0
	c := cache.NewReadThrough(func(ctx context.Context, key string) (int64, error) {
		loads++
		return 42, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx, "current")
		require.NoError(t, err)
		assert.Equal(t, int64(42), v)
	}
	assert.Equal(t, 1, loads)
}

func TestGetDoesNotCacheFailedLoads(t *testing.T) {
	loadErr := errors.New("load failed")
	loads := 0
	c := cache.NewReadThrough(func(ctx context.Context, key string) (int64, error) {
		loads++
		if loads == 1 {
			return 0, loadErr
		}
		return 7, nil
	})

	ctx := context.Background()
	_, err := c.Get(ctx, "current")
	assert.ErrorIs(t, err, loadErr)

	v, err := c.Get(ctx, "current")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.Equal(t, 2, loads)
}

func TestInvalidateForcesReload(t *testing.T) {
	values := []int64{1, 2}
	loads := 0
	c := cache.NewReadThrough(func(ctx context.Context, key string) (int64, error) {
		v := values[loads]
		loads++
		return v, nil
	})

	ctx := context.Background()
	v, err := c.Get(ctx, "current")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	c.Invalidate("current")

	v, err = c.Get(ctx, "current")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestKeysAreIndependent(t *testing.T) {
	c := cache.NewReadThrough(func(ctx context.Context, key string) (string, error) {
		return "value-" + key, nil
	})

	ctx := context.Background()
	a, err := c.Get(ctx, "a")
	require.NoError(t, err)
	b, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "value-a", a)
	assert.Equal(t, "value-b", b)

	c.Invalidate("a")
	b2, err := c.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "value-b", b2)
}
