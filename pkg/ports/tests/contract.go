package tests

import (
	"context"
	"testing"

	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/aretw0/cfrac/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunExpansionCacheContract runs a suite of tests to verify that an ExpansionCache
// implementation adheres to the defined interface contract.
func RunExpansionCacheContract(t *testing.T, cache ports.ExpansionCache) {
	ctx := context.Background()
	key := domain.Rational{Num: 89, Den: 55}
	coefficients := []int64{1, 1, 1, 1, 1, 1, 1, 1, 2}

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, domain.Rational{Num: -1, Den: 999983})
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put and Get", func(t *testing.T) {
		err := cache.Put(ctx, key, coefficients)
		require.NoError(t, err, "Put should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, coefficients, got)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		other := domain.Rational{Num: 22, Den: 7}
		require.NoError(t, cache.Put(ctx, other, []int64{0}))
		require.NoError(t, cache.Put(ctx, other, []int64{3, 7}))

		got, err := cache.Get(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 7}, got)
		_ = cache.Delete(ctx, other)
	})

	t.Run("Isolation", func(t *testing.T) {
		input := []int64{3, 7, 16}
		r := domain.Rational{Num: 355, Den: 113}
		require.NoError(t, cache.Put(ctx, r, input))
		input[0] = 42

		got, err := cache.Get(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 7, 16}, got)

		got[1] = 42
		again, err := cache.Get(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 7, 16}, again)
		_ = cache.Delete(ctx, r)
	})

	t.Run("List", func(t *testing.T) {
		r1 := domain.Rational{Num: 1, Den: 2}
		r2 := domain.Rational{Num: -3, Den: 7}
		_ = cache.Put(ctx, r1, []int64{0, 2})
		_ = cache.Put(ctx, r2, []int64{0, -2, -3})

		defer func() {
			_ = cache.Delete(ctx, r1)
			_ = cache.Delete(ctx, r2)
		}()

		keys, err := cache.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, r1)
		assert.Contains(t, keys, r2)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, coefficients))

		err := cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Get after Delete should return ErrCacheMiss")

		assert.NoError(t, cache.Delete(ctx, key), "Deleting a missing entry should succeed")
	})
}
