package cfrac_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/cfrac"
	"github.com/aretw0/cfrac/pkg/adapters/memory"
	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCache records cache traffic and can be told to fail.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, r domain.Rational) ([]int64, error) {
	args := m.Called(r)
	coeffs, _ := args.Get(0).([]int64)
	return coeffs, args.Error(1)
}

func (m *MockCache) Put(ctx context.Context, r domain.Rational, coefficients []int64) error {
	return m.Called(r, coefficients).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, r domain.Rational) error {
	return m.Called(r).Error(0)
}

func (m *MockCache) List(ctx context.Context) ([]domain.Rational, error) {
	return nil, nil
}

func TestEngine_Expand(t *testing.T) {
	eng := cfrac.New()
	ctx := context.Background()

	cf, err := eng.Expand(ctx, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, cf.Coefficients())

	cf, err = eng.Expand(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 2}, cf.Coefficients())

	cf, err = eng.Expand(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, cf.Coefficients())

	_, err = eng.Expand(ctx, 0, 0)
	assert.ErrorIs(t, err, domain.ErrDegenerateRational)
}

func TestEngine_RoundTrip(t *testing.T) {
	eng := cfrac.New()
	ctx := context.Background()

	for _, c := range [][2]int64{{3, 7}, {22, 7}, {1, 3}, {5, 1}, {89, 55}, {-3, 7}} {
		cf, err := eng.Expand(ctx, c[0], c[1])
		require.NoError(t, err)

		r, err := eng.Reconstruct(ctx, cf.Coefficients())
		require.NoError(t, err)
		assert.Equal(t, c[0]*r.Den, r.Num*c[1], "Roundtrip failed for %d/%d", c[0], c[1])
	}
}

func TestEngine_Convergents(t *testing.T) {
	eng := cfrac.New()

	conv, err := eng.Convergents(context.Background(), 22, 7)
	require.NoError(t, err)
	assert.Equal(t, []domain.Convergent{{H: 3, K: 1}, {H: 22, K: 7}}, conv)

	_, err = eng.Convergents(context.Background(), 0, 0)
	assert.ErrorIs(t, err, domain.ErrDegenerateRational)
}

func TestEngine_Approximate(t *testing.T) {
	eng := cfrac.New()
	ctx := context.Background()

	r, err := eng.Approximate(ctx, 22, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Rational{Num: 3, Den: 1}, r)

	_, err = eng.Approximate(ctx, 22, 7, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidBound)
}

func TestEngine_CacheHit(t *testing.T) {
	cache := memory.NewCache()
	var events []domain.OperationEvent
	eng := cfrac.New(
		cfrac.WithCache(cache),
		cfrac.WithHooks(domain.Hooks{
			OnOperation: func(ctx context.Context, e *domain.OperationEvent) {
				events = append(events, *e)
			},
		}),
	)
	ctx := context.Background()

	first, err := eng.Expand(ctx, 178, 110)
	require.NoError(t, err)
	second, err := eng.Expand(ctx, 89, 55)
	require.NoError(t, err)

	assert.Equal(t, first.Coefficients(), second.Coefficients())
	assert.Equal(t, 1, cache.Len(), "both inputs reduce to the same key")

	require.Len(t, events, 2)
	assert.False(t, events[0].CacheHit)
	assert.True(t, events[1].CacheHit)
	assert.Equal(t, domain.OperationExpand, events[1].Operation)
	assert.Equal(t, "89/55", events[1].Input)
	assert.Equal(t, 9, events[1].Terms)
}

func TestEngine_CacheFailureIsNotFatal(t *testing.T) {
	cache := new(MockCache)
	key := domain.Rational{Num: 22, Den: 7}
	cache.On("Get", key).Return(nil, errors.New("connection refused"))
	cache.On("Put", key, []int64{3, 7}).Return(errors.New("connection refused"))

	eng := cfrac.New(cfrac.WithCache(cache))

	cf, err := eng.Expand(context.Background(), 44, 14)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, cf.Coefficients())
	cache.AssertExpectations(t)
}

func TestEngine_ValidationSkipsCache(t *testing.T) {
	cache := new(MockCache)
	eng := cfrac.New(cfrac.WithCache(cache))

	_, err := eng.Expand(context.Background(), 0, 0)
	assert.ErrorIs(t, err, domain.ErrDegenerateRational)
	cache.AssertNotCalled(t, "Get", mock.Anything)
}

func TestEngine_ContextCanceled(t *testing.T) {
	eng := cfrac.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Expand(ctx, 22, 7)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = eng.Reconstruct(ctx, []int64{3, 7})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_HooksReportErrors(t *testing.T) {
	var got *domain.OperationEvent
	eng := cfrac.New(cfrac.WithHooks(domain.Hooks{
		OnOperation: func(ctx context.Context, e *domain.OperationEvent) {
			got = e
		},
	}))

	_, _ = eng.Approximate(context.Background(), 0, 0, 10)
	require.NotNil(t, got)
	assert.Equal(t, domain.OperationApproximate, got.Operation)
	assert.ErrorIs(t, got.Err, domain.ErrDegenerateRational)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(cfrac.Version))
}
