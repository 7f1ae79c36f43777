package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	ctx := context.Background()

	m.Observe(ctx, &domain.OperationEvent{Operation: domain.OperationExpand, Terms: 9, Duration: time.Microsecond})
	m.Observe(ctx, &domain.OperationEvent{Operation: domain.OperationExpand, Terms: 9, CacheHit: true})
	m.Observe(ctx, &domain.OperationEvent{Operation: domain.OperationExpand, Err: domain.ErrDegenerateRational})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("expand", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("expand", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("expand")))

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() == "cfrac_expansion_terms" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount(), "failed operations are not sampled")
		}
	}
	assert.True(t, found, "terms histogram should be registered")
}

func TestChain(t *testing.T) {
	var calls []string
	hooks := Chain(
		domain.Hooks{OnOperation: func(ctx context.Context, e *domain.OperationEvent) { calls = append(calls, "first") }},
		domain.Hooks{},
		domain.Hooks{OnOperation: func(ctx context.Context, e *domain.OperationEvent) { calls = append(calls, "second") }},
	)

	hooks.OnOperation(context.Background(), &domain.OperationEvent{Err: errors.New("x")})
	assert.Equal(t, []string{"first", "second"}, calls)
}
