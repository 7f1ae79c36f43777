package observability

import (
	"context"

	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records engine operations as Prometheus series.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	terms      prometheus.Histogram
	cacheHits  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfrac_operations_total",
				Help: "Total number of engine operations",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cfrac_operation_duration_seconds",
				Help:    "Duration of engine operations",
				Buckets: prometheus.ExponentialBuckets(1e-7, 4, 10),
			},
			[]string{"operation"},
		),
		terms: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "cfrac_expansion_terms",
				Help:    "Number of coefficients per successful operation",
				Buckets: prometheus.LinearBuckets(1, 8, 12),
			},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cfrac_cache_hits_total",
				Help: "Expansions served from the cache",
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(m.operations, m.duration, m.terms, m.cacheHits)
	return m
}

// Observe records one operation event.
func (m *Metrics) Observe(ctx context.Context, e *domain.OperationEvent) {
	op := string(e.Operation)
	outcome := "ok"
	if e.Err != nil {
		outcome = "error"
	}

	m.operations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(e.Duration.Seconds())
	if e.Err == nil {
		m.terms.Observe(float64(e.Terms))
	}
	if e.CacheHit {
		m.cacheHits.WithLabelValues(op).Inc()
	}
}

// Hooks returns engine hooks bound to these metrics.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{OnOperation: m.Observe}
}

// Chain combines several hook sets into one. Nil callbacks are skipped.
func Chain(hooks ...domain.Hooks) domain.Hooks {
	return domain.Hooks{
		OnOperation: func(ctx context.Context, e *domain.OperationEvent) {
			for _, h := range hooks {
				if h.OnOperation != nil {
					h.OnOperation(ctx, e)
				}
			}
		},
	}
}
