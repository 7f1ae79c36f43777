package cfrac

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/aretw0/cfrac/pkg/ports"
)

// Engine is the high-level entry point for the cfrac library.
// It wraps the domain engine with an optional expansion cache, logging and hooks.
type Engine struct {
	cache  ports.ExpansionCache
	hooks  domain.Hooks
	logger *slog.Logger
}

// Ensure Engine satisfies the port used by adapters.
var _ ports.Calculator = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithCache enables caching of expansions.
func WithCache(cache ports.ExpansionCache) Option {
	return func(e *Engine) {
		e.cache = cache
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return eng
}

// Expand returns the continued fraction of p/q.
// Returns domain.ErrDegenerateRational for 0/0.
func (e *Engine) Expand(ctx context.Context, p, q int64) (domain.ContinuedFraction, error) {
	start := time.Now()
	cf, hit, err := e.expand(ctx, p, q)
	e.emit(ctx, &domain.OperationEvent{
		Operation: domain.OperationExpand,
		Input:     fmt.Sprintf("%d/%d", p, q),
		Terms:     cf.Len(),
		CacheHit:  hit,
		Err:       err,
	}, start)
	return cf, err
}

// Reconstruct folds coefficients back into the rational they encode.
func (e *Engine) Reconstruct(ctx context.Context, coefficients []int64) (domain.Rational, error) {
	start := time.Now()
	cf := domain.FromCoefficients(coefficients)

	var r domain.Rational
	err := ctx.Err()
	if err == nil {
		r = cf.ToRational()
	}
	e.emit(ctx, &domain.OperationEvent{
		Operation: domain.OperationReconstruct,
		Input:     cf.String(),
		Terms:     cf.Len(),
		Err:       err,
	}, start)
	return r, err
}

// Convergents returns the convergents of the expansion of p/q.
func (e *Engine) Convergents(ctx context.Context, p, q int64) ([]domain.Convergent, error) {
	start := time.Now()
	cf, hit, err := e.expand(ctx, p, q)

	var conv []domain.Convergent
	if err == nil {
		conv = cf.Convergents()
	}
	e.emit(ctx, &domain.OperationEvent{
		Operation: domain.OperationConvergents,
		Input:     fmt.Sprintf("%d/%d", p, q),
		Terms:     cf.Len(),
		CacheHit:  hit,
		Err:       err,
	}, start)
	return conv, err
}

// Approximate returns the best rational approximation of p/q whose denominator
// does not exceed maxDen.
func (e *Engine) Approximate(ctx context.Context, p, q, maxDen int64) (domain.Rational, error) {
	start := time.Now()
	cf, hit, err := e.expand(ctx, p, q)

	var r domain.Rational
	if err == nil {
		r, err = cf.Approximate(maxDen)
	}
	e.emit(ctx, &domain.OperationEvent{
		Operation: domain.OperationApproximate,
		Input:     fmt.Sprintf("%d/%d", p, q),
		Terms:     cf.Len(),
		CacheHit:  hit,
		Err:       err,
	}, start)
	return r, err
}

// expand reports whether the expansion was served from the cache.
func (e *Engine) expand(ctx context.Context, p, q int64) (domain.ContinuedFraction, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContinuedFraction{}, false, err
	}
	if err := domain.CheckRational(p, q); err != nil {
		return domain.ContinuedFraction{}, false, err
	}

	key := domain.Reduce(p, q)
	if e.cache != nil {
		coefficients, err := e.cache.Get(ctx, key)
		if err == nil {
			return domain.FromCoefficients(coefficients), true, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			e.logger.Warn("Expansion cache read failed", "rational", key.String(), "error", err)
		}
	}

	cf, err := domain.FromRational(key.Num, key.Den)
	if err != nil {
		return domain.ContinuedFraction{}, false, err
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, key, cf.Coefficients()); err != nil {
			e.logger.Warn("Expansion cache write failed", "rational", key.String(), "error", err)
		}
	}
	return cf, false, nil
}

func (e *Engine) emit(ctx context.Context, event *domain.OperationEvent, start time.Time) {
	event.Timestamp = start
	event.Duration = time.Since(start)

	if event.Err != nil {
		e.logger.Debug("Operation failed", "operation", event.Operation, "input", event.Input, "error", event.Err)
	} else {
		e.logger.Debug("Operation completed",
			"operation", event.Operation,
			"input", event.Input,
			"terms", event.Terms,
			"cache_hit", event.CacheHit,
		)
	}

	if e.hooks.OnOperation != nil {
		e.hooks.OnOperation(ctx, event)
	}
}
