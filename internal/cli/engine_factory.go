package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/cfrac"
	"github.com/aretw0/cfrac/internal/config"
	"github.com/aretw0/cfrac/pkg/adapters/memory"
	"github.com/aretw0/cfrac/pkg/adapters/redis"
	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/aretw0/cfrac/pkg/observability"
	"github.com/aretw0/cfrac/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime bundles the engine with the infrastructure built for it.
type Runtime struct {
	Engine   *cfrac.Engine
	Cache    ports.ExpansionCache // nil when caching is disabled
	Registry *prometheus.Registry
	Logger   *slog.Logger

	closers []func() error
}

// NewRuntime initializes an engine with standard CLI conventions from cfg.
func NewRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger, debug bool) (*Runtime, error) {
	rt := &Runtime{
		Registry: prometheus.NewRegistry(),
		Logger:   logger,
	}

	// 1. Cache
	cache, err := rt.createCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	rt.Cache = cache

	// 2. Hooks
	metrics := observability.NewMetrics(rt.Registry)
	hooks := metrics.Hooks()
	if debug {
		hooks = observability.Chain(hooks, createDebugHooks(logger))
	}

	// 3. Initialize
	engineOpts := []cfrac.Option{
		cfrac.WithLogger(logger),
		cfrac.WithHooks(hooks),
	}
	if cache != nil {
		engineOpts = append(engineOpts, cfrac.WithCache(cache))
	}
	rt.Engine = cfrac.New(engineOpts...)

	return rt, nil
}

func (rt *Runtime) createCache(ctx context.Context, cfg config.CacheConfig) (ports.ExpansionCache, error) {
	switch cfg.Backend {
	case config.BackendNone, "":
		return nil, nil
	case config.BackendMemory:
		return memory.NewCache(memory.WithCapacity(cfg.Capacity)), nil
	case config.BackendRedis:
		c := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := c.Ping(pingCtx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}

		rt.closers = append(rt.closers, c.Close)
		rt.Logger.Debug("Redis cache connected", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		return c, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// Close releases the cache connections.
func (rt *Runtime) Close() error {
	var first error
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil && first == nil {
			first = err
		}
	}
	rt.closers = nil
	return first
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnOperation: func(ctx context.Context, e *domain.OperationEvent) {
			if e.Err != nil {
				logger.Debug("Operation (Error)", "operation", e.Operation, "input", e.Input, "err", e.Err)
				return
			}
			logger.Debug("Operation (Success)",
				"operation", e.Operation,
				"input", e.Input,
				"terms", e.Terms,
				"cache_hit", e.CacheHit,
				"duration", e.Duration,
			)
		},
	}
}
