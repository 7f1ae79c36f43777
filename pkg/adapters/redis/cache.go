package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/cfrac/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "cfrac:expansion:"

// Cache implements ports.ExpansionCache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached expansions.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: defaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(r domain.Rational) string {
	return c.prefix + r.String()
}

func (c *Cache) indexKey() string {
	return c.prefix + "index"
}

// Ping checks connectivity with the server.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Get retrieves the coefficients for r.
func (c *Cache) Get(ctx context.Context, r domain.Rational) ([]int64, error) {
	val, err := c.client.Get(ctx, c.key(r)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var coefficients []int64
	if err := json.Unmarshal([]byte(val), &coefficients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal coefficients: %w", err)
	}
	if coefficients == nil {
		coefficients = []int64{}
	}
	return coefficients, nil
}

// Put stores the coefficients for r and records it in the index.
func (c *Cache) Put(ctx context.Context, r domain.Rational, coefficients []int64) error {
	if coefficients == nil {
		coefficients = []int64{}
	}
	data, err := json.Marshal(coefficients)
	if err != nil {
		return fmt.Errorf("failed to marshal coefficients: %w", err)
	}

	pipe := c.client.Pipeline()

	// Use 0 for no expiration if ttl is not set.
	pipe.Set(ctx, c.key(r), data, c.ttl)

	// Score = Now + TTL, or far future when entries never expire.
	score := float64(time.Now().Add(c.ttl).Unix())
	if c.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe.ZAdd(ctx, c.indexKey(), backend.Z{
		Score:  score,
		Member: r.String(),
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes the entry for r.
func (c *Cache) Delete(ctx context.Context, r domain.Rational) error {
	pipe := c.client.Pipeline()

	pipe.Del(ctx, c.key(r))
	pipe.ZRem(ctx, c.indexKey(), r.String())

	_, err := pipe.Exec(ctx)
	return err
}

// List returns cached rationals, pruning expired index entries first.
func (c *Cache) List(ctx context.Context) ([]domain.Rational, error) {
	now := float64(time.Now().Unix())

	err := c.client.ZRemRangeByScore(ctx, c.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired expansions: %w", err)
	}

	members, err := c.client.ZRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list expansions: %w", err)
	}

	result := make([]domain.Rational, 0, len(members))
	for _, m := range members {
		r, err := domain.ParseRational(m)
		if err != nil {
			return nil, fmt.Errorf("corrupt index member %q: %w", m, err)
		}
		result = append(result, r)
	}
	return result, nil
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
