package memory

import (
	"context"
	"sync"

	"github.com/aretw0/cfrac/pkg/domain"
)

// Cache implements ports.ExpansionCache in memory.
// Safe for concurrent use.
type Cache struct {
	data     map[domain.Rational][]int64
	order    []domain.Rational // insertion order, oldest first
	capacity int
	mu       sync.RWMutex
}

// Option configures the Cache.
type Option func(*Cache)

// WithCapacity bounds the number of entries. When full, the oldest entry is evicted.
// A capacity of zero or less means unbounded.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		c.capacity = n
	}
}

// NewCache creates a new in-memory expansion cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data: make(map[domain.Rational][]int64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached coefficients.
func (c *Cache) Get(ctx context.Context, r domain.Rational) ([]int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	coefficients, ok := c.data[r]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return append([]int64{}, coefficients...), nil
}

// Put stores a copy of the coefficients.
func (c *Cache) Put(ctx context.Context, r domain.Rational, coefficients []int64) error {
	copied := append([]int64{}, coefficients...)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[r]; !exists {
		if c.capacity > 0 && len(c.data) >= c.capacity {
			c.evictOldest()
		}
		c.order = append(c.order, r)
	}
	c.data[r] = copied
	return nil
}

// evictOldest drops the oldest entry. Callers must hold the write lock.
func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.data, oldest)
}

// Delete removes the entry for r.
func (c *Cache) Delete(ctx context.Context, r domain.Rational) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[r]; !ok {
		return nil
	}
	delete(c.data, r)
	for i, k := range c.order {
		if k == r {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the cached rationals, oldest first.
func (c *Cache) List(ctx context.Context) ([]domain.Rational, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]domain.Rational{}, c.order...), nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
