// Package cache keeps recently computed results keyed by a birth data
// fingerprint.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Default cache configuration constants.
const (
	defaultMaxSize = 10_000
	defaultTTL     = time.Hour
)

// Cache stores values by key. Implementations must be safe for concurrent use.
type Cache[V any] interface {
	// Get returns the stored value and whether it was present and fresh.
	Get(ctx context.Context, key string) (V, bool)
	// Set stores v and reports whether it was kept. A full cache skips stores.
	Set(ctx context.Context, key string, v V) bool
	// Len returns the number of stored entries, including expired ones not yet swept.
	Len() int
}

// InMemory implements Cache on top of go-cache with a size bound.
type InMemory[V any] struct {
	items   *gocache.Cache
	maxSize int
	ttl     time.Duration
}

// NewInMemory creates a bounded TTL cache.
func NewInMemory[V any](opts ...Option) *InMemory[V] {
	cfg := settings{maxSize: defaultMaxSize, ttl: defaultTTL}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &InMemory[V]{
		items:   gocache.New(cfg.ttl, cleanupInterval(cfg.ttl)),
		maxSize: cfg.maxSize,
		ttl:     cfg.ttl,
	}
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	return 2 * ttl
}

// Get returns the cached value for key.
func (c *InMemory[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	raw, ok := c.items.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores v under key. When the cache is full, expired entries are swept
// first and the store is skipped if that frees nothing.
func (c *InMemory[V]) Set(_ context.Context, key string, v V) bool {
	if _, exists := c.items.Get(key); !exists && c.items.ItemCount() >= c.maxSize {
		c.items.DeleteExpired()
		if c.items.ItemCount() >= c.maxSize {
			return false
		}
	}
	c.items.Set(key, v, gocache.DefaultExpiration)
	return true
}

// Len returns the number of stored entries.
func (c *InMemory[V]) Len() int { return c.items.ItemCount() }

// Flush drops every entry.
func (c *InMemory[V]) Flush() { c.items.Flush() }
