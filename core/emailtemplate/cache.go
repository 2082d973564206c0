package emailtemplate

import (
	"context"
	"strings"
	"time"

	"github.com/abdosaeedelhassan/email-templates/core/cache"
)

// Cache stores resolved templates. Get, Set and DeletePrefix must each be
// atomic and safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*Template, bool, error)
	Set(ctx context.Context, key string, t *Template, ttl time.Duration) error
	// DeletePrefix removes every entry whose key starts with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
}

// Compile-time check.
var _ Cache = (*MemoryCache)(nil)

// MemoryCache is an in-process Cache backed by an LRU with expiration.
type MemoryCache struct {
	lru *cache.LRUCache[string, *Template]
}

// NewMemoryCache creates a cache holding at most size templates.
func NewMemoryCache(size int, opts ...cache.Option) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRUCache[string, *Template](size, opts...)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (*Template, bool, error) {
	t, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return t.Clone(), true, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key string, t *Template, ttl time.Duration) error {
	c.lru.PutWithTTL(key, t.Clone(), ttl)
	return nil
}

// DeletePrefix implements Cache.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.lru.RemoveFunc(func(k string) bool {
		return strings.HasPrefix(k, prefix)
	})
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
