package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
)

// Compile-time check.
var _ emailtemplate.Cache = (*Cache)(nil)

// Cache stores templates in Redis as JSON strings.
type Cache struct {
	client    redis.UniversalClient
	namespace string
	batch     int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithNamespace prefixes every Redis key, so several applications can share
// one database.
func WithNamespace(ns string) Option {
	return func(c *Cache) {
		c.namespace = ns
	}
}

// WithScanBatchSize sets the COUNT hint used while scanning for prefix
// deletes.
func WithScanBatchSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.batch = int64(n)
		}
	}
}

// New creates a cache over client.
func New(client redis.UniversalClient, opts ...Option) *Cache {
	c := &Cache{client: client, batch: 1000}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get implements emailtemplate.Cache.
func (c *Cache) Get(ctx context.Context, key string) (*emailtemplate.Template, bool, error) {
	raw, err := c.client.Get(ctx, c.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}

	var t emailtemplate.Template
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, false, fmt.Errorf("decode cached template %q: %w", key, err)
	}
	return &t, true, nil
}

// Set implements emailtemplate.Cache. A non-positive ttl stores the entry
// without expiration.
func (c *Cache) Set(ctx context.Context, key string, t *emailtemplate.Template, ttl time.Duration) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode template %q: %w", key, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.namespace+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// DeletePrefix implements emailtemplate.Cache by scanning for matching keys
// and deleting them batch by batch. On a cluster client every master is
// scanned, since SCAN only walks the node that serves it.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	match := escapeGlob(c.namespace+prefix) + "*"

	if cluster, ok := c.client.(*redis.ClusterClient); ok {
		return cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return c.deleteMatching(ctx, node, match)
		})
	}
	return c.deleteMatching(ctx, c.client, match)
}

// deleteMatching unlinks keys one per command inside a pipeline, so keys
// from different cluster slots never share a command.
func (c *Cache) deleteMatching(ctx context.Context, node redis.Cmdable, match string) error {
	var cursor uint64
	for {
		keys, next, err := node.Scan(ctx, cursor, match, c.batch).Result()
		if err != nil {
			return fmt.Errorf("redis scan %q: %w", match, err)
		}
		if len(keys) > 0 {
			_, err := node.Pipelined(ctx, func(pipe redis.Pipeliner) error {
				for _, k := range keys {
					pipe.Unlink(ctx, k)
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("redis unlink %q: %w", match, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the characters SCAN MATCH treats as wildcards.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
