package emailtemplate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abdosaeedelhassan/email-templates/core/logger"
)

// Compile-time check.
var _ Repository = (*CachedRepository)(nil)

// CachedRepository decorates a Repository with a read-through cache for
// FindByKey. Writes evict every cached locale of the affected keys before
// and after the underlying write, so a mutation never returns while a stale
// entry is still cached. Cache failures are logged and bypassed.
type CachedRepository struct {
	repo   Repository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

// CachedRepositoryOption configures a CachedRepository.
type CachedRepositoryOption func(*CachedRepository)

// WithCacheTTL sets the lifetime of cached lookups.
func WithCacheTTL(ttl time.Duration) CachedRepositoryOption {
	return func(c *CachedRepository) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger for cache failures and hit/miss traces.
func WithCacheLogger(l *slog.Logger) CachedRepositoryOption {
	return func(c *CachedRepository) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCachedRepository wraps repo with cache. The default TTL is one hour.
func NewCachedRepository(repo Repository, cache Cache, opts ...CachedRepositoryOption) *CachedRepository {
	c := &CachedRepository{
		repo:   repo,
		cache:  cache,
		ttl:    time.Hour,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindByKey implements Repository. Not-found results are not cached.
func (c *CachedRepository) FindByKey(ctx context.Context, key string, locales ...string) (*Template, error) {
	ck := CacheKey(key, locales...)

	t, ok, err := c.cache.Get(ctx, ck)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "template cache read failed",
			logger.Component("emailtemplate"), logger.CacheKey(ck), logger.Error(err))
	case ok:
		c.logger.DebugContext(ctx, "template cache hit",
			logger.Component("emailtemplate"), logger.CacheKey(ck), logger.Result("hit"))
		return t, nil
	}

	t, err = c.repo.FindByKey(ctx, key, locales...)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, ck, t, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "template cache write failed",
			logger.Component("emailtemplate"), logger.CacheKey(ck), logger.Error(err))
	}
	c.logger.DebugContext(ctx, "template cache miss",
		logger.Component("emailtemplate"), logger.CacheKey(ck), logger.Result("miss"))
	return t, nil
}

// FindByID implements Repository. ID lookups bypass the cache.
func (c *CachedRepository) FindByID(ctx context.Context, id uuid.UUID) (*Template, error) {
	return c.repo.FindByID(ctx, id)
}

// Create implements Repository. A new locale can change which row a cached
// fallback lookup should return, so the key is evicted as well.
func (c *CachedRepository) Create(ctx context.Context, t *Template) error {
	return c.evictAround(ctx, func() error { return c.repo.Create(ctx, t) }, t.Key)
}

// Update implements Repository. Both the stored key and the new key are
// evicted, covering key renames.
func (c *CachedRepository) Update(ctx context.Context, t *Template) error {
	keys := []string{t.Key}
	if prev, err := c.repo.FindByID(ctx, t.ID); err == nil && prev.Key != t.Key {
		keys = append(keys, prev.Key)
	}
	return c.evictAround(ctx, func() error { return c.repo.Update(ctx, t) }, keys...)
}

// Delete implements Repository.
func (c *CachedRepository) Delete(ctx context.Context, t *Template) error {
	keys := []string{t.Key}
	if prev, err := c.repo.FindByID(ctx, t.ID); err == nil && prev.Key != t.Key {
		keys = append(keys, prev.Key)
	}
	return c.evictAround(ctx, func() error { return c.repo.Delete(ctx, t) }, keys...)
}

// Evict removes every cached locale of key.
func (c *CachedRepository) Evict(ctx context.Context, key string) error {
	if err := c.cache.DeletePrefix(ctx, CacheKeyPrefix(key)); err != nil {
		return errors.Join(errors.New("failed to evict template cache"), err)
	}
	return nil
}

// evictAround evicts keys, runs write, then evicts again so that a reader
// racing the write cannot leave a stale entry behind. An eviction failure
// after a successful write is returned to the caller.
func (c *CachedRepository) evictAround(ctx context.Context, write func() error, keys ...string) error {
	for _, k := range keys {
		if err := c.Evict(ctx, k); err != nil {
			return err
		}
	}

	if err := write(); err != nil {
		return err
	}

	var errs []error
	for _, k := range keys {
		if err := c.Evict(ctx, k); err != nil {
			c.logger.ErrorContext(ctx, "template cache eviction failed after write",
				logger.Component("emailtemplate"), logger.TemplateKey(k), logger.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
