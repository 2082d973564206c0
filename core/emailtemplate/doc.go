// Package emailtemplate stores email templates per key and language and
// renders them against arbitrary data.
//
// Template text uses ##token## placeholders:
//
//	##tokenUrl##                         known flat token
//	##user.first_name##                  attribute path into the data context
//	##config.app.name##                  whitelisted configuration value
//	##button url='U' title='T'####       themed call-to-action button
//
// The Resolver replaces them in four ordered passes. Path tokens that cannot
// be resolved become empty, config tokens that are not whitelisted stay as
// written, and a malformed button disappears. Resolve never fails.
//
// Data contexts may be maps, structs, pointers to either, or any value that
// implements Indexable. Struct members match json tags, field names (ignoring
// case and underscores) and zero-argument methods.
//
// Basic usage:
//
//	repo := emailtemplate.NewCachedRepository(
//		pgstore.New(pool),
//		emailtemplate.NewMemoryCache(cfg.CacheSize),
//		emailtemplate.WithCacheTTL(cfg.CacheTTL),
//	)
//	svc := emailtemplate.NewService(cfg, repo, pgstore.NewThemes(pool),
//		emailtemplate.WithResolverOptions(
//			emailtemplate.WithConfigSource(emailtemplate.Values{"app.name": "Acme"}),
//		),
//	)
//
//	tpl, err := svc.FindByKey(ctx, "welcome", "en-gb")
//	if errors.Is(err, emailtemplate.ErrNotFound) {
//		// neither en_GB nor the default locale exists
//	}
//	rd, err := svc.RenderData(ctx, tpl, emailtemplate.Data{"user": user})
//	html, err := svc.RenderHTML(ctx, rd)
//
// # Caching
//
// CachedRepository caches FindByKey per key and locale list. Create, Update
// and Delete evict every cached locale of the affected key before and after
// writing. Themes are resolved on every lookup and are not cached.
package emailtemplate
