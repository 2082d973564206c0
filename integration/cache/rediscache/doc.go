// Package rediscache is an emailtemplate.Cache backed by Redis.
//
// Templates are stored as JSON under their cache key, optionally behind a
// namespace. DeletePrefix walks the keyspace with SCAN so eviction of a
// template key removes the entries cached for every locale list. With a
// *redis.ClusterClient the scan runs on every master.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	repo := emailtemplate.NewCachedRepository(
//		pgstore.New(pool),
//		rediscache.New(client, rediscache.WithNamespace("app:")),
//		emailtemplate.WithCacheTTL(30*time.Minute),
//	)
package rediscache
