// Package redis connects to Redis with go-redis.
//
// Connect parses a redis:// or rediss:// URL, then pings until the server
// answers, retrying with exponential backoff within REDIS_CONNECT_TIMEOUT.
// Healthcheck wraps a ping for readiness checks.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	templates := emailtemplate.NewCachedRepository(
//		pgstore.New(pool),
//		rediscache.New(client, rediscache.WithScanBatchSize(cfg.ScanBatchSize)),
//	)
//
// Errors are sentinel values checked with errors.Is: ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString, ErrRedisNotReady and ErrHealthcheckFailed.
package redis
