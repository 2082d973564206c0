// Package mongo connects to MongoDB with the official v2 driver.
//
// New applies the MONGODB_* settings, then pings the primary with
// exponential backoff between attempts so a cluster that is still waking up
// does not fail application startup. NewWithDatabase returns a database
// handle directly. Healthcheck wraps the ping for readiness checks.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	templates := mongostore.New(db)
//	if err := templates.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// Configuration:
//
//	MONGODB_URL                 (required)
//	MONGODB_DATABASE            (default: app)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
package mongo
