// Package pg connects to PostgreSQL with pgx and applies goose migrations.
//
//   - Connect opens a pgxpool.Pool, retrying with exponential backoff
//   - Migrate and MigrateFS apply goose migrations through the pgx pool
//   - Healthcheck returns a ping check for readiness endpoints
//   - IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
//     IsTxClosedError classify driver errors
//   - WithTx and TxFromContext carry a transaction through repositories
//
// Configuration is read from PG_* variables:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pgstore.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
package pg
