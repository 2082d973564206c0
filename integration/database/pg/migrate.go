package pg

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/abdosaeedelhassan/email-templates/core/logger"
)

// Migrate applies pending goose migrations from cfg.MigrationsPath on disk.
func Migrate(ctx context.Context, pool *pgxpool.Pool, cfg Config, log *slog.Logger) error {
	if cfg.MigrationsPath == "" {
		return ErrMigrationPathNotProvided
	}
	info, err := os.Stat(cfg.MigrationsPath)
	if err != nil || !info.IsDir() {
		return ErrMigrationsDirNotFound
	}
	return MigrateFS(ctx, pool, os.DirFS(cfg.MigrationsPath), cfg.MigrationsTable, log)
}

// MigrateFS applies pending goose migrations found at the root of fsys,
// recording versions in table. Packages that ship their schema embed it and
// call MigrateFS directly.
func MigrateFS(ctx context.Context, pool *pgxpool.Pool, fsys fs.FS, table string, log *slog.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	if table == "" {
		table = "schema_migrations"
	}

	// goose works on database/sql; this shares the pgx pool.
	db := stdlib.OpenDBFromPool(pool)
	defer func() { _ = db.Close() }()

	store, err := database.NewStore(database.DialectPostgres, table)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(store))
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			logger.Component("pg"),
			slog.Int64("version", r.Source.Version),
			logger.Duration(r.Duration))
	}
	return nil
}
