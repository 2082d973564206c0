// Package emailtemplates is the root of a library for database-backed email
// templates.
//
// Templates are stored per key and locale, looked up with a fallback to the
// default locale, and rendered by substituting ##token## placeholders with
// values from a data context. The packages are:
//
//   - core/emailtemplate: template model, token resolver, attribute path
//     accessor, button macro, cached repository and the Service facade
//   - core/email: sender contract, Mailer composition and the disk DevSender
//   - core/email/templates: templ components for the HTML layout and buttons
//   - core/cache, core/config, core/logger: LRU cache, env configuration and
//     slog helpers
//   - integration/database/{pg,redis,mongo}: connection helpers
//   - integration/store/{pgstore,mongostore}: template repositories
//   - integration/cache/rediscache: shared template cache
//   - integration/email/{smtp,postmark}: email transports
//   - integration/storage/s3: logo asset URLs and uploads
//
// A typical wiring:
//
//	pool, err := pg.Connect(ctx, pgCfg)
//	if err != nil {
//		return err
//	}
//	if err := pgstore.Migrate(ctx, pool, pgCfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	repo := emailtemplate.NewCachedRepository(pgstore.New(pool), rediscache.New(rdb))
//	svc := emailtemplate.NewService(tplCfg, repo, pgstore.NewThemes(pool))
//
//	mailer := email.NewMailer(svc, smtp.MustNewClient(smtpCfg))
//	err = mailer.Send(ctx, "fr", welcome)
package emailtemplates
