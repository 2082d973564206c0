// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	import "github.com/abdosaeedelhassan/email-templates/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("mailer"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("mailer"))
//
//	log.Info("template resolved",
//		logger.Component("emailtemplate"),
//		logger.TemplateKey("user-welcome"),
//		logger.Locale("en_GB"),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog drops,
// so they can be passed unconditionally:
//
//	log.Error("cache write failed", logger.Error(err), logger.CacheKey(key))
//
// Packages that accept an optional logger fall back to Nop, which discards
// every record.
package logger
