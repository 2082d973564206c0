package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Action creates an attribute for action names.
func Action(action string) slog.Attr {
	return slog.String("action", action)
}

// Result creates an attribute for operation results (hit/miss/success/failure).
func Result(result string) slog.Attr {
	return slog.String("result", result)
}

// Key creates a generic key-value attribute.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}

// ============================================================================
// Email templates
// ============================================================================

// TemplateKey creates an attribute for the logical template key.
func TemplateKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("template_key", key)
}

// Locale creates an attribute for a requested or resolved locale.
func Locale(locale string) slog.Attr {
	if locale == "" {
		return slog.Attr{}
	}
	return slog.String("locale", locale)
}

// CacheKey creates an attribute for a cache entry key.
func CacheKey(key string) slog.Attr {
	if key == "" {
		return slog.Attr{}
	}
	return slog.String("cache_key", key)
}

// Recipient creates an attribute for an email recipient address.
func Recipient(addr string) slog.Attr {
	if addr == "" {
		return slog.Attr{}
	}
	return slog.String("recipient", addr)
}
