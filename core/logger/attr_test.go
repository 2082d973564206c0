package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdosaeedelhassan/email-templates/core/logger"
)

func TestGroup(t *testing.T) {
	t.Parallel()
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestDuration(t *testing.T) {
	t.Parallel()
	d := 5 * time.Second
	attr := logger.Duration(d)
	require.Equal(t, "duration", attr.Key)
	assert.Equal(t, d, attr.Value.Duration())
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	start := time.Now().Add(-50 * time.Millisecond)
	attr := logger.Elapsed(start)
	require.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), 50*time.Millisecond)
}

func TestKey(t *testing.T) {
	t.Parallel()
	attr := logger.Key("custom", 42)
	require.Equal(t, "custom", attr.Key)
	assert.Equal(t, int64(42), attr.Value.Int64())

	empty := logger.Key("custom", nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestStringAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr slog.Attr
		key  string
		want string
	}{
		{"component", logger.Component("emailtemplate"), "component", "emailtemplate"},
		{"action", logger.Action("find_by_key"), "action", "find_by_key"},
		{"result", logger.Result("hit"), "result", "hit"},
		{"template key", logger.TemplateKey("user-welcome"), "template_key", "user-welcome"},
		{"locale", logger.Locale("en_GB"), "locale", "en_GB"},
		{"cache key", logger.CacheKey("emailtemplate:a:en"), "cache_key", "emailtemplate:a:en"},
		{"recipient", logger.Recipient("ann@example.com"), "recipient", "ann@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}
}

func TestEmptyDomainAttributes(t *testing.T) {
	t.Parallel()
	assert.True(t, logger.TemplateKey("").Equal(slog.Attr{}))
	assert.True(t, logger.Locale("").Equal(slog.Attr{}))
	assert.True(t, logger.CacheKey("").Equal(slog.Attr{}))
	assert.True(t, logger.Recipient("").Equal(slog.Attr{}))
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with attrs", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "mailer")),
		)
		log.Info("template resolved", logger.TemplateKey("welcome"))

		out := buf.String()
		assert.Contains(t, out, `"msg":"template resolved"`)
		assert.Contains(t, out, `"service":"mailer"`)
		assert.Contains(t, out, `"template_key":"welcome"`)
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("hidden")
		assert.Empty(t, buf.String())
	})

	t.Run("development enables debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithDevelopment("mailer"), logger.WithOutput(&buf))
		log.Debug("visible")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "service=mailer")
	})

	t.Run("nop discards", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger.Nop().Error("ignored")
		})
	})
}
