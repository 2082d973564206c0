package emailtemplate

import (
	"strings"
	"time"
)

// Config holds the settings the template engine reads. Load it with
// core/config or build it directly; nothing is read from globals.
type Config struct {
	// DefaultLocale is the fallback language for lookups.
	DefaultLocale string `env:"EMAIL_TEMPLATES_DEFAULT_LOCALE" envDefault:"en_GB"`
	// KnownTokens are flat context members replaced before path tokens.
	KnownTokens []string `env:"EMAIL_TEMPLATES_KNOWN_TOKENS" envSeparator:"," envDefault:"tokenUrl,verificationUrl,expiresAt,plainText"`
	// ConfigKeys whitelists the keys usable in ##config.<key>## tokens.
	ConfigKeys []string `env:"EMAIL_TEMPLATES_CONFIG_KEYS" envSeparator:"," envDefault:"app.name,app.url,email-templates.customer-services.email"`
	// DefaultLogo is used when a template has no logo of its own.
	DefaultLogo string `env:"EMAIL_TEMPLATES_LOGO" envDefault:"media/email-templates/logo.png"`
	AppName     string `env:"APP_NAME" envDefault:"Email Templates"`
	AppURL      string `env:"APP_URL" envDefault:"http://localhost"`
	// Footer is printed at the bottom of the rendered layout.
	Footer    string        `env:"EMAIL_TEMPLATES_FOOTER"`
	CacheTTL  time.Duration `env:"EMAIL_TEMPLATES_CACHE_TTL" envDefault:"60m"`
	CacheSize int           `env:"EMAIL_TEMPLATES_CACHE_SIZE" envDefault:"500"`
}

// DefaultConfig returns the same values the env defaults produce.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en_GB",
		KnownTokens:   []string{"tokenUrl", "verificationUrl", "expiresAt", "plainText"},
		ConfigKeys:    []string{"app.name", "app.url", "email-templates.customer-services.email"},
		DefaultLogo:   "media/email-templates/logo.png",
		AppName:       "Email Templates",
		AppURL:        "http://localhost",
		CacheTTL:      time.Hour,
		CacheSize:     500,
	}
}

// ConfigSource answers ##config.<key>## lookups. Returning (nil, true) is
// treated the same as a missing key.
type ConfigSource interface {
	Get(key string) (any, bool)
}

// ConfigFunc adapts a function to ConfigSource.
type ConfigFunc func(key string) (any, bool)

// Get implements ConfigSource.
func (f ConfigFunc) Get(key string) (any, bool) {
	return f(key)
}

// Values is a ConfigSource backed by a map. Keys are looked up verbatim
// first, then as dotted paths into nested maps and structs:
//
//	Values{"app": map[string]any{"name": "Acme"}}.Get("app.name") // "Acme", true
type Values map[string]any

// Get implements ConfigSource.
func (v Values) Get(key string) (any, bool) {
	if val, ok := v[key]; ok {
		return val, val != nil
	}
	return Lookup(map[string]any(v), strings.Split(key, "."))
}
