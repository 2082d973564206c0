package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = make(map[reflect.Type]any)
)

// loadDotenv reads .env from the working directory once per process.
// A missing file is not an error.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load parses environment variables into cfg. The first successful load of a
// type is cached and copied into every later call with the same type.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil destination")
	}

	loadDotenv()

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", typ, err)
	}

	cache[typ] = parsed
	*cfg = parsed
	return nil
}

// MustLoad is like Load but panics on failure. Intended for startup code.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops every cached configuration. Tests use it to reload after
// changing the environment.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	clear(cache)
}
