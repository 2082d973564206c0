// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// A .env file in the working directory is loaded on first use (joho/godotenv)
// and struct fields are populated by caarlos0/env.
//
// Basic usage:
//
//	import (
//		"github.com/abdosaeedelhassan/email-templates/core/config"
//		"github.com/abdosaeedelhassan/email-templates/core/emailtemplate"
//		"github.com/abdosaeedelhassan/email-templates/integration/database/pg"
//	)
//
//	func main() {
//		var tplCfg emailtemplate.Config
//		config.MustLoad(&tplCfg)
//
//		var dbCfg pg.Config
//		if err := config.Load(&dbCfg); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime.
// Different types are cached independently. Reset clears the cache, which
// tests use after changing the environment.
package config
