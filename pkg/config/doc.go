// Package config loads typed configuration structs from environment
// variables using `env` struct tags, with optional .env file support for
// local development.
//
// Configuration is declared as plain structs:
//
//	type CacheConfig struct {
//		RedisURL string        `env:"AUTHZ_REDIS_URL,required"`
//		TTL      time.Duration `env:"AUTHZ_CACHE_TTL" envDefault:"5m"`
//	}
//
// Load fills the struct from the process environment and reports a joined
// error on failure; MustLoad panics instead and suits main() bootstrap code.
package config
