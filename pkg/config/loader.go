package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into the provided configuration struct
// based on `env` field tags. On first use it attempts to load a .env file
// from the working directory; a missing file is not an error.
//
// Example:
//
//	type StoreConfig struct {
//		ConnectionString string `env:"AUTHZ_PG_CONN_URL,required"`
//		RetryAttempts    int    `env:"AUTHZ_PG_RETRY_ATTEMPTS" envDefault:"3"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is a development convenience; ignore its absence.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is Load for process bootstrap paths where a broken configuration
// should prevent startup.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
