package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authzkit/authzkit/pkg/config"
)

type testConfig struct {
	ConnURL  string        `env:"TEST_AUTHZ_CONN_URL,required"`
	Retries  int           `env:"TEST_AUTHZ_RETRIES" envDefault:"3"`
	CacheTTL time.Duration `env:"TEST_AUTHZ_CACHE_TTL" envDefault:"5m"`
	Debug    bool          `env:"TEST_AUTHZ_DEBUG" envDefault:"false"`
}

func TestLoad(t *testing.T) {
	t.Run("loads values from environment", func(t *testing.T) {
		t.Setenv("TEST_AUTHZ_CONN_URL", "postgres://localhost:5432/authz")
		t.Setenv("TEST_AUTHZ_RETRIES", "7")
		t.Setenv("TEST_AUTHZ_DEBUG", "true")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, "postgres://localhost:5432/authz", cfg.ConnURL)
		assert.Equal(t, 7, cfg.Retries)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.True(t, cfg.Debug)
	})

	t.Run("applies defaults when variables unset", func(t *testing.T) {
		t.Setenv("TEST_AUTHZ_CONN_URL", "postgres://localhost:5432/authz")

		var cfg testConfig
		require.NoError(t, config.Load(&cfg))

		assert.Equal(t, 3, cfg.Retries)
		assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
		assert.False(t, cfg.Debug)
	})

	t.Run("fails when required variable missing", func(t *testing.T) {
		var cfg testConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("rejects nil pointer", func(t *testing.T) {
		err := config.Load[testConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("fails on malformed value", func(t *testing.T) {
		t.Setenv("TEST_AUTHZ_CONN_URL", "postgres://localhost:5432/authz")
		t.Setenv("TEST_AUTHZ_RETRIES", "not-a-number")

		var cfg testConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required variable", func(t *testing.T) {
		assert.Panics(t, func() {
			var cfg testConfig
			config.MustLoad(&cfg)
		})
	})

	t.Run("returns populated config", func(t *testing.T) {
		t.Setenv("TEST_AUTHZ_CONN_URL", "postgres://localhost:5432/authz")

		var cfg testConfig
		assert.NotPanics(t, func() {
			config.MustLoad(&cfg)
		})
		assert.Equal(t, "postgres://localhost:5432/authz", cfg.ConnURL)
	})
}
