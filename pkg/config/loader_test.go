package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/httpkit/jsonx/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env into struct", func(t *testing.T) {
		type serverConfig struct {
			Addr  string `env:"TEST_CFG_ADDR" envDefault:":8080"`
			Debug bool   `env:"TEST_CFG_DEBUG" envDefault:"false"`
		}

		t.Setenv("TEST_CFG_ADDR", ":9090")
		t.Setenv("TEST_CFG_DEBUG", "true")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
		assert.True(t, cfg.Debug)
	})

	t.Run("defaults used when env absent", func(t *testing.T) {
		type defaultsConfig struct {
			Limit int64 `env:"TEST_CFG_LIMIT" envDefault:"2048"`
		}

		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, int64(2048), cfg.Limit)
	})

	t.Run("cached per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CFG_CACHED" envDefault:"first"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "first", first.Value)

		// Later env changes do not disturb the already-loaded value.
		t.Setenv("TEST_CFG_CACHED", "second")
		var again cachedConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Value)
	})

	t.Run("nil pointer rejected", func(t *testing.T) {
		err := config.Load[struct{}](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("malformed env value", func(t *testing.T) {
		type brokenConfig struct {
			Count int `env:"TEST_CFG_BROKEN"`
		}

		t.Setenv("TEST_CFG_BROKEN", "not-a-number")

		var cfg brokenConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		type badConfig struct {
			Port int `env:"TEST_CFG_MUST_PORT"`
		}

		t.Setenv("TEST_CFG_MUST_PORT", "oops")

		assert.Panics(t, func() {
			var cfg badConfig
			config.MustLoad(&cfg)
		})
	})
}
