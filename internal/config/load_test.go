package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults plus a database URL make a valid config", func(t *testing.T) {
		t.Setenv("REPORTGEN_DATABASE_URL", "postgres://localhost:5432/reportgen")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, "http://html-to-pdf/generate", cfg.Renderer.URL)
		assert.Equal(t, 2*time.Minute, cfg.Renderer.Timeout)
		assert.Equal(t, "/share", cfg.Storage.Path)
		assert.Equal(t, "share://", cfg.Storage.URIScheme)
		assert.Equal(t, time.Minute, cfg.Scheduler.PollInterval)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("REPORTGEN_DATABASE_URL", "postgres://localhost:5432/reportgen")
		t.Setenv("REPORTGEN_SERVER_PORT", "9090")
		t.Setenv("REPORTGEN_SERVER_LOG_LEVEL", "debug")
		t.Setenv("REPORTGEN_SCHEDULER_POLL_INTERVAL", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, 30*time.Second, cfg.Scheduler.PollInterval)
	})

	t.Run("a missing database URL fails validation", func(t *testing.T) {
		t.Setenv("REPORTGEN_DATABASE_URL", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("an invalid log level fails validation", func(t *testing.T) {
		t.Setenv("REPORTGEN_DATABASE_URL", "postgres://localhost:5432/reportgen")
		t.Setenv("REPORTGEN_SERVER_LOG_LEVEL", "luid")

		_, err := Load()
		assert.Error(t, err)
	})
}
