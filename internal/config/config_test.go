package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "")
		t.Setenv("SERVER_PORT", "")
		t.Setenv("DIVIDEND_SCHEDULE_ENABLED", "")
		t.Setenv("CORS_ALLOWED_ORIGINS", "")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "localhost:5001", cfg.Server.Addr)
		assert.False(t, cfg.Scheduler.Enabled)
		assert.Equal(t, "0 0 1 * *", cfg.Scheduler.Spec)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost"}, cfg.CORS.AllowedOrigins)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("DIVIDEND_SCHEDULE_ENABLED", "true")
		t.Setenv("DIVIDEND_SCHEDULE", "@daily")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr)
		assert.True(t, cfg.Scheduler.Enabled)
		assert.Equal(t, "@daily", cfg.Scheduler.Spec)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("rejects malformed boolean", func(t *testing.T) {
		t.Setenv("DIVIDEND_SCHEDULE_ENABLED", "sometimes")

		_, err := Load()
		assert.Error(t, err)
	})
}
