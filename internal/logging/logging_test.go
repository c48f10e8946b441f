package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("falls back to info on unknown level", func(t *testing.T) {
		logger := New(Config{Level: "loud"})
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("honours debug level", func(t *testing.T) {
		logger := New(Config{Level: "debug", Encoding: "console"})
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("writes to file when configured", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		logger := New(Config{Level: "info", File: path})
		logger.Info("distribution finished")
		require.NoError(t, logger.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "distribution finished")
	})
}
