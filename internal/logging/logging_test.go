package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/njchilds90/gopoly/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("json at warn", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "warn", Format: "json"})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("text at debug", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "debug", Format: "text"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "loud", Format: "json"})
		assert.Error(t, err)
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "info", Format: "xml"})
		assert.Error(t, err)
	})
}
