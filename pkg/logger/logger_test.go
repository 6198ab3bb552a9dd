package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitOnce(t *testing.T) {
	require.NoError(t, Init(zapcore.WarnLevel, zap.String("service", "test")))
	first := Log
	require.NotNil(t, first)

	require.NoError(t, Init(zapcore.DebugLevel))
	assert.Same(t, first, Log, "second Init keeps the first logger")
	assert.False(t, Log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Log.Core().Enabled(zapcore.ErrorLevel))
	Sync()
}

func TestConfigure(t *testing.T) {
	cfg := configure(zapcore.InfoLevel, false)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}
