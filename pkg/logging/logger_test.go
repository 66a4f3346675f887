package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.log")

	logger, err := NewLogger(Config{Level: "debug", Format: "json", OutputPath: path})
	require.NoError(t, err)

	logger.Debug("decoded drawing", zap.String("drawing", "part.dxf"), zap.Int("entities", 7))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"drawing":"part.dxf"`)
	assert.Contains(t, string(data), `"entities":7`)
}

func TestNewLogger_UnknownLevelFallsBackToWarn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.log")

	logger, err := NewLogger(Config{Level: "chatty", OutputPath: path})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}

func TestNewLoggerOrNop(t *testing.T) {
	logger := NewLoggerOrNop(Config{Level: "info", OutputPath: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	require.NotNil(t, logger)
	logger.Info("ignored")
}
