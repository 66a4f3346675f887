// Package logging builds the zap logger used for diagnostic output.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level      string `json:"level"`
	Format     string `json:"format"` // "json" or "console"
	OutputPath string `json:"output_path"`
}

// DefaultConfig retorna a configuração padrão: apenas avisos e erros, em stderr.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "console",
	}
}

// NewLogger creates a zap logger from the given configuration.
// An unknown level falls back to warn.
func NewLogger(cfg Config) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()

	level, err := zap.ParseAtomicLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	zapConfig.Level = level

	if cfg.Format == "json" {
		zapConfig.Encoding = "json"
	} else {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig.OutputPaths = []string{"stderr"}
	if cfg.OutputPath != "" {
		zapConfig.OutputPaths = []string{cfg.OutputPath}
	}
	zapConfig.Sampling = nil

	return zapConfig.Build()
}

// NewLoggerOrNop returns a logger for cfg, or a no-op logger if it cannot be built.
func NewLoggerOrNop(cfg Config) *zap.Logger {
	logger, err := NewLogger(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
