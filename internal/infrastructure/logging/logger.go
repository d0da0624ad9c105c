package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/colonycore-go/internal/application/common"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/config"
)

// ZapLogger adapts a zap.Logger to the application layer's Logger port.
type ZapLogger struct {
	inner *zap.Logger
}

// NewLogger builds a zap-backed logger from configuration.
func NewLogger(cfg *config.LoggingConfig) (*ZapLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	if cfg.Format == "text" {
		zc.Encoding = "console"
	}
	switch cfg.Output {
	case "stdout":
		zc.OutputPaths = []string{"stdout"}
	case "stderr":
		zc.OutputPaths = []string{"stderr"}
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file output requires a file path")
		}
		zc.OutputPaths = []string{cfg.FilePath}
	}
	zc.DisableCaller = !cfg.IncludeCaller
	zc.DisableStacktrace = !cfg.IncludeStacktrace

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &ZapLogger{inner: logger}, nil
}

// NewNopLogger returns a logger that discards everything, for tests.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{inner: zap.NewNop()}
}

// Log writes one structured entry at the given level.
func (l *ZapLogger) Log(level, message string, metadata map[string]interface{}) {
	fields := make([]zap.Field, 0, len(metadata))
	for k, v := range metadata {
		fields = append(fields, zap.Any(k, v))
	}

	switch strings.ToUpper(level) {
	case "DEBUG":
		l.inner.Debug(message, fields...)
	case "WARN":
		l.inner.Warn(message, fields...)
	case "ERROR":
		l.inner.Error(message, fields...)
	default:
		l.inner.Info(message, fields...)
	}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.inner.Sync()
}

var _ common.Logger = (*ZapLogger)(nil)
