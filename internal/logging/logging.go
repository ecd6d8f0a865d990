// Package logging builds the zap logger shared by the ironlung binaries.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file written under the logs directory.
const FileName = "ironlung.log"

// Options configures New.
type Options struct {
	// Dir receives ironlung.log. Empty disables file output.
	Dir string
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// Debug mirrors logs to stderr with a console encoder.
	Debug bool
}

// New builds a production JSON logger writing to Dir/ironlung.log. With
// neither Dir nor Debug set it returns a no-op logger.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Dir == "" && !opts.Debug {
		return zap.NewNop(), nil
	}

	atom := zap.NewAtomicLevelAt(level)
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		atom,
	)
	if opts.Dir == "" {
		return zap.New(console), nil
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = atom
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{filepath.Join(opts.Dir, FileName)}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if opts.Debug {
		logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, console)
		}))
	}
	return logger, nil
}

// ParseLevel converts a config level name to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
