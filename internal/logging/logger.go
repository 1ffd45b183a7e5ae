// Package logging builds the structured logger shared across mcpi.
//
// Code logs through logr.Logger; zap is the backend. Verbosity 1 (debug)
// carries per-tick detail.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps debug|info|warn|error to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// New returns a logger at level and a flush func to call before exit.
// Development mode uses the console encoder; otherwise output is JSON. Logs
// go to outputs (zap sink URLs or paths), stderr when none are given.
func New(level string, development bool, outputs ...string) (logr.Logger, func(), error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}
	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return logr.Discard(), func() {}, fmt.Errorf("build logger: %w", err)
	}
	// Sync on stderr fails with EINVAL on some terminals; nothing to report.
	flush := func() { _ = zl.Sync() }
	return zapr.NewLogger(zl), flush, nil
}
