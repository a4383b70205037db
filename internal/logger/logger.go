// Package logger provides verbose logging for the horizon CLI and servers.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the query pipeline.
// Errors are always printed.
package logger

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	level   = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	base    = build(os.Stderr)
	sugar   = base.Sugar()
)

func build(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.ErrorLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base = build(w)
	sugar = base.Sugar()
}

// L returns the structured logger for adapters that log with fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	current().Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	current().Debugf("=== %s ===", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	current().Infof(format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	current().Warnf(format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	current().Errorf(format, args...)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = current().Sync()
}
