// Package logger provides the process-wide logger used by the idanalyzer
// library and CLI.
//
// The package exposes a small printf-style API (Debug, Info, Warn, Error) on
// top of a zap core. Debug and info entries go to stdout, warnings and errors
// go to stderr. Debug entries are dropped unless SetDebug(true) was called.
//
// Example:
//
//	logger.SetDebug(true)
//	logger.Debug("posting to %s", endpoint)
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base  *zap.Logger
)

func init() {
	base = newLogger(os.Stdout, os.Stderr)
}

// newLogger builds a zap logger that tees low-severity entries to out and
// warn/error entries to errOut. The shared atomic level gates both cores.
func newLogger(out, errOut zapcore.WriteSyncer) *zap.Logger {
	lowLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l < zapcore.WarnLevel
	})
	highLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l >= zapcore.WarnLevel
	})

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(out), lowLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(errOut), highLevel),
	)

	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

// SetDebug enables or disables debug level output.
func SetDebug(enabled bool) {
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// SetOutput redirects all log output to w. Used by tests and by the CLI
// when it needs to keep stdout clean for JSON results.
func SetOutput(w zapcore.WriteSyncer) {
	mu.Lock()
	defer mu.Unlock()
	base = newLogger(w, w)
}

// L returns the underlying zap logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sugar returns a sugared logger without the facade's caller skip, suitable
// for handing to third-party libraries that expect Debugf/Warnf/Errorf.
func Sugar() *zap.SugaredLogger {
	return L().WithOptions(zap.AddCallerSkip(-1)).Sugar()
}

func sugar() *zap.SugaredLogger {
	return L().Sugar()
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...interface{}) {
	sugar().Debugf(format, args...)
}

// Info logs a formatted message at info level.
func Info(format string, args ...interface{}) {
	sugar().Infof(format, args...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...interface{}) {
	sugar().Warnf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...interface{}) {
	sugar().Errorf(format, args...)
}

// Sync flushes buffered entries. Errors from syncing terminals are ignored.
func Sync() {
	_ = L().Sync()
}
