// Package logging wraps logrus with the leveled, fielded logger the rest of
// the CLI uses to report progress.
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Config controls how the global logger is initialized.
type Config struct {
	Debug      bool // debug level instead of info level
	JSONFormat bool // JSON formatter instead of the default text formatter
}

var (
	globalLogger *logrus.Logger
	once         sync.Once
)

// Init creates and installs the global logger. Safe to call multiple
// times; only the first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		globalLogger = New(cfg)
	})
}

// New builds a standalone logger instance (used by tests that don't want
// the shared global).
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	if cfg.JSONFormat {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}

// Global returns the process-wide logger, lazily initializing it with
// defaults if Init was never called (e.g. from a test).
func Global() *logrus.Logger {
	if globalLogger == nil {
		Init(Config{})
	}
	return globalLogger
}

// WithFields is a convenience wrapper around Global().WithFields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Global().WithFields(fields)
}
