package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/YuminosukeSato/fruitlogit/pkg/errors"
)

var (
	globalMu sync.RWMutex
	global   Logger = NewConsoleLogger(os.Stderr, LevelInfo)
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

// SetLogger replaces the process-wide logger.
func SetLogger(l Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	global = l
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetupLogger configures the process-wide logger. format is "console" or "json".
// Warnings raised through pkg/errors are routed to the new logger.
func SetupLogger(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var logger *ZerologLogger
	switch strings.ToLower(format) {
	case "", "console":
		logger = NewConsoleLogger(w, lvl)
	case "json":
		logger = NewZerologLogger(w, lvl)
	default:
		return errors.NewValidationError("log.format", "must be console or json", format)
	}

	SetLogger(logger)
	errors.SetZerologWarnFunc(func(warning error) {
		logger.Warn("warning", warning)
	})
	return nil
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log.level", "must be debug, info, warn or error", level)
	}
}
