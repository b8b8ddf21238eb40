// Package log provides the structured logging interface used by fruitlogit.
//
// The Logger interface mirrors log/slog's key-value style so that estimators
// can log without depending on a concrete backend. The default backend is
// zerolog (see ZerologLogger); tests use TestLogger to capture JSON lines.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "LogisticRegression",
//	    log.EstimatorIDKey, id,
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 3000,
//	    log.FeaturesKey, 3,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. Error treats a leading error value
// as the error being reported and records its stack trace when available.
type Logger interface {
	// Debug logs detailed diagnostics, such as per-epoch training state.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs a recoverable but suspicious condition.
	Warn(msg string, fields ...any)

	// Error logs a failure. If the first field is an error it is reported
	// under the "error" key:
	//
	//	logger.Error("Training failed", err, log.OperationKey, log.OperationFit)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted. Use it to
	// skip expensive field construction.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
