// Package log provides the structured logging interface used across scorecast.
//
// The interface is slog-shaped (message plus key-value fields) and is backed by
// zerolog in production and by TestLogger in tests. Pipeline stages, the
// HTTP server and the CLI all log through it using the attribute keys defined
// in attributes.go.
//
// Example usage:
//
//	logger := log.GetLoggerWithName("pipeline").With(
//	    log.ModelNameKey, "LinearRegression",
//	)
//	logger.Info("Training started",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 80,
//	    log.FeaturesKey, 4,
//	)
package log

import (
	"context"
	"fmt"
	"strings"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs. An error value may appear in a key
// position (typically first); it is logged under "error" together with its
// stack trace when one is available.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	//
	// Example:
	//   logger.Info("Model saved",
	//       log.DurationMsKey, 12,
	//       "path", "models/model.joblib",
	//   )
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	//
	// Example:
	//   logger.Error("Training failed",
	//       err,
	//       log.OperationKey, log.OperationFit,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
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

// ParseLevel converts a case-insensitive level name ("debug", "info",
// "warn", "error") into a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %q", level)
	}
}

// ToLogLevel is like ParseLevel but panics on an unknown level name.
// It is intended for hard-coded level strings.
func ToLogLevel(level string) Level {
	l, err := ParseLevel(level)
	if err != nil {
		panic(err)
	}
	return l
}

// LoggerProvider defines an interface for creating and configuring loggers.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a specific name/component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for all loggers created by this provider.
	SetLevel(level Level)
}
