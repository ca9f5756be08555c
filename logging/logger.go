package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level is a thin enum for user friendly level configuration decoupled from slog.
type Level int

const (
	// LevelDebug is the debug logging level.
	LevelDebug Level = iota
	// LevelInfo is the informational logging level.
	LevelInfo
	// LevelWarn is the warning logging level.
	LevelWarn
	// LevelError is the error logging level.
	LevelError
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

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger defines the minimal structured logging interface used throughout
// the client. Arguments follow slog conventions (alternating key/value pairs).
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from an existing *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NewSlogLogger builds a Logger writing to stdout at the given level.
// Format is "json" or "text" (defaults to json).
func NewSlogLogger(level Level, format string) Logger {
	return NewSlogLoggerTo(os.Stdout, level, format)
}

// NewSlogLoggerTo builds a Logger writing to w at the given level.
func NewSlogLoggerTo(w io.Writer, level Level, format string) Logger {
	opts := &slog.HandlerOptions{Level: level.slogLevel()}
	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return NewSlogAdapter(slog.New(handler))
}

// With returns a Logger that adds the given key/value pairs to every
// message, independent of the underlying implementation.
func With(logger Logger, args ...any) Logger {
	if len(args) == 0 {
		return logger
	}
	return &contextLogger{logger: logger, args: args}
}

type contextLogger struct {
	logger Logger
	args   []any
}

// merged prepends the bound attributes in a fresh slice; appending into the
// call-site slice could write through its spare capacity.
func (l *contextLogger) merged(args []any) []any {
	merged := make([]any, 0, len(l.args)+len(args))
	merged = append(merged, l.args...)
	return append(merged, args...)
}

func (l *contextLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, l.merged(args)...)
}

func (l *contextLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, l.merged(args)...)
}

func (l *contextLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, l.merged(args)...)
}

func (l *contextLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, l.merged(args)...)
}

// NoOpLogger discards all log messages. Useful for testing or when logging
// is disabled; it is the default on client constructors.
type NoOpLogger struct{}

// Debug discards a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info discards an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn discards a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error discards an error message.
func (NoOpLogger) Error(string, ...any) {}
