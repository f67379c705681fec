package sitestore

import (
	"log/slog"
	"os"

	"github.com/hupe1980/sitestore/docstore"
)

// Logger wraps slog.Logger with sitestore-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSite adds a site field to the logger.
func (l *Logger) WithSite(site string) *Logger {
	return &Logger{
		Logger: l.Logger.With("site", site),
	}
}

// WithKey adds a document key field to the logger.
func (l *Logger) WithKey(key string) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", key),
	}
}

// LogOp logs the outcome of a store operation (useful for wrapping calls).
// Logs at Debug on success, Error on failure.
func (l *Logger) LogOp(op, key string, err error) {
	if err != nil {
		l.Error(op+" failed", "key", key, "error", err)
		return
	}
	l.Debug(op, "key", key)
}

// RecoveryObserver returns an Observer that logs document recovery events
// through this logger. Recovery steps log at Warn, unrecoverable outcomes
// at Error.
func (l *Logger) RecoveryObserver() docstore.Observer {
	return docstore.ObserverFunc(func(ev docstore.RecoveryEvent) {
		attrs := []any{
			"key", ev.Key,
			"condition", ev.Condition.String(),
			"action", ev.Action.String(),
		}
		if ev.Err != nil {
			attrs = append(attrs, "error", ev.Err)
		}
		if ev.Condition == docstore.ConditionBackupUnusable {
			l.Error("document recovery failed", attrs...)
			return
		}
		l.Warn("document recovered", attrs...)
	})
}
