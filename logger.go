package triego

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with triego-specific helpers.
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

// WithID adds an item ID field to the logger.
func (l *Logger) WithID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("id", id),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(id string, terms int, err error) {
	if err != nil {
		l.Error("add failed",
			"id", id,
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"id", id,
			"terms", terms,
		)
	}
}

// LogBatchAdd logs a batch add operation.
func (l *Logger) LogBatchAdd(count, failed int) {
	if failed > 0 {
		l.Warn("batch add completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.Info("batch add completed",
			"count", count,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(id string, found bool) {
	l.Debug("remove completed",
		"id", id,
		"found", found,
	)
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(query string, tokens, resultsFound int, err error) {
	if err != nil {
		l.Error("search failed",
			"query", query,
			"error", err,
		)
	} else {
		l.Debug("search completed",
			"query", query,
			"tokens", tokens,
			"results", resultsFound,
		)
	}
}

// LogRecompute logs a reactive query recompute.
func (l *Logger) LogRecompute(text string, generation uint64, resultsFound int) {
	l.Debug("recompute completed",
		"text", text,
		"generation", generation,
		"results", resultsFound,
	)
}
