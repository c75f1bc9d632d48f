package gsfs

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with gsfs-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithRun adds a run ID field to the logger.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", id),
	}
}

// WithFeatures adds the universe size to the logger.
func (l *Logger) WithFeatures(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("features", n),
	}
}

// LogFit logs the outcome of a Fit or Refit call.
func (l *Logger) LogFit(ctx context.Context, op string, episodes int, best float64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, op+" failed",
			"episodes", episodes,
			"duration", duration,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, op+" completed",
			"episodes", episodes,
			"best_score", best,
			"duration", duration,
		)
	}
}

// LogWarmStart logs a warm start.
func (l *Logger) LogWarmStart(ctx context.Context, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "warm start failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "warm start applied",
			"features", features,
		)
	}
}

// LogExport logs a report export.
func (l *Logger) LogExport(ctx context.Context, name string, size int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "report export failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report exported",
			"name", name,
			"bytes", size,
		)
	}
}
