package binder

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/binder/internal/kernel"
)

// Logger wraps slog.Logger with binder-specific helpers.
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

// WithItems adds the item count to the logger.
func (l *Logger) WithItems(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("items", n),
	}
}

// LogRunStart logs the resolved configuration of a run. The number of
// workers actually started is only known afterwards, see LogRunSummary.
func (l *Logger) LogRunStart(ctx context.Context, o *options) {
	l.InfoContext(ctx, "search started",
		"max_threads", o.maxThreads,
		"kernel", kernel.Active().String(),
		"kernel_override", kernel.HasOverride(),
		"max_clusters", o.maxClusters,
		"threshold", o.threshold,
		"target_iterations", o.targetIterations,
		"max_sweetening_passes", o.maxSweeteningPasses,
		"time_limit", o.timeLimit,
	)
}

// LogRunSummary logs the outcome of a run.
func (l *Logger) LogRunSummary(ctx context.Context, res *Result, err error) {
	if res == nil {
		l.ErrorContext(ctx, "search failed", "error", err)
		return
	}
	attrs := []any{
		"threads", res.NumThreads,
		"iterations", res.Iterations,
		"loss", res.Loss,
		"clusters", res.NumClusters,
		"elapsed", res.Elapsed.Round(time.Millisecond),
		"time_limit_reached", res.TimeLimitReached,
	}
	if err != nil {
		l.WarnContext(ctx, "search interrupted", append(attrs, "error", err)...)
		return
	}
	l.InfoContext(ctx, "search completed", attrs...)
}
