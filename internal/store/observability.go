package store

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// MutationEvent captures one store mutation. Applied is false when the
// target id did not exist and nothing changed.
type MutationEvent struct {
	Op       string
	ID       string
	Applied  bool
	Duration time.Duration
	Err      error
}

// MutationObserver receives mutation events.
type MutationObserver interface {
	ObserveMutation(ctx context.Context, event MutationEvent)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveMutation(context.Context, MutationEvent) {}

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes mutation events to w. A nil writer yields a no-op.
func NewLogObserver(w io.Writer) MutationObserver {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveMutation(ctx context.Context, event MutationEvent) {
	attrs := []any{
		"op", event.Op,
		"id", event.ID,
		"applied", event.Applied,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		o.logger.ErrorContext(ctx, "store_mutation", append(attrs, "error", event.Err.Error())...)
		return
	}
	o.logger.InfoContext(ctx, "store_mutation", attrs...)
}
