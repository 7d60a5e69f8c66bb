package todoapi

import (
	"io"
	"log/slog"
)

// CallEvent records metadata about a single API request.
type CallEvent struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about API calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events as slog text lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", event.Op,
		"method", event.Method,
		"path", event.Path,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Error("todo_api_call", append(attrs, "error", event.ErrorCode)...)
		return
	}
	o.logger.Info("todo_api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
