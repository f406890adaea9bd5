package tripapi

import (
	"context"
	"log/slog"
	"time"
)

// CallEvent describes one finished trip API request. Status is zero when no
// response arrived.
type CallEvent struct {
	Op       Op
	Method   string
	Path     string
	Status   int
	Duration time.Duration
	Err      error
}

// OK reports whether the call succeeded.
func (e CallEvent) OK() bool { return e.Err == nil }

// Code is the stable error class of the call ("" on success).
func (e CallEvent) Code() string { return errorCode(e.Err) }

// Observer is told about every request the client makes.
type Observer interface {
	ObserveCall(ctx context.Context, event CallEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, event CallEvent)

func (f ObserverFunc) ObserveCall(ctx context.Context, event CallEvent) { f(ctx, event) }

// SlogObserver records each call as an "api_call" log line. Failed calls
// are logged at warn level.
type SlogObserver struct {
	logger *slog.Logger
}

func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) ObserveCall(ctx context.Context, event CallEvent) {
	attrs := []slog.Attr{
		slog.String("op", string(event.Op)),
		slog.String("method", event.Method),
		slog.String("path", event.Path),
		slog.Int("http", event.Status),
		slog.Int64("latency_ms", event.Duration.Milliseconds()),
	}
	level := slog.LevelInfo
	if !event.OK() {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error_code", event.Code()), slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "api_call", attrs...)
}

type NoopObserver struct{}

func (NoopObserver) ObserveCall(context.Context, CallEvent) {}
