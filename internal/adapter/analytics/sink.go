// Package analytics emits fire-and-forget usage events.
package analytics

import (
	"context"

	"pkt.systems/pslog"
)

// EventRepositorySelected is captured after a repository is chosen.
const EventRepositorySelected = "repository_selected"

// Sink receives usage events. Implementations must not block the caller
// for long and must never fail it.
type Sink interface {
	Capture(ctx context.Context, event string, props map[string]any)
}

// NopSink discards events.
type NopSink struct{}

// Capture implements Sink.
func (NopSink) Capture(context.Context, string, map[string]any) {}

// LogSink writes events to a structured logger.
type LogSink struct {
	logger pslog.Logger
}

// NewLogSink creates a sink logging at info level. A nil logger uses the
// context logger of each Capture call.
func NewLogSink(logger pslog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Capture implements Sink.
func (s *LogSink) Capture(ctx context.Context, event string, props map[string]any) {
	log := s.logger
	if log == nil {
		log = pslog.Ctx(ctx)
	}
	kv := make([]any, 0, 2+2*len(props))
	kv = append(kv, "event", event)
	for k, v := range props {
		kv = append(kv, k, v)
	}
	log.Info("analytics event", kv...)
}

// SafeSink shields callers from a misbehaving sink.
type SafeSink struct {
	next Sink
}

// Safe wraps next so that panics inside Capture are swallowed.
func Safe(next Sink) Sink {
	if next == nil {
		return NopSink{}
	}
	if s, ok := next.(SafeSink); ok {
		return s
	}
	return SafeSink{next: next}
}

// Capture implements Sink.
func (s SafeSink) Capture(ctx context.Context, event string, props map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			pslog.Ctx(ctx).Warn("analytics sink failed", "event", event, "panic", r)
		}
	}()
	s.next.Capture(ctx, event, props)
}
