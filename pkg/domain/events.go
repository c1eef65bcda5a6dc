package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart     EventType = "run_start"
	EventRunFinish    EventType = "run_finish"
	EventWriterStart  EventType = "writer_start"
	EventWriterFinish EventType = "writer_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// RunEvent is emitted when a run starts and when it ends.
type RunEvent struct {
	EventBase
	URI      string        `json:"uri"`
	Plan     []Domain      `json:"plan"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// WriterEvent is emitted around each writer invocation.
type WriterEvent struct {
	EventBase
	Domain   Domain        `json:"domain"`
	Position int           `json:"position"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for pipeline observability.
type LifecycleHooks struct {
	OnRunStart     func(context.Context, *RunEvent)
	OnRunFinish    func(context.Context, *RunEvent)
	OnWriterStart  func(context.Context, *WriterEvent)
	OnWriterFinish func(context.Context, *WriterEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRunStart:     chain(h.OnRunStart, other.OnRunStart),
		OnRunFinish:    chain(h.OnRunFinish, other.OnRunFinish),
		OnWriterStart:  chain(h.OnWriterStart, other.OnWriterStart),
		OnWriterFinish: chain(h.OnWriterFinish, other.OnWriterFinish),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
