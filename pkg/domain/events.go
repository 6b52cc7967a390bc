package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRoute         EventType = "route"
	EventTransition    EventType = "transition"
	EventSessionClosed EventType = "session_closed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// RouteEvent records which handler answered a message.
type RouteEvent struct {
	EventBase
	Route Route `json:"route"`
}

// TransitionEvent records a workflow stage change.
type TransitionEvent struct {
	EventBase
	From Stage `json:"from"`
	To   Stage `json:"to"`
}

// CloseReason explains why a session was removed from the store.
type CloseReason string

const (
	CloseCompleted CloseReason = "completed"
	CloseExpired   CloseReason = "expired"
)

// SessionClosedEvent records a session teardown.
type SessionClosedEvent struct {
	EventBase
	Reason CloseReason `json:"reason"`
}

// LifecycleHooks defines callbacks for router observability.
type LifecycleHooks struct {
	OnRoute         func(context.Context, *RouteEvent)
	OnTransition    func(context.Context, *TransitionEvent)
	OnSessionClosed func(context.Context, *SessionClosedEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnRoute:         chain(h.OnRoute, other.OnRoute),
		OnTransition:    chain(h.OnTransition, other.OnTransition),
		OnSessionClosed: chain(h.OnSessionClosed, other.OnSessionClosed),
	}
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
