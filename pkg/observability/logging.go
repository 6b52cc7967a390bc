package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/scribe/pkg/domain"
)

// LoggingHooks writes lifecycle events as structured log records.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			logger.Debug("route", "session_id", e.SessionID, "route", string(e.Route))
		},
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.Info("transition", "session_id", e.SessionID, "from", string(e.From), "to", string(e.To))
		},
		OnSessionClosed: func(ctx context.Context, e *domain.SessionClosedEvent) {
			logger.Info("session_closed", "session_id", e.SessionID, "reason", string(e.Reason))
		},
	}
}
