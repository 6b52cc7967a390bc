package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/scribe/pkg/domain"
)

// Sweep deletes sessions idle for longer than maxIdle and returns how many were removed.
// Each candidate is re-checked under its own lock, so an active turn is never cut short.
func (m *Manager) Sweep(ctx context.Context, maxIdle time.Duration) (int, error) {
	if maxIdle <= 0 {
		return 0, nil
	}

	ids, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list sessions: %w", err)
	}

	removed := 0
	cutoff := m.now().Add(-maxIdle)
	for _, id := range ids {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}

		expired := false
		err := m.WithLock(ctx, id, func(ctx context.Context) error {
			s, err := m.store.Load(ctx, id)
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			if s.UpdatedAt.After(cutoff) {
				return nil
			}
			expired = true
			return m.store.Delete(ctx, id)
		})
		if err != nil {
			m.logger.Warn("Failed to sweep session", "session_id", id, "err", err)
			continue
		}
		if expired {
			removed++
			m.logger.Info("Session expired", "session_id", id)
			if m.hooks.OnSessionClosed != nil {
				m.hooks.OnSessionClosed(ctx, &domain.SessionClosedEvent{
					EventBase: domain.EventBase{
						Timestamp: m.now(),
						Type:      domain.EventSessionClosed,
						SessionID: id,
					},
					Reason: domain.CloseExpired,
				})
			}
		}
	}
	return removed, nil
}

// RunJanitor sweeps idle sessions every interval until ctx is canceled.
func (m *Manager) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	if interval <= 0 || maxIdle <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Info("Session janitor started", "interval", interval, "max_idle", maxIdle)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := m.Sweep(ctx, maxIdle); err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Warn("Session sweep failed", "err", err)
			} else if n > 0 {
				m.logger.Info("Session sweep finished", "removed", n)
			}
		}
	}
}
