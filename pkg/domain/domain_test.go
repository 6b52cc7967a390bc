package domain_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerationReply(t *testing.T) {
	assert.Equal(t, "text", domain.Generated("text").Reply())
	assert.True(t, domain.Generated("").OK())

	failed := domain.GenerationFailed(errors.New("quota exceeded"))
	assert.False(t, failed.OK())
	assert.Equal(t, "⚠️ An error occurred with the generation service: quota exceeded", failed.Reply())
}

func TestDocumentText(t *testing.T) {
	doc := &domain.Document{Title: "Edge AI", MetaDescription: "Models on devices."}
	assert.Equal(t, "Edge AI Models on devices.", doc.SummaryText())
	assert.Equal(t, doc.SummaryText(), doc.Text(), "without a body the summary text is discussed")

	doc.Body = "Full body."
	assert.Equal(t, "Full body.", doc.Text())

	assert.Empty(t, (&domain.Document{}).SummaryText())
}

func TestStageValid(t *testing.T) {
	for _, s := range domain.Stages {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, domain.Stage("awaiting_nothing").Valid())
	assert.False(t, domain.Stage("").Valid())
}

func TestSessionLifecycle(t *testing.T) {
	s := domain.NewSession("u1")
	assert.Equal(t, domain.StageIdle, s.Stage)
	assert.True(t, s.Context.IsEmpty())

	s.Stage = domain.StageAwaitingTitleChoice
	s.Context.Description = "fintech"
	s.Context.Titles = "1. A\n2. B"

	snap := s.Snapshot()
	s.Reset()
	assert.Equal(t, domain.StageIdle, s.Stage)
	assert.True(t, s.Context.IsEmpty())
	assert.Equal(t, domain.StageAwaitingTitleChoice, snap.Stage, "snapshot is independent of later mutation")
	assert.Equal(t, "fintech", snap.Context.Description)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	s.Touch(at)
	assert.Equal(t, time.UTC, s.UpdatedAt.Location())
	assert.True(t, s.UpdatedAt.Equal(at))

	var nilSession *domain.Session
	assert.Nil(t, nilSession.Snapshot())
}

func TestLifecycleHooksMerge(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) { calls = append(calls, "a:route") },
	}
	b := domain.LifecycleHooks{
		OnRoute:      func(ctx context.Context, e *domain.RouteEvent) { calls = append(calls, "b:route") },
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) { calls = append(calls, "b:transition") },
	}

	merged := a.Merge(b)
	merged.OnRoute(context.Background(), &domain.RouteEvent{})
	merged.OnTransition(context.Background(), &domain.TransitionEvent{})
	assert.Nil(t, merged.OnSessionClosed)
	assert.Equal(t, []string{"a:route", "b:route", "b:transition"}, calls)
}
