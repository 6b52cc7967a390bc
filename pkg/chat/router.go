package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/intent"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/aretw0/scribe/pkg/session"
	"github.com/aretw0/scribe/pkg/workflow"
)

// GreetingReply is returned for any greeting, whatever the session's stage.
const GreetingReply = "Hi there! How can I help you today? You can ask me to summarize the article, suggest new topics, ask a question about it, or write a new article."

// ErrEmptySessionID is returned when Respond is called without a session id.
var ErrEmptySessionID = errors.New("session id is required")

// Reply is the answer to one inbound message.
type Reply struct {
	SessionID string       `json:"session_id"`
	Text      string       `json:"response"`
	Route     domain.Route `json:"route"`
	// Closed reports that the session was deleted after this reply.
	Closed bool `json:"closed,omitempty"`
}

// Router dispatches messages to the greeting, the workflow or the fallback intents.
type Router struct {
	sessions  *session.Manager
	machine   *workflow.Machine
	gen       ports.Generator
	docs      ports.DocumentLookup
	articleID string
	hooks     domain.LifecycleHooks
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures the Router.
type Option func(*Router)

// WithLogger configures a logger for the Router and its workflow machine.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithDocuments sets where fallback intents read the article from, and the
// article answered about when a request names none.
func WithDocuments(docs ports.DocumentLookup, defaultArticleID string) Option {
	return func(r *Router) {
		r.docs = docs
		r.articleID = defaultArticleID
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Router) {
		r.hooks = hooks
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Router) {
		r.now = now
	}
}

// NewRouter creates a Router over the session manager and the generator.
func NewRouter(sessions *session.Manager, gen ports.Generator, opts ...Option) *Router {
	r := &Router{
		sessions: sessions,
		gen:      gen,
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.machine = workflow.NewMachine(gen, workflow.WithLogger(r.logger), workflow.WithClock(r.now))
	return r
}

type respondConfig struct {
	articleID string
}

// RespondOption adjusts a single Respond call.
type RespondOption func(*respondConfig)

// WithArticle answers fallback intents about the given article instead of the default one.
func WithArticle(id string) RespondOption {
	return func(c *respondConfig) {
		if id != "" {
			c.articleID = id
		}
	}
}

// Respond routes one message for a session and returns the reply.
// Errors are limited to session store and article lookup failures; generation
// failures are reported inside the reply text.
func (r *Router) Respond(ctx context.Context, sessionID, message string, opts ...RespondOption) (Reply, error) {
	if sessionID == "" {
		return Reply{}, ErrEmptySessionID
	}
	cfg := respondConfig{articleID: r.articleID}
	for _, opt := range opts {
		opt(&cfg)
	}

	if intent.IsGreeting(message) {
		reply := Reply{SessionID: sessionID, Text: GreetingReply, Route: domain.RouteGreeting}
		r.emitRoute(ctx, reply)
		return reply, nil
	}

	reply := Reply{SessionID: sessionID}
	var transition *domain.TransitionEvent

	err := r.sessions.Transact(ctx, sessionID, func(ctx context.Context, s *domain.Session, created bool) (session.Disposition, error) {
		out := r.machine.Step(ctx, s, message)
		if out.Handled {
			reply.Text = out.Reply
			reply.Route = domain.RouteWorkflow
			if out.From != out.To {
				transition = &domain.TransitionEvent{
					EventBase: r.event(domain.EventTransition, sessionID),
					From:      out.From,
					To:        out.To,
				}
			}
		} else {
			text, route, err := r.fallback(ctx, message, cfg.articleID)
			if err != nil {
				return session.Keep, err
			}
			reply.Text = text
			reply.Route = route
			s.Touch(r.now())
		}

		if s.Stage == domain.StageIdle && strings.Contains(reply.Text, domain.CompletionMarker) {
			reply.Closed = true
			return session.Discard, nil
		}
		return session.Keep, nil
	})
	if err != nil {
		r.logger.Error("Failed to respond", "session_id", sessionID, "err", err)
		return Reply{}, err
	}

	if transition != nil && r.hooks.OnTransition != nil {
		r.hooks.OnTransition(ctx, transition)
	}
	r.emitRoute(ctx, reply)
	if reply.Closed {
		r.logger.Info("Workflow completed, session closed", "session_id", sessionID)
		if r.hooks.OnSessionClosed != nil {
			r.hooks.OnSessionClosed(ctx, &domain.SessionClosedEvent{
				EventBase: r.event(domain.EventSessionClosed, sessionID),
				Reason:    domain.CloseCompleted,
			})
		}
	}
	return reply, nil
}

// fallback answers a message no workflow claimed.
func (r *Router) fallback(ctx context.Context, message, articleID string) (string, domain.Route, error) {
	text, err := r.articleText(ctx, articleID)
	if err != nil {
		return "", "", err
	}

	kind := intent.Classify(message)
	var g domain.Generation
	switch kind {
	case domain.IntentSummary:
		g = r.gen.Generate(ctx, domain.PromptSummary, map[string]string{domain.VarText: text})
	case domain.IntentTopic:
		g = r.gen.Generate(ctx, domain.PromptSuggestTopics, map[string]string{domain.VarText: text})
	default:
		g = r.gen.Generate(ctx, domain.PromptQuestionAnswering, map[string]string{
			domain.VarText:     text,
			domain.VarQuestion: message,
		})
	}
	if !g.OK() {
		r.logger.Warn("Generation failed, forwarding notice to user", "intent", string(kind), "err", g.Err)
	}
	return g.Reply(), domain.RouteFor(kind), nil
}

func (r *Router) articleText(ctx context.Context, id string) (string, error) {
	if r.docs == nil || id == "" {
		return "", nil
	}
	doc, err := r.docs.FetchByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article %q: %w", id, err)
	}
	return doc.Text(), nil
}

func (r *Router) emitRoute(ctx context.Context, reply Reply) {
	r.logger.Debug("Message routed", "session_id", reply.SessionID, "route", string(reply.Route))
	if r.hooks.OnRoute != nil {
		r.hooks.OnRoute(ctx, &domain.RouteEvent{
			EventBase: r.event(domain.EventRoute, reply.SessionID),
			Route:     reply.Route,
		})
	}
}

func (r *Router) event(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: r.now(), Type: t, SessionID: sessionID}
}
