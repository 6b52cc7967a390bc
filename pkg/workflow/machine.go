package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/intent"
	"github.com/aretw0/scribe/pkg/ports"
)

// Fixed replies of the workflow.
const (
	StartReply = "Great! Let's write an article. First, please tell me: 1. What industry or topic is this for? 2. Who is the target audience?"

	titlesHeader  = "Here are 5 title options. Please copy and paste the one you'd like to use:\n\n"
	ideasHeader   = "Excellent. Now, here are 5 blog ideas based on that title. Please pick one to develop:\n\n"
	articleHeader = "**" + domain.CompletionMarker + ":**\n\n---\n\n"
)

// Outcome is the result of a single Step.
type Outcome struct {
	// Handled is false when the machine declined the message (idle, no trigger).
	Handled bool
	Reply   string
	From    domain.Stage
	To      domain.Stage
	// Done is true when the article was delivered and the session blanked.
	Done bool
}

// Machine drives sessions through the article writer stages.
type Machine struct {
	gen    ports.Generator
	now    func() time.Time
	logger *slog.Logger
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger configures a logger for the Machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithClock overrides the time source used to stamp sessions.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		m.now = now
	}
}

// NewMachine creates a Machine backed by the given generator.
func NewMachine(gen ports.Generator, opts ...Option) *Machine {
	m := &Machine{
		gen:    gen,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Step feeds one message to the session and mutates it in place.
func (m *Machine) Step(ctx context.Context, s *domain.Session, input string) Outcome {
	out := Outcome{From: s.Stage, To: s.Stage}

	switch s.Stage {
	case domain.StageIdle:
		if !intent.StartsWorkflow(input) {
			return out
		}
		s.Stage = domain.StageAwaitingContext
		out.Reply = StartReply

	case domain.StageAwaitingContext:
		s.Context.Description = input
		titles := m.gen.Generate(ctx, domain.PromptGenerateTitles, map[string]string{
			domain.VarDescription: s.Context.Description,
		})
		m.logFailure(s, domain.PromptGenerateTitles, titles)
		s.Context.Titles = titles.Reply()
		s.Stage = domain.StageAwaitingTitleChoice
		out.Reply = titlesHeader + s.Context.Titles

	case domain.StageAwaitingTitleChoice:
		s.Context.ChosenTitle = input
		s.Context.Title = input
		ideas := m.gen.Generate(ctx, domain.PromptGenerateBlogIdeas, map[string]string{
			domain.VarTitle:       s.Context.Title,
			domain.VarDescription: s.Context.Description,
		})
		m.logFailure(s, domain.PromptGenerateBlogIdeas, ideas)
		s.Context.Ideas = ideas.Reply()
		s.Stage = domain.StageAwaitingBlogChoice
		out.Reply = ideasHeader + s.Context.Ideas

	case domain.StageAwaitingBlogChoice:
		s.Context.ChosenBlogIdea = input
		article := m.gen.Generate(ctx, domain.PromptGenerateArticle, map[string]string{
			domain.VarDescription: s.Context.Description,
			domain.VarTitle:       s.Context.Title,
			domain.VarBlogIdea:    s.Context.ChosenBlogIdea,
		})
		m.logFailure(s, domain.PromptGenerateArticle, article)
		out.Reply = articleHeader + article.Reply()
		out.Done = true
		s.Reset()

	default:
		// Unknown stage (e.g. a store written by a newer version): recover to idle
		// and let the caller route the message normally.
		m.logger.Warn("Unknown workflow stage, resetting session",
			"session_id", s.ID,
			"stage", string(s.Stage),
		)
		s.Reset()
		s.Touch(m.now())
		out.To = s.Stage
		return out
	}

	out.Handled = true
	out.To = s.Stage
	s.Touch(m.now())
	m.logger.Debug("Workflow transition",
		"session_id", s.ID,
		"from", string(out.From),
		"to", string(out.To),
		"done", out.Done,
	)
	return out
}

func (m *Machine) logFailure(s *domain.Session, prompt domain.PromptID, g domain.Generation) {
	if g.OK() {
		return
	}
	m.logger.Warn("Generation failed, forwarding notice to user",
		"session_id", s.ID,
		"prompt", string(prompt),
		"err", g.Err,
	)
}

// Edge describes one row of the transition table.
type Edge struct {
	From    domain.Stage
	To      domain.Stage
	Trigger string
	Prompt  domain.PromptID
}

// Edges returns the transition table, in workflow order.
func Edges() []Edge {
	return []Edge{
		{From: domain.StageIdle, To: domain.StageAwaitingContext, Trigger: "write | new article"},
		{From: domain.StageAwaitingContext, To: domain.StageAwaitingTitleChoice, Trigger: "description", Prompt: domain.PromptGenerateTitles},
		{From: domain.StageAwaitingTitleChoice, To: domain.StageAwaitingBlogChoice, Trigger: "title", Prompt: domain.PromptGenerateBlogIdeas},
		{From: domain.StageAwaitingBlogChoice, To: domain.StageIdle, Trigger: "blog idea", Prompt: domain.PromptGenerateArticle},
	}
}

// String renders the outcome for debug output.
func (o Outcome) String() string {
	if !o.Handled {
		return fmt.Sprintf("unhandled (%s)", o.From)
	}
	return fmt.Sprintf("%s -> %s (done=%t)", o.From, o.To, o.Done)
}
