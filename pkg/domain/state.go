package domain

import "time"

// Stage is the position of a session inside the article writer workflow.
type Stage string

const (
	StageIdle                Stage = "idle"                  // No workflow active (initial and resting value)
	StageAwaitingContext     Stage = "awaiting_context"      // Waiting for topic and audience
	StageAwaitingTitleChoice Stage = "awaiting_title_choice" // Waiting for one of the offered titles
	StageAwaitingBlogChoice  Stage = "awaiting_blog_choice"  // Waiting for one of the offered blog ideas
)

// Stages lists every stage in workflow order.
var Stages = []Stage{
	StageIdle,
	StageAwaitingContext,
	StageAwaitingTitleChoice,
	StageAwaitingBlogChoice,
}

// Valid reports whether s is one of the known stages.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// WorkflowContext holds the fields accumulated across workflow turns.
// Fields are written once per run and cleared together by Reset.
type WorkflowContext struct {
	Description    string `json:"description,omitempty"`
	ChosenTitle    string `json:"chosen_title,omitempty"`
	Title          string `json:"title,omitempty"`
	Titles         string `json:"titles,omitempty"`
	ChosenBlogIdea string `json:"chosen_blog_idea,omitempty"`
	Ideas          string `json:"ideas,omitempty"`
}

// IsEmpty reports whether no field has been collected yet.
func (c WorkflowContext) IsEmpty() bool {
	return c == WorkflowContext{}
}

// Session represents the conversational state of a single user.
type Session struct {
	// ID is supplied by the caller and never generated internally.
	ID string `json:"id"`

	Stage   Stage           `json:"stage"`
	Context WorkflowContext `json:"context"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates an idle session with an empty context.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Stage:     StageIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset blanks the workflow state back to idle.
func (s *Session) Reset() {
	s.Stage = StageIdle
	s.Context = WorkflowContext{}
}

// Touch records activity on the session.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// Snapshot returns a copy safe to hand out of a store.
func (s *Session) Snapshot() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
