package ports

import (
	"context"

	"github.com/aretw0/scribe/pkg/domain"
)

// Generator produces text for a prompt identifier and its named variables.
// It never returns an error: failures travel inside domain.Generation.
type Generator interface {
	Generate(ctx context.Context, prompt domain.PromptID, vars map[string]string) domain.Generation
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt domain.PromptID, vars map[string]string) domain.Generation

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt domain.PromptID, vars map[string]string) domain.Generation {
	return f(ctx, prompt, vars)
}

// CompletionRequest is a fully rendered prompt ready for a language model.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// Completer sends a rendered prompt to a language model backend.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
