package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/scribe/pkg/domain"
)

// Call records one invocation of the Generator.
type Call struct {
	Prompt domain.PromptID
	Vars   map[string]string
}

// Generator is a deterministic ports.Generator for tests and offline runs.
// Prompts without a scripted response echo their identifier and variables.
type Generator struct {
	mu        sync.Mutex
	responses map[domain.PromptID]string
	failures  map[domain.PromptID]error
	calls     []Call
}

// NewGenerator creates a generator with no scripted responses.
func NewGenerator() *Generator {
	return &Generator{
		responses: make(map[domain.PromptID]string),
		failures:  make(map[domain.PromptID]error),
	}
}

// Respond scripts the text returned for a prompt.
func (g *Generator) Respond(prompt domain.PromptID, text string) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.responses[prompt] = text
	return g
}

// Fail scripts a failure for a prompt.
func (g *Generator) Fail(prompt domain.PromptID, err error) *Generator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[prompt] = err
	return g
}

// Generate implements ports.Generator.
func (g *Generator) Generate(ctx context.Context, prompt domain.PromptID, vars map[string]string) domain.Generation {
	g.mu.Lock()
	defer g.mu.Unlock()

	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	g.calls = append(g.calls, Call{Prompt: prompt, Vars: copied})

	if err, ok := g.failures[prompt]; ok {
		return domain.GenerationFailed(err)
	}
	if text, ok := g.responses[prompt]; ok {
		return domain.Generated(text)
	}
	return domain.Generated(echo(prompt, vars))
}

// Calls returns the recorded invocations.
func (g *Generator) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Call, len(g.calls))
	copy(out, g.calls)
	return out
}

// LastCall returns the most recent invocation, if any.
func (g *Generator) LastCall() (Call, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.calls) == 0 {
		return Call{}, false
	}
	return g.calls[len(g.calls)-1], true
}

func echo(prompt domain.PromptID, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, vars[k]))
	}
	return fmt.Sprintf("[%s] %s", prompt, strings.Join(parts, " "))
}
