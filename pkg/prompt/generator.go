package prompt

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

// Generator implements ports.Generator by rendering catalog prompts and
// handing them to a Completer.
type Generator struct {
	catalog   *Catalog
	completer ports.Completer
	logger    *slog.Logger
}

// GeneratorOption configures the Generator.
type GeneratorOption func(*Generator)

// WithLogger configures a logger for the Generator.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *Catalog) GeneratorOption {
	return func(g *Generator) {
		g.catalog = c
	}
}

// NewGenerator creates a Generator over the completer.
func NewGenerator(completer ports.Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{
		completer: completer,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.catalog == nil {
		g.catalog = Default()
	}
	return g
}

// Generate implements ports.Generator.
func (g *Generator) Generate(ctx context.Context, id domain.PromptID, vars map[string]string) domain.Generation {
	req, err := g.catalog.Render(id, vars)
	if err != nil {
		g.logger.Error("Failed to render prompt", "prompt", string(id), "err", err)
		return domain.GenerationFailed(err)
	}

	text, err := g.completer.Complete(ctx, req)
	if err != nil {
		return domain.GenerationFailed(err)
	}
	g.logger.Debug("Generation completed", "prompt", string(id), "chars", len(text))
	return domain.Generated(strings.TrimSpace(text))
}
