// Package prompt holds the prompt catalog and the generator that renders
// prompts and sends them to a language model backend.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultCatalog []byte

var placeholder = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Entry is one prompt definition.
type Entry struct {
	System    string `yaml:"system"`
	Template  string `yaml:"template"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Catalog maps prompt identifiers to their definitions.
type Catalog struct {
	entries map[domain.PromptID]Entry
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("prompt: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var raw map[string]Entry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}

	c := &Catalog{entries: make(map[domain.PromptID]Entry, len(raw))}
	for id, e := range raw {
		if e.Template == "" {
			return nil, fmt.Errorf("prompt %q has an empty template", id)
		}
		c.entries[domain.PromptID(id)] = e
	}
	return c, nil
}

// IDs lists the prompts in the catalog, sorted.
func (c *Catalog) IDs() []domain.PromptID {
	ids := make([]domain.PromptID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Render substitutes vars into the prompt template.
// Extra variables are ignored; a missing one is an error.
func (c *Catalog) Render(id domain.PromptID, vars map[string]string) (ports.CompletionRequest, error) {
	e, ok := c.entries[id]
	if !ok {
		return ports.CompletionRequest{}, fmt.Errorf("%w: %s", domain.ErrUnknownPrompt, id)
	}

	var missing string
	text := placeholder.ReplaceAllStringFunc(e.Template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return ports.CompletionRequest{}, fmt.Errorf("%w: %s needs %q", domain.ErrMissingVariable, id, missing)
	}

	return ports.CompletionRequest{
		System:    e.System,
		Prompt:    text,
		MaxTokens: e.MaxTokens,
	}, nil
}
