package prompt_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
	"github.com/aretw0/scribe/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_CoversEveryPrompt(t *testing.T) {
	c := prompt.Default()
	assert.ElementsMatch(t, []domain.PromptID{
		domain.PromptSummary,
		domain.PromptSuggestTopics,
		domain.PromptQuestionAnswering,
		domain.PromptGenerateTitles,
		domain.PromptGenerateBlogIdeas,
		domain.PromptGenerateArticle,
	}, c.IDs())
}

func TestCatalog_Render(t *testing.T) {
	c := prompt.Default()

	req, err := c.Render(domain.PromptGenerateArticle, map[string]string{
		domain.VarDescription: "fintech, CFOs",
		domain.VarTitle:       "Closing the Books Faster",
		domain.VarBlogIdea:    "A week in the life",
		"unused":              "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "You are a professional blog writer.", req.System)
	assert.Equal(t, 2048, req.MaxTokens)
	assert.Contains(t, req.Prompt, "The target context is: fintech, CFOs.")
	assert.Contains(t, req.Prompt, "TITLE: Closing the Books Faster")
	assert.Contains(t, req.Prompt, "CHOSEN BLOG IDEA: A week in the life")
	assert.NotContains(t, req.Prompt, "{")
}

func TestCatalog_RenderErrors(t *testing.T) {
	c := prompt.Default()

	_, err := c.Render("nope", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownPrompt)

	_, err = c.Render(domain.PromptQuestionAnswering, map[string]string{domain.VarText: "body"})
	assert.ErrorIs(t, err, domain.ErrMissingVariable)
	assert.Contains(t, err.Error(), "question")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("summary:\n  template: \"Short: {text}\"\n  max_tokens: 10\n"), 0o644))

	c, err := prompt.Load(path)
	require.NoError(t, err)
	req, err := c.Render(domain.PromptSummary, map[string]string{domain.VarText: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Short: x", req.Prompt)

	_, err = prompt.Parse([]byte("summary:\n  max_tokens: 10\n"))
	assert.Error(t, err)
}

type completerFunc func(ctx context.Context, req ports.CompletionRequest) (string, error)

func (f completerFunc) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	return f(ctx, req)
}

func TestGenerator(t *testing.T) {
	var got ports.CompletionRequest
	gen := prompt.NewGenerator(completerFunc(func(ctx context.Context, req ports.CompletionRequest) (string, error) {
		got = req
		return "\n  1. Title\n", nil
	}))

	g := gen.Generate(context.Background(), domain.PromptGenerateTitles, map[string]string{domain.VarDescription: "edge AI"})
	require.True(t, g.OK())
	assert.Equal(t, "1. Title", g.Text)
	assert.Equal(t, 150, got.MaxTokens)
	assert.Contains(t, got.Prompt, "'edge AI'")
}

func TestGenerator_FailuresAreResults(t *testing.T) {
	boom := errors.New("upstream 503")
	gen := prompt.NewGenerator(completerFunc(func(ctx context.Context, req ports.CompletionRequest) (string, error) {
		return "", boom
	}))

	g := gen.Generate(context.Background(), domain.PromptSummary, map[string]string{domain.VarText: "x"})
	assert.ErrorIs(t, g.Err, boom)

	g = gen.Generate(context.Background(), domain.PromptSummary, nil)
	assert.ErrorIs(t, g.Err, domain.ErrMissingVariable)
}
