package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerator_EchoAndScript(t *testing.T) {
	gen := memory.NewGenerator().
		Respond(domain.PromptGenerateTitles, "1. One\n2. Two").
		Fail(domain.PromptGenerateArticle, errors.New("offline"))
	ctx := context.Background()

	got := gen.Generate(ctx, domain.PromptQuestionAnswering, map[string]string{"text": "doc", "question": "why?"})
	assert.Equal(t, `[questionAnswering] question="why?" text="doc"`, got.Text)

	got = gen.Generate(ctx, domain.PromptGenerateTitles, nil)
	assert.Equal(t, "1. One\n2. Two", got.Text)

	got = gen.Generate(ctx, domain.PromptGenerateArticle, nil)
	assert.False(t, got.OK())

	assert.Len(t, gen.Calls(), 3)
}
