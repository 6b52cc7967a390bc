package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/scribe/pkg/adapters/memory"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumentsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yaml")
	content := `articles:
  - _id: welcome
    title: Welcome
    meta:
      description: First steps
    body: |
      The whole article.
  - _id: second
    title: Second
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	docs, err := memory.LoadDocumentsFile(path)
	require.NoError(t, err)

	doc, err := docs.FetchByID(context.Background(), "welcome")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", doc.Title)
	assert.Equal(t, "First steps", doc.MetaDescription)
	assert.Equal(t, "The whole article.\n", doc.Body)

	_, err = docs.FetchByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestLoadDocumentsFile_MissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("articles:\n  - title: orphan\n"), 0644))

	_, err := memory.LoadDocumentsFile(path)
	assert.Error(t, err)
}
