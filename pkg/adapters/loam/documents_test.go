package loam_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/scribe/pkg/adapters/loam"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestDocuments_FetchByID(t *testing.T) {
	dir := seed(t, map[string]string{
		"cloud-costs.md": `---
title: Cutting Cloud Costs
meta:
  description: Practical levers for FinOps teams.
tags: [finops]
---
Rightsize first, then commit.`,
		"edge.md": `---
id: 6718f9a2
title: Edge AI
description: Models on devices.
---
Quantize everything.`,
	})

	docs, err := loam.Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	doc, err := docs.FetchByID(ctx, "cloud-costs")
	require.NoError(t, err)
	assert.Equal(t, "Cutting Cloud Costs", doc.Title)
	assert.Equal(t, "Practical levers for FinOps teams.", doc.MetaDescription)
	assert.Equal(t, "Rightsize first, then commit.", doc.Body)

	doc, err = docs.FetchByID(ctx, "6718f9a2")
	require.NoError(t, err, "frontmatter ids resolve too")
	assert.Equal(t, "Edge AI", doc.Title)
	assert.Equal(t, "Models on devices.", doc.MetaDescription)

	ids, err := docs.IDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"cloud-costs", "6718f9a2"}, ids)

	assert.NoError(t, docs.Ping(ctx))
}

func TestDocuments_NotFound(t *testing.T) {
	docs, err := loam.Open(seed(t, map[string]string{"a.md": "---\ntitle: A\n---\nbody"}))
	require.NoError(t, err)

	_, err = docs.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
