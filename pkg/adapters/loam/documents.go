// Package loam serves articles from a directory of Markdown/JSON/YAML files
// through the Loam document engine.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
)

var (
	_ ports.DocumentLookup = (*Documents)(nil)
	_ ports.Pinger         = (*Documents)(nil)
)

// Documents implements ports.DocumentLookup over a Loam repository.
type Documents struct {
	Repo *loam.TypedRepository[ArticleMetadata]
}

// New wraps an existing typed repository.
func New(repo *loam.TypedRepository[ArticleMetadata]) *Documents {
	return &Documents{Repo: repo}
}

// Open initializes a read-only, strict Loam repository rooted at dir.
func Open(dir string) (*Documents, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ArticleMetadata](repo)), nil
}

// FetchByID implements ports.DocumentLookup. IDs match either the file name
// without extension or the id declared in the frontmatter.
func (d *Documents) FetchByID(ctx context.Context, id string) (*domain.Document, error) {
	key, err := d.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := d.Repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}

	meta := doc.Data
	return &domain.Document{
		ID:              id,
		Title:           meta.Title,
		MetaDescription: meta.MetaDescription(),
		Body:            strings.TrimSpace(doc.Content),
		Raw: map[string]any{
			"_id":   id,
			"file":  doc.ID,
			"title": meta.Title,
			"meta":  map[string]any{"description": meta.MetaDescription()},
			"tags":  meta.Tags,
		},
	}, nil
}

// resolve maps a requested id onto the repository key of the matching file.
func (d *Documents) resolve(ctx context.Context, id string) (string, error) {
	docs, err := d.Repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if trimExtension(doc.ID) == id || (doc.Data.ID != "" && doc.Data.ID == id) {
			return doc.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
}

// IDs lists the article ids in the repository.
func (d *Documents) IDs(ctx context.Context) ([]string, error) {
	docs, err := d.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		id := doc.Data.ID
		if id == "" {
			id = trimExtension(doc.ID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Ping implements ports.Pinger by listing the repository.
func (d *Documents) Ping(ctx context.Context) error {
	_, err := d.Repo.List(ctx)
	return err
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}
