package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/aretw0/scribe/pkg/article"
	"github.com/aretw0/scribe/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Documents implements ports.DocumentLookup over a fixed set of articles.
type Documents struct {
	mu   sync.RWMutex
	docs map[string]domain.Document
}

// NewDocuments creates a document set from the given articles.
func NewDocuments(docs ...domain.Document) *Documents {
	d := &Documents{docs: make(map[string]domain.Document, len(docs))}
	for _, doc := range docs {
		d.docs[doc.ID] = doc
	}
	return d
}

// documentsFile is the layout of an articles YAML fixture.
type documentsFile struct {
	Articles []map[string]any `yaml:"articles"`
}

// LoadDocumentsFile reads articles from a YAML file:
//
//	articles:
//	  - _id: welcome
//	    title: Hello
//	    meta:
//	      description: A short intro
//	    body: |
//	      Full text...
func LoadDocumentsFile(path string) (*Documents, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles file: %w", err)
	}

	var file documentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse articles file: %w", err)
	}

	docs := make([]domain.Document, 0, len(file.Articles))
	for i, raw := range file.Articles {
		doc, err := article.DecodeDocument("", raw)
		if err != nil {
			return nil, fmt.Errorf("articles[%d]: %w", i, err)
		}
		if doc.ID == "" {
			return nil, fmt.Errorf("articles[%d]: missing _id", i)
		}
		docs = append(docs, *doc)
	}
	return NewDocuments(docs...), nil
}

// FetchByID implements ports.DocumentLookup.
func (d *Documents) FetchByID(ctx context.Context, id string) (*domain.Document, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	doc, ok := d.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return &doc, nil
}

// Put adds or replaces an article.
func (d *Documents) Put(doc domain.Document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[doc.ID] = doc
}

// Ping implements ports.Pinger; memory is always reachable.
func (d *Documents) Ping(ctx context.Context) error {
	return nil
}
