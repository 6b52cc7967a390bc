package ports

import (
	"context"

	"github.com/aretw0/scribe/pkg/domain"
)

// DocumentLookup fetches articles by ID.
type DocumentLookup interface {
	// FetchByID returns domain.ErrDocumentNotFound when the ID is unknown.
	FetchByID(ctx context.Context, id string) (*domain.Document, error)
}

// Pinger is implemented by document stores that can report their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
