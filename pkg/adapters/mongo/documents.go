// Package mongo looks articles up in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/scribe/internal/logging"
	"github.com/aretw0/scribe/pkg/article"
	"github.com/aretw0/scribe/pkg/domain"
	"github.com/aretw0/scribe/pkg/ports"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultServerSelectionTimeout bounds how long an unreachable cluster blocks a request.
const DefaultServerSelectionTimeout = 5 * time.Second

var (
	_ ports.DocumentLookup = (*Documents)(nil)
	_ ports.Pinger         = (*Documents)(nil)
)

// Documents implements ports.DocumentLookup over a MongoDB collection.
type Documents struct {
	client *driver.Client
	coll   *driver.Collection
	logger *slog.Logger
}

// Option configures Documents.
type Option func(*Documents)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Documents) {
		d.logger = logger
	}
}

// Connect dials the cluster, verifies it with a ping and binds the collection.
func Connect(ctx context.Context, uri, database, collection string, opts ...Option) (*Documents, error) {
	if uri == "" || database == "" || collection == "" {
		return nil, errors.New("mongo uri, database and collection are required")
	}

	client, err := driver.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(DefaultServerSelectionTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	d := NewFromCollection(client.Database(database).Collection(collection), opts...)
	d.client = client
	if err := d.Ping(ctx); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}
	d.logger.Info("MongoDB connection successful", "database", database, "collection", collection)
	return d, nil
}

// NewFromCollection wraps an existing collection handle.
func NewFromCollection(coll *driver.Collection, opts ...Option) *Documents {
	d := &Documents{
		client: coll.Database().Client(),
		coll:   coll,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FetchByID implements ports.DocumentLookup.
func (d *Documents) FetchByID(ctx context.Context, id string) (*domain.Document, error) {
	var raw bson.M
	err := d.coll.FindOne(ctx, idFilter(id)).Decode(&raw)
	if errors.Is(err, driver.ErrNoDocuments) {
		d.logger.Warn("Article not found", "article_id", id)
		return nil, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find failed for %s: %w", id, err)
	}

	doc, err := article.DecodeDocument(id, normalize(raw).(map[string]any))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Ping implements ports.Pinger.
func (d *Documents) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *Documents) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// idFilter matches hex ids as ObjectIDs and anything else as a plain string _id.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

// normalize turns BSON values into plain Go values that encode cleanly as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
