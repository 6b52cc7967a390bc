package article

import (
	"fmt"

	"github.com/aretw0/scribe/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// record matches the article layout used by the document stores.
type record struct {
	ID      any    `mapstructure:"_id"`
	AltID   any    `mapstructure:"id"`
	Title   string `mapstructure:"title"`
	Body    string `mapstructure:"body"`
	Content string `mapstructure:"content"`
	Meta    struct {
		Description string `mapstructure:"description"`
	} `mapstructure:"meta"`
}

// DecodeDocument converts a store-native map into a Document.
// When id is empty it is taken from "_id" or "id". The raw map is kept as is.
func DecodeDocument(id string, raw map[string]any) (*domain.Document, error) {
	var rec record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &rec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build article decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode article: %w", err)
	}

	if id == "" {
		switch {
		case rec.ID != nil:
			id = fmt.Sprint(rec.ID)
		case rec.AltID != nil:
			id = fmt.Sprint(rec.AltID)
		}
	}

	body := rec.Body
	if body == "" {
		body = rec.Content
	}

	return &domain.Document{
		ID:              id,
		Title:           rec.Title,
		MetaDescription: rec.Meta.Description,
		Body:            body,
		Raw:             raw,
	}, nil
}
