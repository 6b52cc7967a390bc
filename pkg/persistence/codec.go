// Package persistence holds the byte-level codecs used by session stores.
//
// Stores that write outside the process (Redis, files) serialize sessions with
// a Codec. JSONCodec is the default; EncryptedCodec seals the JSON document
// with AES-256-GCM and supports key rotation through fallback keys.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/scribe/pkg/domain"
)

// Codec converts sessions to and from their stored representation.
type Codec interface {
	Marshal(s *domain.Session) ([]byte, error)
	Unmarshal(data []byte) (*domain.Session, error)
}

// JSONCodec stores sessions as plain JSON.
type JSONCodec struct {
	// Indent pretty-prints the output (useful for file stores inspected by hand).
	Indent bool
}

// Marshal implements Codec.
func (c JSONCodec) Marshal(s *domain.Session) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if c.Indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

// Unmarshal implements Codec.
func (c JSONCodec) Unmarshal(data []byte) (*domain.Session, error) {
	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}
