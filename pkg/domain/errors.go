package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrDocumentNotFound is returned when the document store has no article for an ID.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnknownPrompt is returned when a prompt identifier is not in the catalog.
var ErrUnknownPrompt = errors.New("unknown prompt")

// ErrMissingVariable is returned when a prompt template references a variable that was not supplied.
var ErrMissingVariable = errors.New("missing prompt variable")
