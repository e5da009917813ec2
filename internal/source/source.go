// Package source abstracts where raw article documents are read from.
package source

import "context"

// Source fetches raw article documents by identifier. Implementations are
// read-only and must be safe for concurrent use.
type Source interface {
	// Fetch returns the raw bytes of the document with the given id. It
	// returns an error wrapping apperr.ErrNotFound when the document does
	// not exist, and an error wrapping apperr.ErrSourceUnavailable when
	// the backing store cannot be read.
	Fetch(ctx context.Context, id string) ([]byte, error)
}
