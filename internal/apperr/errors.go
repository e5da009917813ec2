// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	// ErrNotFound reports that a requested article or document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSourceUnavailable reports that the document source could not be
	// reached or answered with a non-recoverable failure.
	ErrSourceUnavailable = errors.New("source unavailable")
)
