package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrContentUnavailable indicates the remote content store is not
	// configured. The search degrades to local-only results.
	ErrContentUnavailable = errors.New("content store unavailable")

	// ErrClosed indicates the aggregator has been closed and no longer
	// accepts queries or publishes updates.
	ErrClosed = errors.New("aggregator closed")
)
