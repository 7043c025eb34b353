// Package artifact is the persistence boundary: a generic JSON-blob
// store with optimistic concurrency. Every stored document carries an
// opaque token representing "the version I last saw"; writes supply the
// token as a precondition and fail with ErrConflict when it is stale.
package artifact

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no artifact exists under the key.
	ErrNotFound = errors.New("artifact not found")

	// ErrConflict indicates the write precondition did not match the
	// store's current token. The caller must reload or re-save
	// deliberately; there is no automatic retry or merge.
	ErrConflict = errors.New("artifact version conflict")

	// ErrUnavailable indicates the store is unreachable.
	ErrUnavailable = errors.New("artifact store unavailable")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("artifact request timed out")
)

// Document is a stored artifact: its raw JSON content and the
// concurrency token current at read time. Tokens are compared by
// equality only.
type Document struct {
	Data  []byte
	Token string
}

// Store is the artifact store contract.
type Store interface {
	// Get returns the artifact under key, or ErrNotFound.
	Get(ctx context.Context, key string) (*Document, error)

	// Put writes content under key. precondition is the last-seen
	// token, or empty when creating; the returned token becomes the
	// precondition for the next write. A stale precondition yields
	// ErrConflict without changing the stored artifact.
	Put(ctx context.Context, key string, data []byte, precondition string) (string, error)
}
