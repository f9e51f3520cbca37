package meeting

import "context"

// Store is the record store the pipeline persists progress through.
// Update applies a partial field update atomically in a single call; the
// pipeline never performs read-modify-write cycles across workers (the
// single-lease invariant makes each record single-writer).
type Store interface {
	// Insert creates a new record.
	Insert(ctx context.Context, rec *Record) error

	// Get returns the record with the given id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Update applies the given fields to the record atomically.
	// Keys are the Field* constants of this package.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes the record and returns it, so the caller can release
	// the audio artifact it referenced.
	Delete(ctx context.Context, id string) (*Record, error)
}
