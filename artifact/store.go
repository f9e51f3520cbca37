package artifact

import (
	"context"
	"sync"
)

// Store is the audio artifact store consumed by the pipeline.
type Store interface {
	// Release deletes the artifact at location. Best-effort: a missing
	// artifact is success, and callers treat failures as non-fatal.
	Release(ctx context.Context, location string) error

	// Exists reports whether an artifact is present at location.
	Exists(ctx context.Context, location string) (bool, error)
}

// MemoryStore is a Store double for tests. It records every released
// location and can pre-seed existing artifacts.
type MemoryStore struct {
	mu       sync.Mutex
	existing map[string]bool
	released []string
}

// NewMemoryStore creates a MemoryStore seeded with the given locations.
func NewMemoryStore(locations ...string) *MemoryStore {
	existing := make(map[string]bool, len(locations))
	for _, l := range locations {
		existing[l] = true
	}
	return &MemoryStore{existing: existing}
}

var _ Store = (*MemoryStore)(nil)

// Release removes the artifact and records the call.
func (s *MemoryStore) Release(_ context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.existing, location)
	s.released = append(s.released, location)
	return nil
}

// Exists reports whether the artifact is present.
func (s *MemoryStore) Exists(_ context.Context, location string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[location], nil
}

// Released returns the locations released so far.
func (s *MemoryStore) Released() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.released))
	copy(out, s.released)
	return out
}
