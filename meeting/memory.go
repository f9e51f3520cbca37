package meeting

import (
	"context"
	"sync"

	apperrors "github.com/skillsenselab/minutes/errors"
)

// MemoryStore is an in-memory Store for tests and queue-less environments.
// It applies the same field names as the Mongo implementation so the two
// stay interchangeable behind the interface.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

var _ Store = (*MemoryStore)(nil)

// Insert creates a new record.
func (s *MemoryStore) Insert(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

// Get returns a copy of the record with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, apperrors.NotFound("meeting", id)
	}
	cp := *rec
	return &cp, nil
}

// Update applies the given fields to the record atomically.
func (s *MemoryStore) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return apperrors.NotFound("meeting", id)
	}
	for k, v := range fields {
		switch k {
		case FieldStatus:
			switch sv := v.(type) {
			case Status:
				rec.Status = sv
			case string:
				rec.Status = Status(sv)
			}
		case FieldTranscript:
			rec.Transcript, _ = v.(string)
		case FieldSummary:
			rec.Summary, _ = v.(string)
		case FieldDecisions:
			rec.Decisions, _ = v.([]string)
		case FieldActionItems:
			rec.ActionItems, _ = v.([]ActionItem)
		case FieldMetadata:
			if md, ok := v.(Metadata); ok {
				rec.Metadata = md
			}
		case FieldError:
			rec.Error, _ = v.(string)
		}
	}
	return nil
}

// Delete removes the record and returns it.
func (s *MemoryStore) Delete(_ context.Context, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, apperrors.NotFound("meeting", id)
	}
	delete(s.records, id)
	return rec, nil
}
