package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
)

// Ensure LibraryStore implements the interface.
var _ driven.LibraryStore = (*LibraryStore)(nil)

// LibraryStore is an in-memory implementation of driven.LibraryStore.
// Deleting a document leaves its derived entities in place; they fail the
// lineage check instead.
type LibraryStore struct {
	mu       sync.RWMutex
	snapshot *domain.RawSnapshot
}

// NewLibraryStore creates a new in-memory library store.
func NewLibraryStore() *LibraryStore {
	return &LibraryStore{snapshot: &domain.RawSnapshot{}}
}

// LoadSnapshot returns a copy of every stored record.
func (s *LibraryStore) LoadSnapshot(_ context.Context) (*domain.RawSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone(), nil
}

// ReplaceSnapshot replaces all stored records with a copy of snapshot.
func (s *LibraryStore) ReplaceSnapshot(_ context.Context, snapshot *domain.RawSnapshot) error {
	if snapshot == nil {
		return domain.ErrInvalidSnapshot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot.Clone()
	return nil
}

// DeleteDocument removes a document and its tag associations.
func (s *LibraryStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.snapshot.Documents[:0:0]
	found := false
	for _, d := range s.snapshot.Documents {
		if d.ID == id {
			found = true
			continue
		}
		docs = append(docs, d)
	}
	if !found {
		return domain.ErrNotFound
	}

	taggings := s.snapshot.Taggings[:0:0]
	for _, tg := range s.snapshot.Taggings {
		if kind, ok := domain.ParseEntityKind(tg.EntityKind); ok && kind == domain.KindDocument && tg.EntityID == id {
			continue
		}
		taggings = append(taggings, tg)
	}

	s.snapshot.Documents = docs
	s.snapshot.Taggings = taggings
	return nil
}
