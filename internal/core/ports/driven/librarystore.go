package driven

import (
	"context"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// LibraryStore persists raw library records: terms, documents, derived
// entities and tag associations. Assembly into a domain.Library happens in
// the core, never in the store.
type LibraryStore interface {
	// LoadSnapshot returns every stored record.
	LoadSnapshot(ctx context.Context) (*domain.RawSnapshot, error)

	// ReplaceSnapshot atomically replaces all stored records.
	ReplaceSnapshot(ctx context.Context, snapshot *domain.RawSnapshot) error

	// DeleteDocument removes a document, its shares and its tag
	// associations. Returns domain.ErrNotFound if it does not exist.
	DeleteDocument(ctx context.Context, id string) error
}
