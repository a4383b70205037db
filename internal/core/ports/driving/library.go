package driving

import (
	"context"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// LibraryService exposes visibility-scoped, faceted access to the library.
// Every call evaluates against the current stored state.
type LibraryService interface {
	// Query returns the five filtered collections, windowed per collection.
	// A nil or missing window uses the configured page size.
	Query(
		ctx context.Context, viewer domain.Viewer, filter domain.LibraryFilter, windows domain.PageWindows,
	) (*domain.LibraryView, error)

	// Filter returns every entity that passes the filter, unwindowed.
	Filter(ctx context.Context, viewer domain.Viewer, filter domain.LibraryFilter) (*domain.FilteredLibrary, error)

	// CanView reports whether the viewer may open a single entity.
	// A missing entity is not visible and is not an error.
	CanView(ctx context.Context, viewer domain.Viewer, kind domain.EntityKind, id string) (bool, error)

	// Neighbors locates an entity within the current filtered view.
	// Returns domain.ErrNotFound when the entity is not in the view.
	Neighbors(
		ctx context.Context, viewer domain.Viewer, filter domain.LibraryFilter, kind domain.EntityKind, id string,
	) (domain.Neighbors, error)

	// Import replaces the stored library with a snapshot.
	Import(ctx context.Context, snapshot *domain.RawSnapshot) error

	// DeleteDocument removes a document. Entities derived from it become
	// invisible to everyone.
	DeleteDocument(ctx context.Context, id string) error
}
