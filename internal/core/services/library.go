package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
	"github.com/custodia-labs/horizon/internal/core/ports/driving"
	"github.com/custodia-labs/horizon/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService answers library queries against the current store contents.
// It reloads and reassembles on every call, so tag and visibility edits are
// always reflected.
type LibraryService struct {
	store    driven.LibraryStore
	settings domain.LibrarySettings
}

// NewLibraryService creates a new library service. Zero-valued settings fall
// back to defaults.
func NewLibraryService(store driven.LibraryStore, settings domain.LibrarySettings) *LibraryService {
	defaults := domain.DefaultAppSettings().Library
	if settings.PageSize <= 0 {
		settings.PageSize = defaults.PageSize
	}
	if !settings.DefaultScope.IsValid() {
		settings.DefaultScope = defaults.DefaultScope
	}
	if !settings.DefaultCombinator.IsValid() {
		settings.DefaultCombinator = defaults.DefaultCombinator
	}
	return &LibraryService{store: store, settings: settings}
}

// PageSize returns the initial window per collection.
func (s *LibraryService) PageSize() int {
	return s.settings.PageSize
}

// Library loads and assembles the current library.
func (s *LibraryService) Library(ctx context.Context) (*domain.Library, error) {
	raw, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	lib := AssembleLibrary(raw)
	logger.Debug("Assembled library: %d documents, %d drivers, %d trends, %d signals, %d evidence",
		lib.Count(domain.KindDocument), lib.Count(domain.KindDriver), lib.Count(domain.KindTrend),
		lib.Count(domain.KindSignal), lib.Count(domain.KindEvidence))
	return lib, nil
}

// Filter returns every entity passing the filter, unwindowed.
func (s *LibraryService) Filter(
	ctx context.Context, viewer domain.Viewer, filter domain.LibraryFilter,
) (*domain.FilteredLibrary, error) {
	logger.Section("Library Query")
	lib, err := s.Library(ctx)
	if err != nil {
		return nil, err
	}
	filter = s.withDefaults(filter)
	logger.Debug("Viewer: %q (authenticated=%t), scope=%s, combinator=%s, facets=%v",
		viewer.ID, viewer.Authenticated, filter.Scope, filter.Combinator, filter.Facets.Kinds())

	filtered := FilterLibrary(lib, viewer, filter)
	for _, kind := range domain.EntityKinds {
		logger.Debug("  %s: %d of %d", kind.Plural(), filtered.Total(kind), lib.Count(kind))
	}
	return filtered, nil
}

// Query returns the windowed view of every collection.
func (s *LibraryService) Query(
	ctx context.Context, viewer domain.Viewer, filter domain.LibraryFilter, windows domain.PageWindows,
) (*domain.LibraryView, error) {
	filtered, err := s.Filter(ctx, viewer, filter)
	if err != nil {
		return nil, err
	}
	return WindowLibrary(filtered, windows, s.settings.PageSize), nil
}

// CanView reports whether viewer may open a single entity. A missing entity
// is not visible.
func (s *LibraryService) CanView(
	ctx context.Context, viewer domain.Viewer, kind domain.EntityKind, id string,
) (bool, error) {
	if !kind.IsValid() {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownEntityKind, kind)
	}
	lib, err := s.Library(ctx)
	if err != nil {
		return false, err
	}
	if kind == domain.KindDocument {
		doc, ok := lib.Document(id)
		return ok && CanViewDocument(viewer, doc), nil
	}
	entity, ok := lib.DerivedEntity(kind, id)
	return ok && CanViewDerived(viewer, entity, lib), nil
}

// Neighbors locates an entity within the current filtered view.
func (s *LibraryService) Neighbors(
	ctx context.Context, viewer domain.Viewer, filter domain.LibraryFilter, kind domain.EntityKind, id string,
) (domain.Neighbors, error) {
	if !kind.IsValid() {
		return domain.Neighbors{}, fmt.Errorf("%w: %q", domain.ErrUnknownEntityKind, kind)
	}
	filtered, err := s.Filter(ctx, viewer, filter)
	if err != nil {
		return domain.Neighbors{}, err
	}
	n, ok := LocateNeighbors(filtered, kind, id)
	if !ok {
		return domain.Neighbors{}, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return n, nil
}

// Import replaces the stored library with a snapshot.
func (s *LibraryService) Import(ctx context.Context, snapshot *domain.RawSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("import: %w", domain.ErrInvalidSnapshot)
	}
	logger.Section("Library Import")
	logger.Debug("Importing %d terms, %d documents, %d derived, %d taggings",
		len(snapshot.Terms), len(snapshot.Documents), len(snapshot.Derived), len(snapshot.Taggings))
	if snapshot.IsEmpty() {
		logger.Warn("Importing an empty snapshot clears the library")
	}
	if err := s.store.ReplaceSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// DeleteDocument removes a document. Its derived entities fail the lineage
// check from then on.
func (s *LibraryService) DeleteDocument(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("delete document: %w", domain.ErrInvalidInput)
	}
	if err := s.store.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	logger.Info("Deleted document %s", id)
	return nil
}

// withDefaults fills an unset scope or combinator from settings. Set but
// unrecognised values are left alone and parse as no constraint.
func (s *LibraryService) withDefaults(filter domain.LibraryFilter) domain.LibraryFilter {
	if filter.Scope == "" {
		filter.Scope = s.settings.DefaultScope
	}
	if filter.Combinator == "" {
		filter.Combinator = s.settings.DefaultCombinator
	}
	return filter
}
