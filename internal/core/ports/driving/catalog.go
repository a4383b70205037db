package driving

import (
	"context"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// CatalogService exposes the facet vocabularies used to build selections.
type CatalogService interface {
	// Catalog returns the current facet option lists.
	Catalog(ctx context.Context) (*domain.Catalog, error)

	// Resolve maps a term id or display name to a term id for a facet.
	// Values that match nothing are returned unchanged so that stale ids
	// still participate in matching.
	Resolve(ctx context.Context, kind domain.FacetKind, value string) (string, error)

	// ResolveSelection resolves every value of a selection.
	ResolveSelection(ctx context.Context, selection domain.FacetSelection) (domain.FacetSelection, error)
}
