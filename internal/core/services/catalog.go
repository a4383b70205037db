package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
	"github.com/custodia-labs/horizon/internal/core/ports/driving"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService serves facet vocabularies and maps user input onto term ids.
type CatalogService struct {
	store driven.LibraryStore
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.LibraryStore) *CatalogService {
	return &CatalogService{store: store}
}

// Catalog returns the current facet option lists.
func (s *CatalogService) Catalog(ctx context.Context) (*domain.Catalog, error) {
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return v.catalog, nil
}

// Resolve maps an id or display name to a term id. Exact catalog ids and ids
// that entities are tagged with win, then case-insensitive ids, then
// case-insensitive display names. Anything else is returned trimmed but
// otherwise unchanged.
func (s *CatalogService) Resolve(ctx context.Context, kind domain.FacetKind, value string) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFacet, kind)
	}
	v, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return v.resolve(kind, value), nil
}

// ResolveSelection resolves every value of a selection against one catalog
// load.
func (s *CatalogService) ResolveSelection(
	ctx context.Context, selection domain.FacetSelection,
) (domain.FacetSelection, error) {
	if selection.IsEmpty() {
		return selection.Clone(), nil
	}
	v, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(domain.FacetSelection)
	for _, kind := range selection.Kinds() {
		ids := make([]string, 0, len(selection[kind]))
		for _, value := range selection[kind] {
			ids = append(ids, v.resolve(kind, value))
		}
		out = out.With(kind, ids...)
	}
	return out, nil
}

// vocabulary is the catalog plus every term id actually used in a tagging,
// stale ones included.
type vocabulary struct {
	catalog *domain.Catalog
	tagged  map[domain.FacetKind]map[string]struct{}
}

func (s *CatalogService) load(ctx context.Context) (*vocabulary, error) {
	raw, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	v := &vocabulary{tagged: make(map[domain.FacetKind]map[string]struct{})}
	if raw == nil {
		v.catalog = buildCatalog(nil)
		return v, nil
	}
	v.catalog = buildCatalog(raw.Terms)
	for _, tg := range raw.Taggings {
		kind, ok := domain.ParseFacetKind(tg.Facet)
		if !ok {
			continue
		}
		if v.tagged[kind] == nil {
			v.tagged[kind] = make(map[string]struct{})
		}
		v.tagged[kind][tg.TermID] = struct{}{}
	}
	return v, nil
}

// resolve keeps exact ids as they are so that a stale id still matches the
// entities carrying it. Only values that are no known id are folded.
func (v *vocabulary) resolve(kind domain.FacetKind, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if _, ok := v.catalog.Lookup(kind, value); ok {
		return value
	}
	if _, ok := v.tagged[kind][value]; ok {
		return value
	}
	want := foldName(value)
	options := v.catalog.Options(kind)
	for _, term := range options {
		if foldName(term.ID) == want {
			return term.ID
		}
	}
	for _, term := range options {
		if term.DisplayName != "" && foldName(term.DisplayName) == want {
			return term.ID
		}
	}
	return value
}

// foldName normalises to NFC and case-folds so that "Économie" typed in
// decomposed form matches a composed display name.
func foldName(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}
