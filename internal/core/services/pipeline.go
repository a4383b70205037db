package services

import "github.com/custodia-labs/horizon/internal/core/domain"

// FilterLibrary runs the query pipeline over every collection: visibility,
// then scope, then facets. Natural order is preserved and the library is not
// modified; the returned slices are freshly allocated.
//
// Unknown scope and combinator values place no constraint. Selection entries
// under an unknown facet kind are ignored.
func FilterLibrary(lib *domain.Library, viewer domain.Viewer, filter domain.LibraryFilter) *domain.FilteredLibrary {
	out := &domain.FilteredLibrary{
		Documents: []domain.Document{},
		Derived:   make(map[domain.EntityKind][]domain.DerivedEntity, len(domain.DerivedKinds)),
	}
	for _, kind := range domain.DerivedKinds {
		out.Derived[kind] = []domain.DerivedEntity{}
	}
	if lib == nil {
		return out
	}

	scope := domain.ParseScope(string(filter.Scope))
	combinator := domain.ParseCombinator(string(filter.Combinator))

	docs := lib.Documents()
	for i := range docs {
		doc := &docs[i]
		if !CanViewDocument(viewer, doc) || !MatchesScope(viewer, doc, scope) {
			continue
		}
		if !MatchesFacets(*doc, filter.Facets, combinator) {
			continue
		}
		out.Documents = append(out.Documents, *doc)
	}

	for _, kind := range domain.DerivedKinds {
		entities := lib.Derived(kind)
		matched := out.Derived[kind]
		for i := range entities {
			entity := &entities[i]
			doc, ok := lib.Document(entity.DerivedFrom)
			if !ok {
				continue
			}
			if !CanViewDocument(viewer, doc) || !MatchesScope(viewer, doc, scope) {
				continue
			}
			if !MatchesFacets(*entity, filter.Facets, combinator) {
				continue
			}
			matched = append(matched, *entity)
		}
		out.Derived[kind] = matched
	}
	return out
}

// WindowLibrary cuts each filtered collection to its requested window. A
// missing or non-positive window uses pageSize; a non-positive pageSize uses
// domain.DefaultPageSize.
func WindowLibrary(filtered *domain.FilteredLibrary, windows domain.PageWindows, pageSize int) *domain.LibraryView {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if filtered == nil {
		filtered = &domain.FilteredLibrary{}
	}
	size := func(kind domain.EntityKind) int {
		if n := windows[kind]; n > 0 {
			return n
		}
		return pageSize
	}

	docs, total, more := applyWindow(filtered.Documents, size(domain.KindDocument))
	view := &domain.LibraryView{
		Documents: domain.DocumentPage{Items: docs, Total: total, HasMore: more},
	}
	pages := map[domain.EntityKind]*domain.DerivedPage{
		domain.KindDriver:   &view.Drivers,
		domain.KindTrend:    &view.Trends,
		domain.KindSignal:   &view.Signals,
		domain.KindEvidence: &view.Evidence,
	}
	for kind, page := range pages {
		items, total, more := applyWindow(filtered.Derived[kind], size(kind))
		*page = domain.DerivedPage{Items: items, Total: total, HasMore: more}
	}
	return view
}

// applyWindow copies the first n items.
func applyWindow[T any](items []T, n int) ([]T, int, bool) {
	total := len(items)
	if n > total {
		n = total
	}
	out := make([]T, n)
	copy(out, items[:n])
	return out, total, n < total
}

// LocateNeighbors finds an entity in a filtered collection and reports the
// ids around it. The boolean is false when the entity is not in the view.
func LocateNeighbors(filtered *domain.FilteredLibrary, kind domain.EntityKind, id string) (domain.Neighbors, bool) {
	ids := filtered.IDs(kind)
	for i, candidate := range ids {
		if candidate != id {
			continue
		}
		n := domain.Neighbors{Position: i, Total: len(ids)}
		if i > 0 {
			n.Previous = ids[i-1]
		}
		if i+1 < len(ids) {
			n.Next = ids[i+1]
		}
		return n, true
	}
	return domain.Neighbors{}, false
}
