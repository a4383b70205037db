package domain

// FacetSelection maps a facet kind to the selected term ids. A missing or
// empty entry places no constraint on that facet.
type FacetSelection map[FacetKind][]string

// NewFacetSelection builds a selection from loosely typed input such as query
// parameters. Unknown facet names and blank ids are dropped and duplicate ids
// removed, keeping first-seen order.
func NewFacetSelection(raw map[string][]string) FacetSelection {
	sel := make(FacetSelection)
	for name, ids := range raw {
		kind, ok := ParseFacetKind(name)
		if !ok {
			continue
		}
		sel = sel.With(kind, ids...)
	}
	return sel
}

// With returns a copy of the selection with ids added to a facet.
func (s FacetSelection) With(kind FacetKind, ids ...string) FacetSelection {
	out := s.Clone()
	if !kind.IsValid() {
		return out
	}
	existing := out[kind]
	seen := make(map[string]struct{}, len(existing)+len(ids))
	for _, id := range existing {
		seen[id] = struct{}{}
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		existing = append(existing, id)
	}
	if len(existing) > 0 {
		out[kind] = existing
	}
	return out
}

// Clone returns a deep copy.
func (s FacetSelection) Clone() FacetSelection {
	out := make(FacetSelection, len(s))
	for kind, ids := range s {
		if len(ids) == 0 {
			continue
		}
		cp := make([]string, len(ids))
		copy(cp, ids)
		out[kind] = cp
	}
	return out
}

// IsEmpty reports whether no facet is constrained.
func (s FacetSelection) IsEmpty() bool {
	for kind, ids := range s {
		if kind.IsValid() && len(ids) > 0 {
			return false
		}
	}
	return true
}

// Equal compares two selections as sets per facet.
func (s FacetSelection) Equal(other FacetSelection) bool {
	for _, kind := range FacetKinds {
		if !sameSet(s[kind], other[kind]) {
			return false
		}
	}
	return true
}

func sameSet(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, id := range a {
		as[id] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, id := range b {
		bs[id] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for id := range as {
		if _, ok := bs[id]; !ok {
			return false
		}
	}
	return true
}

// Kinds returns the constrained facet kinds in display order.
func (s FacetSelection) Kinds() []FacetKind {
	var kinds []FacetKind
	for _, kind := range FacetKinds {
		if len(s[kind]) > 0 {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// LibraryFilter is the full predicate applied by a library query.
type LibraryFilter struct {
	// Scope partitions visible items by ownership.
	Scope Scope `json:"scope"`

	// Facets is the per-facet term selection.
	Facets FacetSelection `json:"facets,omitempty"`

	// Combinator combines selected terms within one facet.
	Combinator Combinator `json:"combinator"`
}

// DefaultFilter returns a filter with no constraints.
func DefaultFilter() LibraryFilter {
	return LibraryFilter{Scope: ScopeAll, Combinator: CombinatorAny}
}

// Equal reports whether two filters select the same entities for any
// library. Unknown scope and combinator values compare by their parsed
// meaning.
func (f LibraryFilter) Equal(other LibraryFilter) bool {
	return ParseScope(string(f.Scope)) == ParseScope(string(other.Scope)) &&
		ParseCombinator(string(f.Combinator)) == ParseCombinator(string(other.Combinator)) &&
		f.Facets.Equal(other.Facets)
}

// FilteredLibrary holds every entity that passed a query, per collection, in
// natural order. Its slices are freshly allocated and owned by the caller.
type FilteredLibrary struct {
	Documents []Document
	Derived   map[EntityKind][]DerivedEntity
}

// Total returns the number of matches in a collection.
func (f *FilteredLibrary) Total(kind EntityKind) int {
	if f == nil {
		return 0
	}
	if kind == KindDocument {
		return len(f.Documents)
	}
	return len(f.Derived[kind])
}

// IDs returns the matched ids of a collection in order.
func (f *FilteredLibrary) IDs(kind EntityKind) []string {
	if f == nil {
		return nil
	}
	if kind == KindDocument {
		ids := make([]string, len(f.Documents))
		for i := range f.Documents {
			ids[i] = f.Documents[i].ID
		}
		return ids
	}
	entities := f.Derived[kind]
	ids := make([]string, len(entities))
	for i := range entities {
		ids[i] = entities[i].ID
	}
	return ids
}

// PageWindows holds the number of items requested per collection.
type PageWindows map[EntityKind]int

// DocumentPage is a window into the filtered documents.
type DocumentPage struct {
	Items   []Document `json:"items"`
	Total   int        `json:"total"`
	HasMore bool       `json:"has_more"`
}

// DerivedPage is a window into one filtered derived collection.
type DerivedPage struct {
	Items   []DerivedEntity `json:"items"`
	Total   int             `json:"total"`
	HasMore bool            `json:"has_more"`
}

// LibraryView is the paginated result handed to presentation layers.
type LibraryView struct {
	Documents DocumentPage `json:"documents"`
	Drivers   DerivedPage  `json:"drivers"`
	Trends    DerivedPage  `json:"trends"`
	Signals   DerivedPage  `json:"signals"`
	Evidence  DerivedPage  `json:"evidence"`
}

// Derived returns the page for a derived kind.
func (v *LibraryView) Derived(kind EntityKind) DerivedPage {
	switch kind {
	case KindDriver:
		return v.Drivers
	case KindTrend:
		return v.Trends
	case KindSignal:
		return v.Signals
	case KindEvidence:
		return v.Evidence
	default:
		return DerivedPage{}
	}
}

// Total returns the matched count for a collection.
func (v *LibraryView) Total(kind EntityKind) int {
	if kind == KindDocument {
		return v.Documents.Total
	}
	return v.Derived(kind).Total
}

// Neighbors locates an entity within a filtered collection.
type Neighbors struct {
	// Previous is the id before the entity, empty at the start.
	Previous string `json:"previous,omitempty"`

	// Next is the id after the entity, empty at the end.
	Next string `json:"next,omitempty"`

	// Position is the zero-based index of the entity.
	Position int `json:"position"`

	// Total is the size of the filtered collection.
	Total int `json:"total"`
}
