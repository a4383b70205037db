package domain

// FacetKind identifies one taxonomy dimension usable as a filter axis.
type FacetKind string

// Available facet kinds.
const (
	FacetTopic    FacetKind = "topic"
	FacetCategory FacetKind = "category"
	FacetSteep    FacetKind = "steep"
	FacetRegion   FacetKind = "region"
	FacetIndustry FacetKind = "industry"
)

// FacetKinds lists every facet kind in display order.
var FacetKinds = []FacetKind{FacetTopic, FacetCategory, FacetSteep, FacetRegion, FacetIndustry}

// IsValid returns true if the facet kind is recognised.
func (k FacetKind) IsValid() bool {
	switch k {
	case FacetTopic, FacetCategory, FacetSteep, FacetRegion, FacetIndustry:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k FacetKind) String() string {
	return string(k)
}

// Description returns a human-readable label for the facet.
func (k FacetKind) Description() string {
	switch k {
	case FacetTopic:
		return "Topics"
	case FacetCategory:
		return "Categories"
	case FacetSteep:
		return "STEEP"
	case FacetRegion:
		return "Regions"
	case FacetIndustry:
		return "Industries"
	default:
		return unknownDescription
	}
}

// ParseFacetKind maps a facet name to its kind. Plural forms are accepted
// ("topics", "regions"). The boolean is false for unknown names.
func ParseFacetKind(s string) (FacetKind, bool) {
	switch normaliseToken(s) {
	case "topic", "topics":
		return FacetTopic, true
	case "category", "categories":
		return FacetCategory, true
	case "steep", "steep_category", "steep_categories":
		return FacetSteep, true
	case "region", "regions", "geography":
		return FacetRegion, true
	case "industry", "industries":
		return FacetIndustry, true
	default:
		return "", false
	}
}

// TaxonomyTerm is one facet value. Identity is the ID.
type TaxonomyTerm struct {
	// ID is the stable term identifier used for matching.
	ID string `json:"id"`

	// DisplayName is the human-readable label.
	DisplayName string `json:"display_name"`
}

// Label returns the display name, falling back to the ID.
func (t TaxonomyTerm) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.ID
}

// DefaultSteepTerms returns the five STEEP dimensions.
func DefaultSteepTerms() []TaxonomyTerm {
	return []TaxonomyTerm{
		{ID: "social", DisplayName: "Social"},
		{ID: "technological", DisplayName: "Technological"},
		{ID: "economic", DisplayName: "Economic"},
		{ID: "environmental", DisplayName: "Environmental"},
		{ID: "political", DisplayName: "Political"},
	}
}

// Catalog holds the selectable options for every facet. It is read-only once
// built and is not consulted when matching: facets match by term id alone.
type Catalog struct {
	options map[FacetKind][]TaxonomyTerm
	byID    map[FacetKind]map[string]TaxonomyTerm
}

// NewCatalog builds a catalog from per-facet term lists. Unknown facet kinds
// and duplicate ids are dropped; the first occurrence of an id wins.
func NewCatalog(terms map[FacetKind][]TaxonomyTerm) *Catalog {
	c := &Catalog{
		options: make(map[FacetKind][]TaxonomyTerm, len(FacetKinds)),
		byID:    make(map[FacetKind]map[string]TaxonomyTerm, len(FacetKinds)),
	}
	for _, kind := range FacetKinds {
		seen := make(map[string]TaxonomyTerm)
		var list []TaxonomyTerm
		for _, term := range terms[kind] {
			if term.ID == "" {
				continue
			}
			if _, dup := seen[term.ID]; dup {
				continue
			}
			seen[term.ID] = term
			list = append(list, term)
		}
		c.options[kind] = list
		c.byID[kind] = seen
	}
	return c
}

// Options returns a copy of the option list for a facet.
func (c *Catalog) Options(kind FacetKind) []TaxonomyTerm {
	if c == nil {
		return nil
	}
	list := c.options[kind]
	out := make([]TaxonomyTerm, len(list))
	copy(out, list)
	return out
}

// Lookup returns the catalog term for an id.
func (c *Catalog) Lookup(kind FacetKind, id string) (TaxonomyTerm, bool) {
	if c == nil {
		return TaxonomyTerm{}, false
	}
	term, ok := c.byID[kind][id]
	return term, ok
}

// Len returns the number of options for a facet.
func (c *Catalog) Len(kind FacetKind) int {
	if c == nil {
		return 0
	}
	return len(c.options[kind])
}
