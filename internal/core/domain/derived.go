package domain

import "time"

// EntityKind identifies one of the five library collections.
type EntityKind string

// Available entity kinds.
const (
	KindDocument EntityKind = "document"
	KindDriver   EntityKind = "driver"
	KindTrend    EntityKind = "trend"
	KindSignal   EntityKind = "signal"
	KindEvidence EntityKind = "evidence"
)

// EntityKinds lists every collection in display order.
var EntityKinds = []EntityKind{KindDocument, KindDriver, KindTrend, KindSignal, KindEvidence}

// DerivedKinds lists the collections whose visibility is inherited.
var DerivedKinds = []EntityKind{KindDriver, KindTrend, KindSignal, KindEvidence}

// IsValid returns true if the kind is one of the five collections.
func (k EntityKind) IsValid() bool {
	switch k {
	case KindDocument, KindDriver, KindTrend, KindSignal, KindEvidence:
		return true
	default:
		return false
	}
}

// IsDerived returns true for drivers, trends, signals and evidence.
func (k EntityKind) IsDerived() bool {
	return k.IsValid() && k != KindDocument
}

// String returns the string representation.
func (k EntityKind) String() string {
	return string(k)
}

// Plural returns the collection name.
func (k EntityKind) Plural() string {
	switch k {
	case KindDocument:
		return "documents"
	case KindDriver:
		return "drivers"
	case KindTrend:
		return "trends"
	case KindSignal:
		return "signals"
	case KindEvidence:
		return "evidence"
	default:
		return unknownDescription
	}
}

// ParseEntityKind maps a kind or collection name to its EntityKind.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch normaliseToken(s) {
	case "document", "documents", "report", "reports":
		return KindDocument, true
	case "driver", "drivers":
		return KindDriver, true
	case "trend", "trends":
		return KindTrend, true
	case "signal", "signals":
		return KindSignal, true
	case "evidence", "evidences":
		return KindEvidence, true
	default:
		return "", false
	}
}

// Tags carries all five facets of a derived entity.
type Tags struct {
	Topics     []TaxonomyTerm `json:"topics,omitempty"`
	Categories []TaxonomyTerm `json:"categories,omitempty"`
	Steep      []TaxonomyTerm `json:"steep,omitempty"`
	Regions    []TaxonomyTerm `json:"regions,omitempty"`
	Industries []TaxonomyTerm `json:"industries,omitempty"`
}

// DerivedEntity is a driver, trend, signal or evidence item extracted from a
// Document. It has no visibility of its own: it is visible exactly when the
// document it was derived from is visible.
type DerivedEntity struct {
	// ID is the unique identifier within its kind.
	ID string `json:"id"`

	// Kind is the collection the entity belongs to.
	Kind EntityKind `json:"kind"`

	// Name is the short label.
	Name string `json:"name"`

	// Text is the longer description or quoted evidence.
	Text string `json:"text,omitempty"`

	// DerivedFrom is the ID of the source Document.
	DerivedFrom string `json:"derived_from"`

	// Tags are the entity's facet terms.
	Tags Tags `json:"tags"`

	// CreatedAt is when the entity was extracted.
	CreatedAt time.Time `json:"created_at"`
}

// Terms implements Taggable.
func (e DerivedEntity) Terms(kind FacetKind) []TaxonomyTerm {
	switch kind {
	case FacetTopic:
		return e.Tags.Topics
	case FacetCategory:
		return e.Tags.Categories
	case FacetSteep:
		return e.Tags.Steep
	case FacetRegion:
		return e.Tags.Regions
	case FacetIndustry:
		return e.Tags.Industries
	default:
		return nil
	}
}
