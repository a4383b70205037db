package domain

import "time"

// Taggable is the tagging shape shared by every library entity. Entity kinds
// that do not define a facet return nil for it.
type Taggable interface {
	// Terms returns the entity's terms for a facet in display order.
	Terms(kind FacetKind) []TaxonomyTerm
}

// DocumentTags are the facets a Document carries. Documents have no STEEP or
// industry tags.
type DocumentTags struct {
	Topics     []TaxonomyTerm `json:"topics,omitempty"`
	Categories []TaxonomyTerm `json:"categories,omitempty"`
	Regions    []TaxonomyTerm `json:"regions,omitempty"`
}

// Document is a top-level research artifact such as a report.
// It is the only entity that carries its own visibility rule.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// Summary is an optional abstract shown in listings.
	Summary string `json:"summary,omitempty"`

	// OwnerID is the user who owns the document.
	OwnerID string `json:"owner_id"`

	// Visibility is the sharing rule.
	Visibility Visibility `json:"visibility"`

	// SharedWith lists users the document is shared with. It is only
	// meaningful when Visibility is VisibilitySelectedUsers.
	SharedWith []string `json:"shared_with,omitempty"`

	// Tags are the document's facet terms.
	Tags DocumentTags `json:"tags"`

	// CreatedAt is when the document was added to the library.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the document was last edited.
	UpdatedAt time.Time `json:"updated_at"`
}

// Terms implements Taggable.
func (d Document) Terms(kind FacetKind) []TaxonomyTerm {
	switch kind {
	case FacetTopic:
		return d.Tags.Topics
	case FacetCategory:
		return d.Tags.Categories
	case FacetRegion:
		return d.Tags.Regions
	default:
		return nil
	}
}

// IsSharedWith reports whether userID is on the share list.
func (d Document) IsSharedWith(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range d.SharedWith {
		if id == userID {
			return true
		}
	}
	return false
}
