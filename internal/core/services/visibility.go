package services

import "github.com/custodia-labs/horizon/internal/core/domain"

// CanViewDocument reports whether viewer may observe doc.
//
// Ownership wins over every visibility level. Anything ambiguous (anonymous
// viewer, unrecognised visibility, nil document) is not visible. A viewer
// that carries an id but is not authenticated is treated as anonymous, so it
// matches neither ownership nor a share list.
func CanViewDocument(viewer domain.Viewer, doc *domain.Document) bool {
	if doc == nil {
		return false
	}
	identified := viewer.IsIdentified()
	if identified && doc.OwnerID == viewer.ID {
		return true
	}

	switch doc.Visibility {
	case domain.VisibilityPublic:
		return true
	case domain.VisibilityMembers:
		return identified
	case domain.VisibilitySelectedUsers:
		return identified && doc.IsSharedWith(viewer.ID)
	default:
		// PRIVATE and unknown values are owner-only.
		return false
	}
}

// CanViewDerived reports whether viewer may observe a derived entity. The
// entity inherits its source document's verdict; dangling lineage is never
// visible.
func CanViewDerived(viewer domain.Viewer, entity *domain.DerivedEntity, lib *domain.Library) bool {
	if entity == nil || lib == nil {
		return false
	}
	doc, ok := lib.Document(entity.DerivedFrom)
	if !ok {
		return false
	}
	return CanViewDocument(viewer, doc)
}

// MatchesScope reports whether doc falls in the viewer's scope partition.
// It is evaluated only after CanViewDocument has passed.
func MatchesScope(viewer domain.Viewer, doc *domain.Document, scope domain.Scope) bool {
	if doc == nil {
		return false
	}
	switch domain.ParseScope(string(scope)) {
	case domain.ScopeMine:
		return viewer.IsIdentified() && doc.OwnerID == viewer.ID
	case domain.ScopeSharedWithMe:
		// Share lists only count on SELECTED_USERS documents.
		return viewer.IsIdentified() &&
			doc.Visibility == domain.VisibilitySelectedUsers &&
			doc.OwnerID != viewer.ID &&
			doc.IsSharedWith(viewer.ID)
	default:
		return true
	}
}
