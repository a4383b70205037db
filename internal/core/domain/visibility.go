package domain

import "strings"

// Visibility is the sharing rule carried by a Document.
type Visibility string

// Available visibility levels.
const (
	// VisibilityPrivate restricts a document to its owner.
	VisibilityPrivate Visibility = "PRIVATE"

	// VisibilitySelectedUsers shares a document with an explicit user list.
	VisibilitySelectedUsers Visibility = "SELECTED_USERS"

	// VisibilityMembers shares a document with every authenticated user.
	VisibilityMembers Visibility = "MEMBERS"

	// VisibilityPublic shares a document with anyone.
	VisibilityPublic Visibility = "PUBLIC"

	// VisibilityUnknown marks an unrecognised stored value. Only the owner
	// can see such a document.
	VisibilityUnknown Visibility = "UNKNOWN"
)

// IsValid returns true if the visibility level is recognised.
func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilitySelectedUsers, VisibilityMembers, VisibilityPublic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (v Visibility) String() string {
	return string(v)
}

// ParseVisibility normalises a stored visibility value. Case, surrounding
// space and '-'/' ' separators are ignored. Unrecognised values map to
// VisibilityUnknown.
func ParseVisibility(s string) Visibility {
	v := Visibility(strings.ToUpper(normaliseToken(s)))
	if v.IsValid() {
		return v
	}
	return VisibilityUnknown
}

// Viewer is the principal a query runs on behalf of.
type Viewer struct {
	// ID is the user identifier. Empty means anonymous.
	ID string `json:"id"`

	// Authenticated is true when the ID was established by a login.
	Authenticated bool `json:"authenticated"`
}

// Anonymous returns an unauthenticated viewer.
func Anonymous() Viewer {
	return Viewer{}
}

// Member returns an authenticated viewer with the given id.
func Member(id string) Viewer {
	return Viewer{ID: id, Authenticated: id != ""}
}

// IsIdentified reports whether the viewer has a trusted identity. Ownership,
// sharing and member visibility all require one.
func (v Viewer) IsIdentified() bool {
	return v.Authenticated && v.ID != ""
}

// Scope is a coarse partition applied after visibility.
type Scope string

// Available scopes.
const (
	ScopeAll          Scope = "all"
	ScopeMine         Scope = "mine"
	ScopeSharedWithMe Scope = "shared_with_me"
)

// IsValid returns true if the scope is recognised.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeAll, ScopeMine, ScopeSharedWithMe:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Scope) String() string {
	return string(s)
}

// ParseScope maps a scope name to a Scope. Unknown values mean no
// constraint and map to ScopeAll.
func ParseScope(s string) Scope {
	switch normaliseToken(s) {
	case "mine", "my", "owned":
		return ScopeMine
	case "shared_with_me", "shared", "sharedwithme":
		return ScopeSharedWithMe
	default:
		return ScopeAll
	}
}

// Combinator decides how multiple selected values within one facet combine.
// Facet kinds are always combined with AND regardless of the combinator.
type Combinator string

// Available combinators.
const (
	// CombinatorAny passes a facet when the entity carries at least one
	// selected term.
	CombinatorAny Combinator = "any"

	// CombinatorAll passes a facet when the entity carries every selected
	// term.
	CombinatorAll Combinator = "all"
)

// IsValid returns true if the combinator is recognised.
func (c Combinator) IsValid() bool {
	return c == CombinatorAny || c == CombinatorAll
}

// String returns the string representation.
func (c Combinator) String() string {
	return string(c)
}

// ParseCombinator maps a combinator name to a Combinator. Unknown values map
// to CombinatorAny, the least restrictive reading of a selection.
func ParseCombinator(s string) Combinator {
	switch normaliseToken(s) {
	case "all", "and", "every":
		return CombinatorAll
	default:
		return CombinatorAny
	}
}

// normaliseToken lower-cases a token and folds '-' and ' ' to '_'.
func normaliseToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
