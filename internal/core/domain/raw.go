package domain

import "time"

// RawTerm is one taxonomy term as supplied by a loader.
type RawTerm struct {
	Facet       string
	ID          string
	DisplayName string
}

// RawDocument is a document row before tags are attached.
// Visibility is kept as the stored string and parsed during assembly.
type RawDocument struct {
	ID         string
	Title      string
	Summary    string
	OwnerID    string
	Visibility string
	SharedWith []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RawDerived is a derived entity row before tags are attached.
type RawDerived struct {
	ID          string
	Kind        string
	Name        string
	Text        string
	DerivedFrom string
	CreatedAt   time.Time
}

// RawTagging is one entity-to-term association.
type RawTagging struct {
	EntityKind string
	EntityID   string
	Facet      string
	TermID     string
}

// RawSnapshot is everything a data-loading collaborator supplies: raw
// entities plus raw tag associations. It is assembled into a Library.
type RawSnapshot struct {
	Terms     []RawTerm
	Documents []RawDocument
	Derived   []RawDerived
	Taggings  []RawTagging
}

// Clone returns a deep copy.
func (s *RawSnapshot) Clone() *RawSnapshot {
	if s == nil {
		return &RawSnapshot{}
	}
	out := &RawSnapshot{
		Terms:     append([]RawTerm(nil), s.Terms...),
		Documents: make([]RawDocument, len(s.Documents)),
		Derived:   append([]RawDerived(nil), s.Derived...),
		Taggings:  append([]RawTagging(nil), s.Taggings...),
	}
	for i, d := range s.Documents {
		d.SharedWith = append([]string(nil), d.SharedWith...)
		out.Documents[i] = d
	}
	return out
}

// IsEmpty reports whether the snapshot carries no records.
func (s *RawSnapshot) IsEmpty() bool {
	return s == nil || len(s.Terms)+len(s.Documents)+len(s.Derived)+len(s.Taggings) == 0
}
