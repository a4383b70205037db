package domain

// Library is the assembled, denormalised set of entities a query runs over.
// Collections are held in their natural order (most recent first). A Library
// is never mutated after construction, so it is safe for concurrent readers.
type Library struct {
	catalog   *Catalog
	documents []Document
	derived   map[EntityKind][]DerivedEntity
	docIndex  map[string]int
}

// NewLibrary builds a Library. Derived entities are partitioned by kind in
// the order given; entities with an unknown or document kind are dropped.
func NewLibrary(catalog *Catalog, documents []Document, derived []DerivedEntity) *Library {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	l := &Library{
		catalog:   catalog,
		documents: documents,
		derived:   make(map[EntityKind][]DerivedEntity, len(DerivedKinds)),
		docIndex:  make(map[string]int, len(documents)),
	}
	for i := range documents {
		if _, dup := l.docIndex[documents[i].ID]; !dup {
			l.docIndex[documents[i].ID] = i
		}
	}
	for i := range derived {
		if !derived[i].Kind.IsDerived() {
			continue
		}
		l.derived[derived[i].Kind] = append(l.derived[derived[i].Kind], derived[i])
	}
	return l
}

// Catalog returns the facet vocabularies.
func (l *Library) Catalog() *Catalog {
	return l.catalog
}

// Documents returns the documents in natural order. Callers must not modify
// the returned slice.
func (l *Library) Documents() []Document {
	return l.documents
}

// Derived returns the entities of one derived kind in natural order.
// Callers must not modify the returned slice.
func (l *Library) Derived(kind EntityKind) []DerivedEntity {
	return l.derived[kind]
}

// Document looks up a document by id.
func (l *Library) Document(id string) (*Document, bool) {
	i, ok := l.docIndex[id]
	if !ok {
		return nil, false
	}
	doc := l.documents[i]
	return &doc, true
}

// DerivedEntity looks up a derived entity by kind and id.
func (l *Library) DerivedEntity(kind EntityKind, id string) (*DerivedEntity, bool) {
	for _, e := range l.derived[kind] {
		if e.ID == id {
			entity := e
			return &entity, true
		}
	}
	return nil, false
}

// Count returns the size of a collection.
func (l *Library) Count(kind EntityKind) int {
	if kind == KindDocument {
		return len(l.documents)
	}
	return len(l.derived[kind])
}
