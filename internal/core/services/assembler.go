package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

// AssembleLibrary turns raw records into a denormalised Library.
//
// Tags are attached as ordered lists with duplicates removed (first
// occurrence wins). Associations naming an unknown facet, an unknown entity,
// or a facet the entity kind does not carry are dropped. Term ids missing
// from the catalog are kept with the id as display name. Visibility is parsed
// fail-closed. Every collection is ordered most-recent-first, stable on ties.
//
// The raw snapshot is not modified.
func AssembleLibrary(raw *domain.RawSnapshot) *domain.Library {
	if raw == nil {
		raw = &domain.RawSnapshot{}
	}
	catalog := buildCatalog(raw.Terms)

	docs := make([]domain.Document, 0, len(raw.Documents))
	docIndex := make(map[string]int, len(raw.Documents))
	for _, rd := range raw.Documents {
		id := strings.TrimSpace(rd.ID)
		if id == "" {
			continue
		}
		if _, dup := docIndex[id]; dup {
			continue
		}
		docIndex[id] = len(docs)
		docs = append(docs, domain.Document{
			ID:         id,
			Title:      rd.Title,
			Summary:    rd.Summary,
			OwnerID:    strings.TrimSpace(rd.OwnerID),
			Visibility: domain.ParseVisibility(rd.Visibility),
			SharedWith: uniqueStrings(rd.SharedWith),
			CreatedAt:  rd.CreatedAt,
			UpdatedAt:  rd.UpdatedAt,
		})
	}

	derived := make([]domain.DerivedEntity, 0, len(raw.Derived))
	derivedIndex := make(map[entityKey]int, len(raw.Derived))
	for _, re := range raw.Derived {
		kind, ok := domain.ParseEntityKind(re.Kind)
		if !ok || !kind.IsDerived() {
			continue
		}
		id := strings.TrimSpace(re.ID)
		if id == "" {
			continue
		}
		key := entityKey{kind: kind, id: id}
		if _, dup := derivedIndex[key]; dup {
			continue
		}
		derivedIndex[key] = len(derived)
		derived = append(derived, domain.DerivedEntity{
			ID:          id,
			Kind:        kind,
			Name:        re.Name,
			Text:        re.Text,
			DerivedFrom: strings.TrimSpace(re.DerivedFrom),
			CreatedAt:   re.CreatedAt,
		})
	}

	for _, tg := range raw.Taggings {
		facet, ok := domain.ParseFacetKind(tg.Facet)
		if !ok {
			continue
		}
		kind, ok := domain.ParseEntityKind(tg.EntityKind)
		if !ok {
			continue
		}
		termID := strings.TrimSpace(tg.TermID)
		if termID == "" {
			continue
		}
		term, ok := catalog.Lookup(facet, termID)
		if !ok {
			term = domain.TaxonomyTerm{ID: termID, DisplayName: termID}
		}

		entityID := strings.TrimSpace(tg.EntityID)
		if kind == domain.KindDocument {
			if i, found := docIndex[entityID]; found {
				attachDocumentTag(&docs[i].Tags, facet, term)
			}
			continue
		}
		if i, found := derivedIndex[entityKey{kind: kind, id: entityID}]; found {
			attachDerivedTag(&derived[i].Tags, facet, term)
		}
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	sort.SliceStable(derived, func(i, j int) bool {
		return derived[i].CreatedAt.After(derived[j].CreatedAt)
	})

	return domain.NewLibrary(catalog, docs, derived)
}

type entityKey struct {
	kind domain.EntityKind
	id   string
}

func buildCatalog(raw []domain.RawTerm) *domain.Catalog {
	terms := make(map[domain.FacetKind][]domain.TaxonomyTerm, len(domain.FacetKinds))
	for _, rt := range raw {
		kind, ok := domain.ParseFacetKind(rt.Facet)
		if !ok {
			continue
		}
		id := strings.TrimSpace(rt.ID)
		if id == "" {
			continue
		}
		terms[kind] = append(terms[kind], domain.TaxonomyTerm{
			ID:          id,
			DisplayName: strings.TrimSpace(rt.DisplayName),
		})
	}
	if len(terms[domain.FacetSteep]) == 0 {
		terms[domain.FacetSteep] = domain.DefaultSteepTerms()
	}
	return domain.NewCatalog(terms)
}

// attachDocumentTag drops STEEP and industry terms: documents do not carry them.
func attachDocumentTag(tags *domain.DocumentTags, facet domain.FacetKind, term domain.TaxonomyTerm) {
	switch facet {
	case domain.FacetTopic:
		tags.Topics = appendTerm(tags.Topics, term)
	case domain.FacetCategory:
		tags.Categories = appendTerm(tags.Categories, term)
	case domain.FacetRegion:
		tags.Regions = appendTerm(tags.Regions, term)
	}
}

func attachDerivedTag(tags *domain.Tags, facet domain.FacetKind, term domain.TaxonomyTerm) {
	switch facet {
	case domain.FacetTopic:
		tags.Topics = appendTerm(tags.Topics, term)
	case domain.FacetCategory:
		tags.Categories = appendTerm(tags.Categories, term)
	case domain.FacetSteep:
		tags.Steep = appendTerm(tags.Steep, term)
	case domain.FacetRegion:
		tags.Regions = appendTerm(tags.Regions, term)
	case domain.FacetIndustry:
		tags.Industries = appendTerm(tags.Industries, term)
	}
}

func appendTerm(terms []domain.TaxonomyTerm, term domain.TaxonomyTerm) []domain.TaxonomyTerm {
	if hasTerm(terms, term.ID) {
		return terms
	}
	return append(terms, term)
}

func uniqueStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
