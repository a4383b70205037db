package services

import "github.com/custodia-labs/horizon/internal/core/domain"

// MatchesFacets reports whether entity satisfies selection.
//
// Every facet kind with a non-empty selection must pass (AND across facets).
// Within a facet, CombinatorAny needs one overlapping term and CombinatorAll
// needs every selected term. A facet the entity does not carry has no terms,
// so any selection on it fails. Terms match by id alone; the catalog is not
// consulted.
func MatchesFacets(entity domain.Taggable, selection domain.FacetSelection, combinator domain.Combinator) bool {
	if entity == nil {
		return false
	}
	all := domain.ParseCombinator(string(combinator)) == domain.CombinatorAll
	for _, kind := range domain.FacetKinds {
		selected := selection[kind]
		if len(selected) == 0 {
			continue
		}
		terms := entity.Terms(kind)
		if all {
			if !containsAll(terms, selected) {
				return false
			}
		} else if !containsAny(terms, selected) {
			return false
		}
	}
	return true
}

func containsAny(terms []domain.TaxonomyTerm, ids []string) bool {
	for _, id := range ids {
		if hasTerm(terms, id) {
			return true
		}
	}
	return false
}

func containsAll(terms []domain.TaxonomyTerm, ids []string) bool {
	for _, id := range ids {
		if !hasTerm(terms, id) {
			return false
		}
	}
	return true
}

func hasTerm(terms []domain.TaxonomyTerm, id string) bool {
	for i := range terms {
		if terms[i].ID == id {
			return true
		}
	}
	return false
}
