package services

import (
	"time"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

var (
	u1 = domain.Member("u1")
	u2 = domain.Member("u2")
	u3 = domain.Member("u3")
)

// base is the reference time; larger offsets are more recent.
var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

// scenarioSnapshot builds the library used across pipeline tests:
//
//	D1 owned by u1, SELECTED_USERS, shared with u2
//	D2 owned by u3, PUBLIC
//	D3 owned by u3, PRIVATE
//	D4 owned by u1, MEMBERS
//	R1 driver from D1, steep {social}
//	R2 driver from missing document
//	T1 trend from D2, topics {ai}
//	T2 trend from D2, topics {ai, climate}
//	S1 signal from D3
//	E1 evidence from D4, industry {energy}
func scenarioSnapshot() *domain.RawSnapshot {
	return &domain.RawSnapshot{
		Terms: []domain.RawTerm{
			{Facet: "topic", ID: "ai", DisplayName: "Artificial Intelligence"},
			{Facet: "topic", ID: "climate", DisplayName: "Climate"},
			{Facet: "category", ID: "policy", DisplayName: "Policy"},
			{Facet: "region", ID: "eu", DisplayName: "Europe"},
			{Facet: "industry", ID: "energy", DisplayName: "Energy"},
		},
		Documents: []domain.RawDocument{
			{ID: "D1", Title: "Shared report", OwnerID: "u1", Visibility: "SELECTED_USERS",
				SharedWith: []string{"u2"}, CreatedAt: at(4)},
			{ID: "D2", Title: "Public report", OwnerID: "u3", Visibility: "PUBLIC", CreatedAt: at(3)},
			{ID: "D3", Title: "Private notes", OwnerID: "u3", Visibility: "PRIVATE", CreatedAt: at(2)},
			{ID: "D4", Title: "Members brief", OwnerID: "u1", Visibility: "MEMBERS", CreatedAt: at(1)},
		},
		Derived: []domain.RawDerived{
			{ID: "R1", Kind: "driver", Name: "Ageing society", DerivedFrom: "D1", CreatedAt: at(10)},
			{ID: "R2", Kind: "driver", Name: "Orphan", DerivedFrom: "D404", CreatedAt: at(11)},
			{ID: "T1", Kind: "trend", Name: "Assistants", DerivedFrom: "D2", CreatedAt: at(12)},
			{ID: "T2", Kind: "trend", Name: "Climate models", DerivedFrom: "D2", CreatedAt: at(11)},
			{ID: "S1", Kind: "signal", Name: "Leak", DerivedFrom: "D3", CreatedAt: at(5)},
			{ID: "E1", Kind: "evidence", Name: "Grid data", DerivedFrom: "D4", CreatedAt: at(6)},
		},
		Taggings: []domain.RawTagging{
			{EntityKind: "document", EntityID: "D1", Facet: "topic", TermID: "ai"},
			{EntityKind: "document", EntityID: "D2", Facet: "topic", TermID: "ai"},
			{EntityKind: "document", EntityID: "D2", Facet: "region", TermID: "eu"},
			{EntityKind: "document", EntityID: "D4", Facet: "category", TermID: "policy"},
			{EntityKind: "driver", EntityID: "R1", Facet: "steep", TermID: "social"},
			{EntityKind: "driver", EntityID: "R2", Facet: "steep", TermID: "social"},
			{EntityKind: "trend", EntityID: "T1", Facet: "topic", TermID: "ai"},
			{EntityKind: "trend", EntityID: "T2", Facet: "topic", TermID: "ai"},
			{EntityKind: "trend", EntityID: "T2", Facet: "topic", TermID: "climate"},
			{EntityKind: "evidence", EntityID: "E1", Facet: "industry", TermID: "energy"},
		},
	}
}

func scenarioLibrary() *domain.Library {
	return AssembleLibrary(scenarioSnapshot())
}

func filter(scope domain.Scope, combinator domain.Combinator, facets domain.FacetSelection) domain.LibraryFilter {
	return domain.LibraryFilter{Scope: scope, Combinator: combinator, Facets: facets}
}

func selection(kind domain.FacetKind, ids ...string) domain.FacetSelection {
	return domain.FacetSelection{}.With(kind, ids...)
}
