package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

func TestAssembleLibrary_Nil(t *testing.T) {
	lib := AssembleLibrary(nil)

	require.NotNil(t, lib)
	for _, kind := range domain.EntityKinds {
		assert.Zero(t, lib.Count(kind))
	}
	assert.Equal(t, 5, lib.Catalog().Len(domain.FacetSteep), "steep terms are seeded")
}

func TestAssembleLibrary_OrdersMostRecentFirst(t *testing.T) {
	lib := scenarioLibrary()

	var docIDs []string
	for _, d := range lib.Documents() {
		docIDs = append(docIDs, d.ID)
	}
	assert.Equal(t, []string{"D1", "D2", "D3", "D4"}, docIDs)

	drivers := lib.Derived(domain.KindDriver)
	require.Len(t, drivers, 2)
	assert.Equal(t, "R2", drivers[0].ID)
	assert.Equal(t, "R1", drivers[1].ID)

	trends := lib.Derived(domain.KindTrend)
	require.Len(t, trends, 2)
	assert.Equal(t, "T1", trends[0].ID)
	assert.Equal(t, "T2", trends[1].ID)
}

func TestAssembleLibrary_StableOnTies(t *testing.T) {
	raw := &domain.RawSnapshot{Documents: []domain.RawDocument{
		{ID: "b", CreatedAt: base}, {ID: "a", CreatedAt: base}, {ID: "c", CreatedAt: base},
	}}

	docs := AssembleLibrary(raw).Documents()

	require.Len(t, docs, 3)
	assert.Equal(t, "b", docs[0].ID)
	assert.Equal(t, "a", docs[1].ID)
	assert.Equal(t, "c", docs[2].ID)
}

func TestAssembleLibrary_AttachesTagsWithCatalogNames(t *testing.T) {
	lib := scenarioLibrary()

	t2, ok := lib.DerivedEntity(domain.KindTrend, "T2")
	require.True(t, ok)
	assert.Equal(t, []domain.TaxonomyTerm{
		{ID: "ai", DisplayName: "Artificial Intelligence"},
		{ID: "climate", DisplayName: "Climate"},
	}, t2.Tags.Topics)

	r1, ok := lib.DerivedEntity(domain.KindDriver, "R1")
	require.True(t, ok)
	assert.Equal(t, []domain.TaxonomyTerm{{ID: "social", DisplayName: "Social"}}, r1.Tags.Steep)
}

func TestAssembleLibrary_DeduplicatesTagsKeepingFirst(t *testing.T) {
	raw := &domain.RawSnapshot{
		Derived: []domain.RawDerived{{ID: "T", Kind: "trend", DerivedFrom: "D"}},
		Taggings: []domain.RawTagging{
			{EntityKind: "trend", EntityID: "T", Facet: "topic", TermID: "b"},
			{EntityKind: "trend", EntityID: "T", Facet: "topic", TermID: "a"},
			{EntityKind: "trend", EntityID: "T", Facet: "topics", TermID: "b"},
		},
	}

	trend, ok := AssembleLibrary(raw).DerivedEntity(domain.KindTrend, "T")

	require.True(t, ok)
	require.Len(t, trend.Tags.Topics, 2)
	assert.Equal(t, "b", trend.Tags.Topics[0].ID)
	assert.Equal(t, "a", trend.Tags.Topics[1].ID)
}

func TestAssembleLibrary_StaleTermKeepsID(t *testing.T) {
	raw := &domain.RawSnapshot{
		Documents: []domain.RawDocument{{ID: "D"}},
		Taggings:  []domain.RawTagging{{EntityKind: "document", EntityID: "D", Facet: "topic", TermID: "gone"}},
	}

	doc, ok := AssembleLibrary(raw).Document("D")

	require.True(t, ok)
	assert.Equal(t, []domain.TaxonomyTerm{{ID: "gone", DisplayName: "gone"}}, doc.Tags.Topics)
}

func TestAssembleLibrary_DropsUnsupportedAssociations(t *testing.T) {
	raw := &domain.RawSnapshot{
		Documents: []domain.RawDocument{{ID: "D"}},
		Taggings: []domain.RawTagging{
			{EntityKind: "document", EntityID: "D", Facet: "steep", TermID: "social"},
			{EntityKind: "document", EntityID: "D", Facet: "industry", TermID: "energy"},
			{EntityKind: "document", EntityID: "D", Facet: "colour", TermID: "red"},
			{EntityKind: "document", EntityID: "missing", Facet: "topic", TermID: "ai"},
			{EntityKind: "widget", EntityID: "D", Facet: "topic", TermID: "ai"},
			{EntityKind: "document", EntityID: "D", Facet: "topic", TermID: " "},
		},
	}

	doc, ok := AssembleLibrary(raw).Document("D")

	require.True(t, ok)
	assert.Equal(t, domain.DocumentTags{}, doc.Tags)
}

func TestAssembleLibrary_ParsesVisibilityFailClosed(t *testing.T) {
	raw := &domain.RawSnapshot{Documents: []domain.RawDocument{
		{ID: "a", Visibility: "public"},
		{ID: "b", Visibility: "selected-users"},
		{ID: "c", Visibility: "everyone"},
		{ID: "d"},
	}}
	lib := AssembleLibrary(raw)

	want := map[string]domain.Visibility{
		"a": domain.VisibilityPublic,
		"b": domain.VisibilitySelectedUsers,
		"c": domain.VisibilityUnknown,
		"d": domain.VisibilityUnknown,
	}
	for id, vis := range want {
		doc, ok := lib.Document(id)
		require.True(t, ok)
		assert.Equal(t, vis, doc.Visibility, id)
	}
}

func TestAssembleLibrary_SkipsInvalidAndDuplicateEntities(t *testing.T) {
	raw := &domain.RawSnapshot{
		Documents: []domain.RawDocument{
			{ID: "D", Title: "first"}, {ID: "D", Title: "second"}, {ID: ""},
		},
		Derived: []domain.RawDerived{
			{ID: "X", Kind: "document"},
			{ID: "Y", Kind: "widget"},
			{ID: "", Kind: "trend"},
			{ID: "T", Kind: "trends", Name: "first"},
			{ID: "T", Kind: "trend", Name: "second"},
			{ID: "T", Kind: "signal", Name: "other kind"},
		},
	}
	lib := AssembleLibrary(raw)

	assert.Equal(t, 1, lib.Count(domain.KindDocument))
	doc, _ := lib.Document("D")
	assert.Equal(t, "first", doc.Title)

	assert.Equal(t, 1, lib.Count(domain.KindTrend))
	trend, _ := lib.DerivedEntity(domain.KindTrend, "T")
	assert.Equal(t, "first", trend.Name)
	assert.Equal(t, 1, lib.Count(domain.KindSignal))
	assert.Zero(t, lib.Count(domain.KindDriver))
}

func TestAssembleLibrary_SharedWithDeduplicated(t *testing.T) {
	raw := &domain.RawSnapshot{Documents: []domain.RawDocument{
		{ID: "D", SharedWith: []string{"u2", " ", "u3", "u2"}},
	}}

	doc, _ := AssembleLibrary(raw).Document("D")

	assert.Equal(t, []string{"u2", "u3"}, doc.SharedWith)
}

func TestAssembleLibrary_CatalogKeepsSuppliedSteep(t *testing.T) {
	raw := &domain.RawSnapshot{Terms: []domain.RawTerm{{Facet: "STEEP", ID: "social", DisplayName: "Society"}}}

	catalog := AssembleLibrary(raw).Catalog()

	assert.Equal(t, []domain.TaxonomyTerm{{ID: "social", DisplayName: "Society"}}, catalog.Options(domain.FacetSteep))
}

func TestAssembleLibrary_DoesNotModifyInput(t *testing.T) {
	raw := scenarioSnapshot()
	before := raw.Clone()

	_ = AssembleLibrary(raw)

	assert.Equal(t, before, raw)
}
