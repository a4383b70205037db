package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/services"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// testSnapshot: D1 private to u1, D2 public; one driver and one trend each.
func testSnapshot() *domain.RawSnapshot {
	return &domain.RawSnapshot{
		Terms: []domain.RawTerm{
			{Facet: "topic", ID: "ai", DisplayName: "Artificial Intelligence"},
			{Facet: "region", ID: "eu", DisplayName: "Europe"},
		},
		Documents: []domain.RawDocument{
			{ID: "D1", Title: "Private notes", OwnerID: "u1", Visibility: "PRIVATE", CreatedAt: base.Add(2 * time.Hour)},
			{ID: "D2", Title: "Public report", OwnerID: "u2", Visibility: "PUBLIC", CreatedAt: base.Add(time.Hour)},
		},
		Derived: []domain.RawDerived{
			{ID: "R1", Kind: "driver", Name: "Ageing society", DerivedFrom: "D1", CreatedAt: base},
			{ID: "T1", Kind: "trend", Name: "Assistants", DerivedFrom: "D2", CreatedAt: base.Add(3 * time.Hour)},
			{ID: "T2", Kind: "trend", Name: "Open models", DerivedFrom: "D2", CreatedAt: base.Add(2 * time.Hour)},
		},
		Taggings: []domain.RawTagging{
			{EntityKind: "document", EntityID: "D2", Facet: "region", TermID: "eu"},
			{EntityKind: "trend", EntityID: "T1", Facet: "topic", TermID: "ai"},
		},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store := memory.NewLibraryStore()
	require.NoError(t, store.ReplaceSnapshot(context.Background(), testSnapshot()))

	server, err := NewServer(&Ports{
		Library: services.NewLibraryService(store, domain.LibrarySettings{PageSize: 10}),
		Catalog: services.NewCatalogService(store),
	})
	require.NoError(t, err)
	return server
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

var errBackend = errors.New("backend unavailable")

// failingLibrary is a driving.LibraryService whose every call fails.
type failingLibrary struct{}

func (failingLibrary) Query(
	context.Context, domain.Viewer, domain.LibraryFilter, domain.PageWindows,
) (*domain.LibraryView, error) {
	return nil, errBackend
}

func (failingLibrary) Filter(context.Context, domain.Viewer, domain.LibraryFilter) (*domain.FilteredLibrary, error) {
	return nil, errBackend
}

func (failingLibrary) CanView(context.Context, domain.Viewer, domain.EntityKind, string) (bool, error) {
	return false, errBackend
}

func (failingLibrary) Neighbors(
	context.Context, domain.Viewer, domain.LibraryFilter, domain.EntityKind, string,
) (domain.Neighbors, error) {
	return domain.Neighbors{}, errBackend
}

func (failingLibrary) Import(context.Context, *domain.RawSnapshot) error {
	return errBackend
}

func (failingLibrary) DeleteDocument(context.Context, string) error {
	return errBackend
}
