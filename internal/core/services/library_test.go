package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/horizon/internal/core/domain"
)

func newLibraryService(t *testing.T, settings domain.LibrarySettings) (*LibraryService, *memory.LibraryStore) {
	t.Helper()
	store := memory.NewLibraryStore()
	require.NoError(t, store.ReplaceSnapshot(context.Background(), scenarioSnapshot()))
	return NewLibraryService(store, settings), store
}

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) LoadSnapshot(context.Context) (*domain.RawSnapshot, error) { return nil, f.err }
func (f failingStore) ReplaceSnapshot(context.Context, *domain.RawSnapshot) error { return f.err }
func (f failingStore) DeleteDocument(context.Context, string) error { return f.err }

func TestNewLibraryService_Defaults(t *testing.T) {
	service := NewLibraryService(memory.NewLibraryStore(), domain.LibrarySettings{})

	assert.Equal(t, domain.DefaultPageSize, service.PageSize())
}

func TestLibraryService_Query(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{PageSize: 2})

	view, err := service.Query(context.Background(), u1, domain.LibraryFilter{}, nil)

	require.NoError(t, err)
	assert.Len(t, view.Documents.Items, 2)
	assert.Equal(t, 3, view.Documents.Total)
	assert.True(t, view.Documents.HasMore)
	assert.Equal(t, 1, view.Drivers.Total)
	assert.Equal(t, 2, view.Trends.Total)
	assert.Zero(t, view.Signals.Total)
	assert.Equal(t, 1, view.Evidence.Total)
}

func TestLibraryService_Query_Windows(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{PageSize: 1})

	view, err := service.Query(context.Background(), u1, domain.LibraryFilter{},
		domain.PageWindows{domain.KindDocument: 3})

	require.NoError(t, err)
	assert.Len(t, view.Documents.Items, 3)
	assert.False(t, view.Documents.HasMore)
	assert.Len(t, view.Trends.Items, 1)
}

func TestLibraryService_Query_UsesDefaultScope(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{DefaultScope: domain.ScopeMine})

	view, err := service.Query(context.Background(), u1, domain.LibraryFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Documents.Total)

	view, err = service.Query(context.Background(), u1, domain.LibraryFilter{Scope: domain.ScopeAll}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Documents.Total)
}

func TestLibraryService_Query_UsesDefaultCombinator(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{DefaultCombinator: domain.CombinatorAll})
	f := domain.LibraryFilter{Facets: selection(domain.FacetTopic, "ai", "climate")}

	view, err := service.Query(context.Background(), u1, f, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, view.Trends.Total)
}

func TestLibraryService_Query_ReflectsStoreChanges(t *testing.T) {
	service, store := newLibraryService(t, domain.LibrarySettings{})
	ctx := context.Background()
	f := domain.LibraryFilter{Facets: selection(domain.FacetTopic, "climate")}

	view, err := service.Query(ctx, u1, f, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Trends.Total)

	raw := scenarioSnapshot()
	raw.Taggings = append(raw.Taggings, domain.RawTagging{
		EntityKind: "trend", EntityID: "T1", Facet: "topic", TermID: "climate",
	})
	require.NoError(t, store.ReplaceSnapshot(ctx, raw))

	view, err = service.Query(ctx, u1, f, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Trends.Total)
}

func TestLibraryService_Query_StoreError(t *testing.T) {
	boom := errors.New("disk on fire")
	service := NewLibraryService(failingStore{err: boom}, domain.LibrarySettings{})

	_, err := service.Query(context.Background(), u1, domain.LibraryFilter{}, nil)

	assert.ErrorIs(t, err, boom)
}

func TestLibraryService_CanView(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{})
	ctx := context.Background()

	tests := []struct {
		name   string
		viewer domain.Viewer
		kind   domain.EntityKind
		id     string
		want   bool
	}{
		{"owner opens document", u1, domain.KindDocument, "D1", true},
		{"recipient opens document", u2, domain.KindDocument, "D1", true},
		{"stranger opens document", u3, domain.KindDocument, "D1", false},
		{"stranger opens derived", u3, domain.KindDriver, "R1", false},
		{"recipient opens derived", u2, domain.KindDriver, "R1", true},
		{"dangling lineage", u1, domain.KindDriver, "R2", false},
		{"missing document", u1, domain.KindDocument, "nope", false},
		{"missing derived", u1, domain.KindTrend, "nope", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.CanView(ctx, tt.viewer, tt.kind, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLibraryService_CanView_UnknownKind(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{})

	_, err := service.CanView(context.Background(), u1, domain.EntityKind("widget"), "x")

	assert.ErrorIs(t, err, domain.ErrUnknownEntityKind)
}

func TestLibraryService_Neighbors(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{})
	ctx := context.Background()

	n, err := service.Neighbors(ctx, u1, domain.LibraryFilter{}, domain.KindTrend, "T1")
	require.NoError(t, err)
	assert.Equal(t, domain.Neighbors{Next: "T2", Position: 0, Total: 2}, n)

	_, err = service.Neighbors(ctx, u1, domain.LibraryFilter{}, domain.KindDocument, "D3")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.Neighbors(ctx, u1, domain.LibraryFilter{}, domain.EntityKind("x"), "D3")
	assert.ErrorIs(t, err, domain.ErrUnknownEntityKind)
}

func TestLibraryService_Import(t *testing.T) {
	store := memory.NewLibraryStore()
	service := NewLibraryService(store, domain.LibrarySettings{})
	ctx := context.Background()

	require.NoError(t, service.Import(ctx, scenarioSnapshot()))

	view, err := service.Query(ctx, u3, domain.LibraryFilter{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Documents.Total)

	assert.ErrorIs(t, service.Import(ctx, nil), domain.ErrInvalidSnapshot)
}

func TestLibraryService_DeleteDocument_HidesDerived(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{})
	ctx := context.Background()

	require.NoError(t, service.DeleteDocument(ctx, "D1"))

	visible, err := service.CanView(ctx, u1, domain.KindDriver, "R1")
	require.NoError(t, err)
	assert.False(t, visible)

	view, err := service.Query(ctx, u1, domain.LibraryFilter{}, nil)
	require.NoError(t, err)
	assert.Zero(t, view.Drivers.Total)
	assert.Equal(t, 2, view.Documents.Total)
}

func TestLibraryService_DeleteDocument_Errors(t *testing.T) {
	service, _ := newLibraryService(t, domain.LibrarySettings{})
	ctx := context.Background()

	assert.ErrorIs(t, service.DeleteDocument(ctx, " "), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.DeleteDocument(ctx, "missing"), domain.ErrNotFound)
}
