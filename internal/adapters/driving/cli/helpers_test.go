package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/horizon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/services"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// testSnapshot: D1 private to u1 with one driver, D2 public with two trends.
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
			{EntityKind: "trend", EntityID: "T1", Facet: "topic", TermID: "ai"},
		},
	}
}

// withServices installs services over a seeded memory store for one test.
func withServices(t *testing.T) (*memory.LibraryStore, *memory.ConfigStore) {
	t.Helper()
	store := memory.NewLibraryStore()
	require.NoError(t, store.ReplaceSnapshot(context.Background(), testSnapshot()))
	config := memory.NewConfigStore()

	libraryService = services.NewLibraryService(store, domain.LibrarySettings{PageSize: 10})
	catalogService = services.NewCatalogService(store)
	settingsService = services.NewSettingsService(config)
	t.Cleanup(func() {
		libraryService, catalogService, settingsService = nil, nil, nil
	})
	return store, config
}

func resetFlags() {
	verboseFlag, memoryFlag, anonymousFlag = false, false, false
	dataDirFlag, viewerFlag = "", ""
	queryFilter.reset()
	queryLimit, queryJSON = 0, false
	canViewJSON, neighborsJSON = false, false
	neighborsFilter.reset()
	catalogJSON = false
	serveAddr, serveSnapshot, serveWatch = "", "", false
}

// run executes the root command with args and returns combined output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
