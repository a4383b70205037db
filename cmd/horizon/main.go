// Command horizon browses a foresight research library from the terminal,
// over HTTP, or through MCP.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/custodia-labs/horizon/internal/adapters/driven/config/file"
	"github.com/custodia-labs/horizon/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/horizon/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/horizon/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/horizon/internal/adapters/driving/cli"
	"github.com/custodia-labs/horizon/internal/core/ports/driven"
	"github.com/custodia-labs/horizon/internal/core/services"
	"github.com/custodia-labs/horizon/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version, bootstrap); err != nil {
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services once global flags are known.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	var (
		store   driven.LibraryStore
		closeFn func() error
	)
	if opts.Memory {
		mem := memory.NewLibraryStore()
		if path := settings.Library.SnapshotPath; path != "" {
			snap, err := snapshot.NewFileSource(path).Load(context.Background())
			if err != nil {
				return nil, err
			}
			if err := mem.ReplaceSnapshot(context.Background(), snap); err != nil {
				return nil, err
			}
			logger.Debug("Loaded %s into the in-memory library", path)
		}
		store = mem
	} else {
		dataDir := opts.DataDir
		if dataDir == "" {
			dataDir = settings.Storage.DataDir
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open library: %w", err)
		}
		store = db.LibraryStore()
		closeFn = db.Close
	}

	return &cli.Services{
		Library:  services.NewLibraryService(store, settings.Library),
		Catalog:  services.NewCatalogService(store),
		Settings: settingsService,
		Close:    closeFn,
	}, nil
}
