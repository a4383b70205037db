package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/adapters/driven/snapshot"
	"github.com/custodia-labs/horizon/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/logger"
)

var (
	serveAddr     string
	serveSnapshot string
	serveWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the library as JSON over HTTP.

Endpoints:
  GET /health
  GET /api/catalog
  GET /api/library?scope=mine&topics=ai&combinator=all&limit=20
  GET /api/entities/{kind}/{id}
  GET /api/entities/{kind}/{id}/neighbors

The viewer is read from the X-Horizon-User header, which an authenticating
proxy should set. With --watch the snapshot file is imported at start and
re-imported whenever it changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings)")
	serveCmd.Flags().StringVar(&serveSnapshot, "snapshot", "", "snapshot file to import (default from settings)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "re-import the snapshot file when it changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		current, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *current
	}
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.HTTPAddr
	}
	snapshotPath := serveSnapshot
	if snapshotPath == "" {
		snapshotPath = settings.Library.SnapshotPath
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveWatch {
		if snapshotPath == "" {
			return errors.New("--watch needs a snapshot: pass --snapshot or set library.snapshot_path")
		}
		watcher, err := startWatcher(ctx, snapshotPath)
		if err != nil {
			return err
		}
		defer watcher.Close() //nolint:errcheck
	}

	server, err := httpapi.NewServer(libraryService, catalogService, settings.Server)
	if err != nil {
		return err
	}
	cmd.Printf("HTTP API listening on %s\n", addr)
	return server.ListenAndServe(ctx, addr)
}

// startWatcher imports the snapshot once, then keeps it in sync.
func startWatcher(ctx context.Context, path string) (*snapshot.Watcher, error) {
	watcher := snapshot.NewWatcher(snapshot.NewFileSource(path), libraryService.Import, snapshot.DefaultDebounce)
	if err := watcher.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial import: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}
	logger.Info("Watching %s for changes", path)
	return watcher, nil
}
