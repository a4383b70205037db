// Package cli provides the cobra command tree for the horizon binary.
package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/core/domain"
	"github.com/custodia-labs/horizon/internal/core/ports/driving"
	"github.com/custodia-labs/horizon/internal/logger"
)

// version is set by Execute from build flags.
var version = "dev"

// Services holds the driving ports the commands run against.
type Services struct {
	Library  driving.LibraryService
	Catalog  driving.CatalogService
	Settings driving.SettingsService

	// Close releases storage. Optional.
	Close func() error
}

// Options are the global flags a Bootstrap sees.
type Options struct {
	// Memory selects the in-memory store instead of SQLite.
	Memory bool

	// DataDir overrides storage.data_dir.
	DataDir string
}

// Bootstrap wires services once global flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	closer    func() error

	libraryService  driving.LibraryService
	catalogService  driving.CatalogService
	settingsService driving.SettingsService
)

// Global flags.
var (
	verboseFlag   bool
	memoryFlag    bool
	dataDirFlag   string
	viewerFlag    string
	anonymousFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Browse a foresight research library",
	Long: `Horizon serves a library of documents and the drivers, trends, signals and
evidence derived from them. Every listing is filtered to what the viewer may
see, then narrowed by scope and facets.

Use --as to query on behalf of a user; without it queries run anonymously.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&memoryFlag, "memory", false, "use an in-memory library instead of SQLite")
	flags.StringVar(&dataDirFlag, "data-dir", "", "directory for the library database")
	flags.StringVar(&viewerFlag, "as", "", "user id to act as")
	flags.BoolVar(&anonymousFlag, "anonymous", false, "act as an anonymous viewer (overrides --as)")
}

// Execute runs the root command.
func Execute(v string, boot Bootstrap) error {
	if v != "" {
		version = v
	}
	bootstrap = boot
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)
	if bootstrap == nil || libraryService != nil {
		return nil
	}
	svc, err := bootstrap(Options{Memory: memoryFlag, DataDir: dataDirFlag})
	if err != nil {
		return err
	}
	libraryService = svc.Library
	catalogService = svc.Catalog
	settingsService = svc.Settings
	closer = svc.Close
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	logger.Sync()
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	return err
}

// currentViewer maps the global flags to a viewer.
func currentViewer() domain.Viewer {
	if anonymousFlag {
		return domain.Anonymous()
	}
	return domain.Member(strings.TrimSpace(viewerFlag))
}

func requireLibrary() error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	return nil
}
