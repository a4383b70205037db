package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change settings stored in ~/.horizon/config.toml.

Keys:
  library.page_size           items per collection before "load more" (20)
  library.default_scope       all, mine or shared_with_me (all)
  library.default_combinator  any or all (any)
  library.snapshot_path       snapshot file used by serve --watch
  storage.data_dir            directory for the library database
  server.http_addr            HTTP listen address (:8470)
  server.rate_limit           sustained requests per second (20)
  server.rate_burst           burst size (40)`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	styles := stylesFor(cmd.OutOrStdout())

	cmd.Println(styles.Title("Current Settings"))
	cmd.Println()

	cmd.Println(styles.Heading("[Library]"))
	cmd.Printf("  Page size: %d\n", settings.Library.PageSize)
	cmd.Printf("  Default scope: %s\n", settings.Library.DefaultScope)
	cmd.Printf("  Default combinator: %s\n", settings.Library.DefaultCombinator)
	cmd.Printf("  Snapshot: %s\n", orNotSet(settings.Library.SnapshotPath))
	cmd.Println()

	cmd.Println(styles.Heading("[Storage]"))
	cmd.Printf("  Data directory: %s\n", orNotSet(settings.Storage.DataDir))
	cmd.Println()

	cmd.Println(styles.Heading("[Server]"))
	cmd.Printf("  HTTP address: %s\n", settings.Server.HTTPAddr)
	cmd.Printf("  Rate limit: %g/s (burst %d)\n", settings.Server.RateLimit, settings.Server.RateBurst)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func orNotSet(v string) string {
	if v == "" {
		return "(not set)"
	}
	return v
}
