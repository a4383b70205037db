package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

var (
	canViewJSON     bool
	neighborsFilter filterFlags
	neighborsJSON   bool
)

var canViewCmd = &cobra.Command{
	Use:   "can-view [kind] [id]",
	Short: "Check whether the viewer may open an entity",
	Long: `Checks the detail-page rule for one entity. Kind is one of document,
driver, trend, signal or evidence. A missing entity is reported as not
visible.`,
	Args: cobra.ExactArgs(2),
	RunE: runCanView,
}

var neighborsCmd = &cobra.Command{
	Use:   "neighbors [kind] [id]",
	Short: "Show the entities before and after one item in a filtered view",
	Args:  cobra.ExactArgs(2),
	RunE:  runNeighbors,
}

func init() {
	canViewCmd.Flags().BoolVar(&canViewJSON, "json", false, "output result as JSON")
	neighborsFilter.bind(neighborsCmd)
	neighborsCmd.Flags().BoolVar(&neighborsJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(canViewCmd)
	rootCmd.AddCommand(neighborsCmd)
}

func parseKind(arg string) (domain.EntityKind, error) {
	kind, ok := domain.ParseEntityKind(arg)
	if !ok {
		return "", errors.WithHint(
			errors.Wrapf(domain.ErrUnknownEntityKind, "%q", arg),
			"kinds are document, driver, trend, signal and evidence")
	}
	return kind, nil
}

func runCanView(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	visible, err := libraryService.CanView(cmd.Context(), currentViewer(), kind, args[1])
	if err != nil {
		return fmt.Errorf("can-view failed: %w", err)
	}

	if canViewJSON {
		return outputJSON(cmd, map[string]any{"kind": kind, "id": args[1], "visible": visible})
	}
	styles := stylesFor(cmd.OutOrStdout())
	if visible {
		cmd.Printf("%s %s: %s\n", kind, args[1], styles.Success("visible"))
	} else {
		cmd.Printf("%s %s: %s\n", kind, args[1], styles.Failure("not visible"))
	}
	return nil
}

func runNeighbors(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}
	filter, err := neighborsFilter.build(cmd.Context())
	if err != nil {
		return err
	}

	n, err := libraryService.Neighbors(cmd.Context(), currentViewer(), filter, kind, args[1])
	if err != nil {
		return fmt.Errorf("neighbors failed: %w", err)
	}

	if neighborsJSON {
		return outputJSON(cmd, n)
	}
	cmd.Printf("%s %s is %d of %d\n", kind, args[1], n.Position+1, n.Total)
	if n.Previous != "" {
		cmd.Printf("  previous: %s\n", n.Previous)
	}
	if n.Next != "" {
		cmd.Printf("  next: %s\n", n.Next)
	}
	return nil
}
