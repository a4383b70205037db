package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog [facet]",
	Short: "List selectable facet terms",
	Long: `Lists the terms that can be selected for each facet: topics, categories,
steep, regions and industries. Pass a facet name to list only that facet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "output terms as JSON")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	if catalogService == nil {
		return errors.New("catalog service not configured")
	}

	kinds := domain.FacetKinds
	if len(args) == 1 {
		kind, err := parseFacet(args[0])
		if err != nil {
			return err
		}
		kinds = []domain.FacetKind{kind}
	}

	catalog, err := catalogService.Catalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	if catalogJSON {
		out := make(map[string][]domain.TaxonomyTerm, len(kinds))
		for _, kind := range kinds {
			terms := catalog.Options(kind)
			if terms == nil {
				terms = []domain.TaxonomyTerm{}
			}
			out[kind.String()] = terms
		}
		return outputJSON(cmd, out)
	}

	styles := stylesFor(cmd.OutOrStdout())
	for i, kind := range kinds {
		if i > 0 {
			cmd.Println()
		}
		cmd.Println(styles.Heading(fmt.Sprintf("%s (%d)", kind.Description(), catalog.Len(kind))))
		terms := catalog.Options(kind)
		if len(terms) == 0 {
			cmd.Println(styles.Muted("  none"))
		}
		for _, term := range terms {
			cmd.Printf("  %-20s %s\n", term.ID, term.Label())
		}
	}
	return nil
}

func parseFacet(arg string) (domain.FacetKind, error) {
	kind, ok := domain.ParseFacetKind(arg)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownFacet, arg)
	}
	return kind, nil
}
