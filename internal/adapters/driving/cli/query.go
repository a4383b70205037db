package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/core/domain"
)

var (
	queryFilter filterFlags
	queryLimit  int
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "List what the viewer may see",
	Long: `Lists documents, drivers, trends, signals and evidence visible to the
viewer, narrowed by scope and facets.

Facets combine with AND. Within a facet, --combinator any matches entities
carrying at least one selected term and --combinator all requires every one.
Terms may be given by id or display name.

Examples:
  horizon query --as u1 --scope mine
  horizon query -f topics=ai,climate --combinator all
  horizon query -f steep=Social --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	queryFilter.bind(queryCmd)
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "n", 0, "items per collection (default from settings)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	ctx := cmd.Context()
	filter, err := queryFilter.build(ctx)
	if err != nil {
		return err
	}

	var windows domain.PageWindows
	if queryLimit > 0 {
		windows = make(domain.PageWindows, len(domain.EntityKinds))
		for _, kind := range domain.EntityKinds {
			windows[kind] = queryLimit
		}
	}

	view, err := libraryService.Query(ctx, currentViewer(), filter, windows)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputJSON(cmd, view)
	}
	outputView(cmd, view)
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputView(cmd *cobra.Command, view *domain.LibraryView) {
	styles := stylesFor(cmd.OutOrStdout())

	section := func(kind domain.EntityKind, shown int, more bool) {
		label := strings.ToUpper(kind.Plural()[:1]) + kind.Plural()[1:]
		line := fmt.Sprintf("%s (%d of %d)", label, shown, view.Total(kind))
		if more {
			line += " " + styles.Muted("more available")
		}
		cmd.Println(styles.Heading(line))
	}

	section(domain.KindDocument, len(view.Documents.Items), view.Documents.HasMore)
	for i := range view.Documents.Items {
		d := &view.Documents.Items[i]
		cmd.Printf("  [%s] %s %s\n", d.ID, d.Title, styles.Muted(strings.ToLower(d.Visibility.String())))
	}
	if len(view.Documents.Items) == 0 {
		cmd.Println(styles.Muted("  none"))
	}

	for _, kind := range domain.DerivedKinds {
		page := view.Derived(kind)
		cmd.Println()
		section(kind, len(page.Items), page.HasMore)
		for _, e := range page.Items {
			cmd.Printf("  [%s] %s %s\n", e.ID, e.Name, styles.Muted("from "+e.DerivedFrom))
		}
		if len(page.Items) == 0 {
			cmd.Println(styles.Muted("  none"))
		}
	}
}
