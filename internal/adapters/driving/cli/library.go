package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/horizon/internal/adapters/driven/snapshot"
)

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the library with a snapshot file",
	Long: `Loads a YAML or JSON snapshot of terms, documents and derived entities and
replaces the stored library with it. The snapshot is validated before
anything is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var deleteDocumentCmd = &cobra.Command{
	Use:   "delete-document [doc-id]",
	Short: "Remove a document from the library",
	Long: `Removes a document. Drivers, trends, signals and evidence derived from it
are no longer shown to anyone.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeleteDocument,
}

func init() {
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(deleteDocumentCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	snap, err := snapshot.NewFileSource(args[0]).Load(cmd.Context())
	if err != nil {
		return err
	}
	if err := libraryService.Import(cmd.Context(), snap); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	cmd.Printf("Imported %d terms, %d documents and %d derived entities from %s\n",
		len(snap.Terms), len(snap.Documents), len(snap.Derived), args[0])
	return nil
}

func runDeleteDocument(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}
	if err := libraryService.DeleteDocument(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}
