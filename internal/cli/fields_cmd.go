package cli

import (
	"fmt"

	"github.com/dennisdenk/vergabe.ai/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newFieldsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <document>",
		Short: "List a document's fields and how each would be filled",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 || args[0] == "" {
				return ErrNoDocument
			}
			if len(args) > 1 {
				return fmt.Errorf("unexpected arguments after document: %v", args[1:])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.OpenDocument(args[0])
			if err != nil {
				return fmt.Errorf("opening document: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFields(doc))
			return nil
		},
	}
}
