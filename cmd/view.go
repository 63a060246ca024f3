package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"unfold.dev/pkg/unfold/internal/controller"
	m "unfold.dev/pkg/unfold/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <output-folder|documentation.md>",
		Short: "Show the audit log of a previous run",
		Long:  "Render the documentation.md written by a previous run in the terminal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markdown, err := reportStore.LoadDocumentation(cmd.Context(), m.Path(args[0]))
			if err != nil {
				return fmt.Errorf("failed to load documentation: %w", err)
			}

			isTTY := controller.IsTTY(cmd.OutOrStdout())

			width := 0
			if f, ok := cmd.OutOrStdout().(*os.File); ok && isTTY {
				if w, _, err := term.GetSize(int(f.Fd())); err == nil {
					width = w
				}
			}

			rendered, err := controller.NewMarkdownViewer(isTTY, width).Render(markdown)
			if err != nil {
				return fmt.Errorf("failed to render documentation: %w", err)
			}

			cmd.Print(rendered)

			return nil
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
