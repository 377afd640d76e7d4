package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/document"
)

// inspectCommand creates the inspect command for browsing a layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [layout.json]",
		Short: "Browse the placed and skipped words of a layout",
		Long: `Browse the placed and skipped words of a layout in an interactive table.

Keys:
  ↑/↓ j/k     move
  pgup/pgdn   page
  tab         switch between placed and skipped words
  s           sort by font size or placement order
  q           quit

Use --plain to print the table without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			layout, err := document.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}

			m := NewInspectModel(args[0], layout)
			if plain {
				m.Height = len(layout.Words) + len(layout.Skipped)
				fmt.Println(m.View())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithOutput(os.Stderr)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table and exit")

	return cmd
}
