package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	tagio "github.com/matzehuels/tagcloud/pkg/io"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// stdinName is the input argument that reads from standard input.
const stdinName = "-"

// parseCommand creates the parse command for turning input files into a tag list.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output string
		text   textFlags
	)

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Count words or read weighted tags into tags.json",
		Long: `Read weighted tags from a file and write them as tags.json.

The input format is picked by extension:
  .json        {"tags":[{"text":"go","weight":3}]} or [["go",3],...]
  .csv, .tsv   text,weight[,angle] rows with an optional header
  anything else  free text; words are counted to become weights

Use '-' to read free text from stdin.

Examples:
  tagcloud parse speech.txt --stop-words --max-items 100
  tagcloud parse languages.csv -o languages.json
  cat README.md | tagcloud parse - -o readme.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Logger: c.Logger}
			text.apply(cmd.Flags(), &opts)
			return c.runParse(cmd.Context(), args[0], opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.tags.json, stdout for '-')")
	text.register(cmd.Flags())

	return cmd
}

// runParse reads the input, writes the tag list, and prints a summary.
func (c *CLI) runParse(ctx context.Context, input string, opts pipeline.Options, output string) error {
	prog := newProgress(c.Logger)

	recs, err := c.readRecords(ctx, input, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Read %d tags", len(recs)))

	if output == "" && input == stdinName {
		return tagio.WriteJSON(recs, os.Stdout)
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".tags.json"
	}
	if err := tagio.ExportJSON(recs, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Parsed %d tags", len(recs))
	printFile(output)
	printNewline()
	printNextStep("Layout", appName+" layout "+output)
	return nil
}

// readRecords parses input as a file, or stdin text for "-".
func (c *CLI) readRecords(ctx context.Context, input string, opts pipeline.Options) ([]cloud.Record, error) {
	if input == stdinName {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		opts.Text = string(data)
	} else {
		opts.Input = input
	}
	return pipeline.Parse(ctx, opts)
}
