package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/document"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// layoutCommand creates the layout command for placing a tag list.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		text    textFlags
		layout  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tags.json]",
		Short: "Compute a tag cloud layout from weighted tags",
		Long: `Compute a tag cloud layout from weighted tags.

The layout command takes a tag list (tags.json from 'parse', CSV, TSV, or free
text) and places every word. The output is a layout.json file (same format as
'render -f json') that can be rendered with the 'visualize' command.

Words that cannot be placed are listed in the layout's "skipped" section.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			text.apply(cmd.Flags(), &opts)
			layout.apply(cmd.Flags(), &opts)
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	text.register(cmd.Flags())
	layout.register(cmd.Flags())

	return cmd
}

// runLayout loads the tags, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	recs, err := c.readRecords(ctx, input, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(recs)))
	spinner.Start()

	layout, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, recs, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(strings.TrimSuffix(input, filepath.Ext(input)), ".tags")
		outputPath = base + ".layout.json"
	}

	if err := document.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(recs), layout.Placed(), len(layout.Skipped), cacheHit)
	printSkipped(layout.Skipped)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)

	return nil
}
