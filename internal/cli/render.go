package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// renderCommand creates the render command that runs the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		text    textFlags
		layout  layoutFlags
		render  renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render tags or text straight to SVG, PNG, PDF or JSON",
		Long: `Render tags or text straight to SVG, PNG, PDF or JSON.

This runs parse, layout and visualize in one step. The input can be a tag
list (JSON, CSV, TSV) or free text.

Examples:
  tagcloud render words.txt --stop-words
  tagcloud render tags.json -f svg,png --background "#ffffff"
  tagcloud render tags.csv --mode rectangular --angles 0 -o cloud.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			text.apply(fs, &opts)
			layout.apply(fs, &opts)
			render.apply(fs, &opts)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	text.register(cmd.Flags())
	layout.register(cmd.Flags())
	render.register(cmd.Flags())

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Input = input

	spinner := newSpinnerWithContext(ctx, "Rendering tag cloud...")
	spinner.Start()

	restore := trackStages(spinner)
	result, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}
	printStats(result.Stats.TagCount, result.Stats.Placed, result.Stats.Skipped, result.CacheInfo.LayoutHit)
	printSkipped(result.Layout.Skipped)
	return nil
}
