package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

// renderFlags holds the render-only command-line flags.
type renderFlags struct {
	formats     string
	output      string
	interactive bool
	endpoint    string
	title       string
	scale       float64
	noCache     bool
	refresh     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		yf yearFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the heatmap to SVG, PNG, PDF or JSON",
		Long: `Render the heatmap of a year to one or more files.

Completed dates are read from --dates (or the config file). Every past day in
the set is drawn complete, other past days incomplete, and later days as
future. Today is outlined.

With --interactive the SVG carries hover tooltips and the click ripple. Add
--endpoint to post clicks to a running 'heatgrid serve'.

Results are cached locally for faster subsequent runs.`,
		Example: `  heatgrid render --dates done.txt
  heatgrid render -y 2024 -f svg,png -o out/2024
  heatgrid render -f json -o - | jq '.cells[0]'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &yf, &rf)
		},
	}

	yf.register(cmd)
	cmd.Flags().StringVarP(&rf.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file or base path, - for stdout (default: heatmap-<year>)")
	cmd.Flags().BoolVarP(&rf.interactive, "interactive", "i", false, "embed hover and ripple script in the SVG")
	cmd.Flags().StringVar(&rf.endpoint, "endpoint", "", "URL clicks are posted to, {day} is replaced (implies --interactive)")
	cmd.Flags().StringVar(&rf.title, "title", "", "SVG document title")
	cmd.Flags().Float64Var(&rf.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().BoolVar(&rf.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&rf.refresh, "refresh", false, "ignore cached artifacts")

	return cmd
}

// runRender resolves inputs, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, yf *yearFlags, rf *renderFlags) error {
	formats := parseFormats(rf.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	resolved, err := yf.resolve(c, false)
	if err != nil {
		return err
	}
	opts := c.pipelineOptions()
	if err := yf.apply(resolved, &opts); err != nil {
		return err
	}
	opts.Formats = formats
	opts.Interactive = rf.interactive
	opts.ClickEndpoint = rf.endpoint
	opts.Title = rf.title
	opts.Scale = rf.scale
	opts.Refresh = rf.refresh

	runner, err := c.newRunner(ctx, rf.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d...", opts.Year))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		if errors.Is(err, errors.ErrCodeUnsupported) {
			printDetail("PDF output needs rsvg-convert (librsvg) on PATH")
		}
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for _, w := range result.Warnings {
		printWarning("Skipped %s", errors.UserMessage(w))
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		output:    rf.output,
		year:      opts.Year,
		stdout:    os.Stdout,
		isTTY:     stdoutIsTerminal,
	})
	if err != nil {
		return err
	}
	if rf.output == stdoutPath {
		return nil
	}

	printSuccess("Rendered %d", opts.Year)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Days, result.Stats.Completed, result.CacheInfo.RenderHit)
	printNewline()
	printNextStep("Explore", "heatgrid view --year "+fmt.Sprint(opts.Year))

	return nil
}
