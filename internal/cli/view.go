package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/errors"
	dateio "github.com/matzehuels/heatgrid/pkg/io"
)

// viewCommand creates the view command for the interactive terminal heatmap.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		yf   yearFlags
		save bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the heatmap in the terminal",
		Long: `Explore the heatmap in the terminal.

Click a day with the mouse, or move with the arrow keys and press enter, to
mark it complete and watch the ripple spread across the grid. Future days
cannot be completed. With --save the session's completions are written back
to the dates file on exit.`,
		Example: `  heatgrid view
  heatgrid view --year 2024 --dates done.txt --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), &yf, save)
		},
	}

	yf.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "write new completions back to the dates file on exit")

	return cmd
}

// runView runs the bubbletea program until the user quits.
func (c *CLI) runView(ctx context.Context, yf *yearFlags, save bool) error {
	resolved, err := yf.resolve(c, save)
	if err != nil {
		return err
	}
	if save && resolved.datesPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--save needs --dates or a configured dates file")
	}

	opts := c.pipelineOptions()
	if err := yf.apply(resolved, &opts); err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	set := dateio.NewDateSet(opts.Completed)
	m, err := NewHeatmapModel(ctx, opts.Year, set, opts.Today, opts.HeatmapOptions()...)
	if err != nil {
		return err
	}
	logSkipped(ctx, m.h.Warnings())

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	if m.Added() == 0 {
		printInfo("No new completions")
		return nil
	}
	printSuccess("Completed %d new days", m.Added())
	if !save {
		printNextStep("Keep them", "heatgrid view --dates <file> --save")
		return nil
	}
	if err := dateio.ExportDates(resolved.datesPath, set.Dates()); err != nil {
		return err
	}
	printFile(resolved.datesPath)
	return nil
}
