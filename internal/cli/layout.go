package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
)

// layoutCommand creates the layout command for inspecting the grid geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		yf      yearFlags
		asJSON  bool
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the grid layout of a year",
		Long: `Show the grid layout of a year.

Prints one row per month with its week columns, the weekday of the 1st and the
x offset of its first column, followed by the grid and canvas size. With --json
the full layout, including every cell position, is written instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), &yf, asJSON, output, noCache)
		},
	}

	yf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the JSON layout to a file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout computes the layout and prints it.
func (c *CLI) runLayout(ctx context.Context, yf *yearFlags, asJSON bool, output string, noCache bool) error {
	resolved, err := yf.resolve(c, true)
	if err != nil {
		return err
	}
	opts := c.pipelineOptions()
	if err := yf.apply(resolved, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	progress := newProgress(c.Logger)
	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	progress.done(fmt.Sprintf("Computed layout for %d", l.Year), "days", l.Days(), "cached", cacheHit)

	if asJSON || output != "" {
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if output == "" || output == stdoutPath {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Layout written")
		printFile(output)
		return nil
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Layout %d", l.Year)))
	printNewline()
	fmt.Println(monthTable(l))
	printNewline()

	w, h := l.Width, l.Height
	printKeyValue("Columns", fmt.Sprint(l.Columns))
	printKeyValue("Grid", fmt.Sprintf("%s × %s", formatNum(w), formatNum(h)))
	printKeyValue("Canvas", fmt.Sprintf("%s × %s", formatNum(w+heatmap.Gutter), formatNum(h+heatmap.LabelBand)))
	printKeyValue("Cell", fmt.Sprintf("%s + %s padding, radius %s", formatNum(l.SquareSize), formatNum(l.Padding), formatNum(l.CornerRadius())))
	printKeyValue("Week start", l.WeekStart.String())
	printStats(l.Days(), len(resolved.completed), cacheHit)
	return nil
}

// monthTable renders one row per month.
func monthTable(l grid.Layout) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	labels := l.MonthLabels()

	rows := make([][]string, 0, len(l.Months))
	for i, m := range l.Months {
		pos := l.MustPosition(m.StartDayOfYear)
		first := time.Weekday((int(l.WeekStart) + m.FirstDayOfWeek) % calendar.DaysPerWeek)
		rows = append(rows, []string{
			m.Name,
			fmt.Sprint(m.DayCount),
			first.String()[:3],
			fmt.Sprint(m.StartDayOfYear),
			fmt.Sprint(m.Weeks()),
			formatNum(pos.X),
			formatNum(labels[i].X),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Month", "Days", "1st", "Day", "Weeks", "X", "Label X").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return StyleHighlight.Padding(0, 1)
			}
			return StyleNumber.Padding(0, 1)
		}).
		Render()
}

// formatNum prints a float without trailing zeros.
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
