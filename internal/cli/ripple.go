package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/observability"
	"github.com/matzehuels/heatgrid/pkg/ripple"
)

// rippleCommand creates the ripple command, which simulates a click.
func (c *CLI) rippleCommand() *cobra.Command {
	var (
		yf     yearFlags
		asJSON bool
		limit  int
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "ripple <date>",
		Short: "Click a day and print the ripple schedule",
		Long: `Click a day and print the ripple schedule.

The clicked day is marked complete and every cell within the ripple's reach
gets a start delay proportional to its distance from the click. Clicks on
future days are ignored. With --save the completion is written back to the
dates file.`,
		Example: `  heatgrid ripple 2025-03-01 --today 2025-06-15
  heatgrid ripple today --dates done.txt --save`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRippleDate(time.Now),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRipple(cmd.Context(), args[0], &yf, asJSON, limit, save)
		},
	}

	yf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the ripple as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of schedule entries to list")
	cmd.Flags().BoolVar(&save, "save", false, "write the completion back to the dates file")

	return cmd
}

// runRipple performs the click and reports the schedule.
func (c *CLI) runRipple(ctx context.Context, arg string, yf *yearFlags, asJSON bool, limit int, save bool) error {
	resolved, err := yf.resolve(c, save)
	if err != nil {
		return err
	}
	if save && resolved.datesPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--save needs --dates or a configured dates file")
	}

	date := resolved.today
	if arg != "today" {
		if date, err = calendar.ParseDate(arg); err != nil {
			return err
		}
	}
	if yf.year == 0 {
		resolved.year = date.Year()
	} else if date.Year() != resolved.year {
		return errors.New(errors.ErrCodeInvalidDate, "%s is not in %d", date.Format(calendar.ISOLayout), resolved.year)
	}

	opts := c.pipelineOptions()
	if err := yf.apply(resolved, &opts); err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	set := dateio.NewDateSet(opts.Completed)
	added := false
	var h *heatmap.Heatmap
	h, err = heatmap.New(opts.Year, opts.Completed, opts.Today, func(t time.Time) {
		added = set.Add(t)
		h.SetCompleted(set.Dates())
	}, opts.HeatmapOptions()...)
	if err != nil {
		return err
	}
	logSkipped(ctx, h.Warnings())

	day := calendar.DayOfYear(date)
	r, err := h.Click(day)
	if err != nil {
		return err
	}
	entries := 0
	if r != nil {
		entries = len(r.Entries)
	}
	observability.Interaction().OnClick(ctx, day, entries)

	if r == nil {
		printWarning("%s is in the future; click ignored", date.Format(calendar.ISOLayout))
		return nil
	}

	if asJSON {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
	} else {
		printRipple(h, r, limit)
	}

	if save && added {
		if err := dateio.ExportDates(resolved.datesPath, set.Dates()); err != nil {
			return err
		}
		printSuccess("Saved %d completed dates", set.Len())
		printFile(resolved.datesPath)
	}
	return nil
}

// printRipple prints a summary and the earliest entries of r.
func printRipple(h *heatmap.Heatmap, r *ripple.Ripple, limit int) {
	origin, _ := h.Cell(r.Origin)
	col, row, _ := h.Layout().Coord(r.Origin)

	var wavefront float64
	for _, e := range r.Entries {
		wavefront = max(wavefront, e.DelayMs)
	}

	fmt.Println(StyleTitle.Render("Ripple " + r.ID))
	printNewline()
	printKeyValue("Origin", fmt.Sprintf("%s (day %d, column %d, row %d)", origin.Date, r.Origin, col, row))
	printKeyValue("Status", origin.Status)
	printKeyValue("Cells", fmt.Sprint(len(r.Entries)))
	printKeyValue("Wavefront", fmt.Sprintf("%sms", formatNum(round1(wavefront))))
	printKeyValue("Duration", r.Duration().Round(time.Millisecond).String())
	printNewline()

	if limit <= 0 {
		return
	}
	byDelay := slices.Clone(r.Entries)
	slices.SortStableFunc(byDelay, func(a, b ripple.Entry) int {
		switch {
		case a.DelayMs < b.DelayMs:
			return -1
		case a.DelayMs > b.DelayMs:
			return 1
		}
		return a.Day - b.Day
	})
	if len(byDelay) > limit {
		byDelay = byDelay[:limit]
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, 0, len(byDelay))
	for _, e := range byDelay {
		cell, _ := h.Cell(e.Day)
		rows = append(rows, []string{
			cell.Date,
			fmt.Sprint(e.Day),
			formatNum(round1(e.Distance)),
			formatNum(round1(e.DelayMs)) + "ms",
			e.FinalColor,
		})
	}
	fmt.Println(table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Date", "Day", "Distance", "Delay", "Final").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		}).
		Render())
	if n := len(r.Entries) - len(byDelay); n > 0 {
		printDetail("… %d more", n)
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
