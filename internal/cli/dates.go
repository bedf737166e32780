package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/config"
	"github.com/matzehuels/heatgrid/pkg/errors"
	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

// yearFlags are the flags shared by every command that builds a heatmap.
type yearFlags struct {
	cmd *cobra.Command

	year  int
	dates string
	today string

	squareSize float64
	padding    float64
	monthGap   float64
	weekStart  string
}

// register adds the flags to cmd.
func (f *yearFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().IntVarP(&f.year, "year", "y", 0, "year to draw (default: config year or the current year)")
	cmd.Flags().StringVarP(&f.dates, "dates", "d", "", "completed dates file: JSON array or one date per line (default: config dates)")
	cmd.Flags().StringVar(&f.today, "today", "", "override today's date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.squareSize, "square-size", 0, "cell side length")
	cmd.Flags().Float64Var(&f.padding, "padding", 0, "space between cells")
	cmd.Flags().Float64Var(&f.monthGap, "month-gap", 0, "extra space between months")
	cmd.Flags().StringVar(&f.weekStart, "week-start", "", "weekday on the top row (sunday, monday, ...)")
	_ = cmd.RegisterFlagCompletionFunc("week-start", completeWeekdays)
}

// resolvedYear is the outcome of resolving yearFlags against the config.
type resolvedYear struct {
	year      int
	today     time.Time
	datesPath string
	completed []string
}

// resolve reads the dates file and settles year and today. A missing dates
// file is an error unless allowMissing is set.
func (f *yearFlags) resolve(c *CLI, allowMissing bool) (resolvedYear, error) {
	var r resolvedYear

	r.today = time.Now()
	if f.today != "" {
		t, err := calendar.ParseDate(f.today)
		if err != nil {
			return r, err
		}
		r.today = t
	}

	r.year = f.year
	if r.year == 0 {
		r.year = c.Config.ResolveYear(r.today)
	}
	if err := errors.ValidateYear(r.year); err != nil {
		return r, err
	}

	r.datesPath = f.dates
	if r.datesPath == "" {
		r.datesPath = c.Config.Dates
	}
	if r.datesPath == "" {
		return r, nil
	}
	r.datesPath = config.ExpandHome(r.datesPath)

	completed, err := dateio.ImportDates(r.datesPath)
	if err != nil {
		if allowMissing && errors.Is(err, errors.ErrCodeFileNotFound) {
			c.Logger.Debug("dates file does not exist yet", "path", r.datesPath)
			return r, nil
		}
		return r, err
	}
	r.completed = completed
	c.Logger.Debug("loaded completed dates", "path", r.datesPath, "count", len(completed))
	return r, nil
}

// apply copies the resolved year and the geometry overrides into opts.
// Geometry flags override the config only when given, so an explicit 0 sticks.
func (f *yearFlags) apply(r resolvedYear, opts *pipeline.Options) error {
	opts.Year = r.year
	opts.Today = r.today
	opts.Completed = r.completed
	if f.changed("square-size") {
		opts.SquareSize = f.squareSize
	}
	if f.changed("padding") {
		opts.Padding = f.padding
	}
	if f.changed("month-gap") {
		opts.MonthGap = f.monthGap
	}
	if f.weekStart != "" {
		wd, err := calendar.ParseWeekday(f.weekStart)
		if err != nil {
			return err
		}
		opts.WeekStart = wd
	}
	return nil
}

func (f *yearFlags) changed(name string) bool {
	return f.cmd != nil && f.cmd.Flags().Changed(name)
}
