// Package cli implements the heatgrid command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log. Settings
// come from the TOML config file and HEATGRID_* environment variables; flags
// override both.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, PDF or JSON heatmaps
//   - layout: Print the grid geometry of a year
//   - ripple: Click a day and print the ripple schedule
//   - view: Explore the heatmap interactively in the terminal
//   - serve: Serve the interactive heatmap over HTTP
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatgrid/pkg/errors"
)

// newLogger returns the CLI logger: HH:MM:SS.ms timestamps, filtered at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time appended, e.g.
// "Computed layout for 2025 (12ms) days=365".
func (p *progress) done(msg string, keyvals ...any) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, elapsed), keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logSkipped warns once per completed date the heatmap could not place.
func logSkipped(ctx context.Context, skipped []error) {
	l := loggerFromContext(ctx)
	for _, err := range skipped {
		l.Warn("skipped completed date", "reason", errors.UserMessage(err))
	}
}
