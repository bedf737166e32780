package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatgrid/internal/server"
)

// serveCommand creates the serve command for the HTTP front end.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		yf      yearFlags
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive heatmap over HTTP",
		Long: `Serve the interactive heatmap over HTTP.

The page at / embeds an SVG whose cells post clicks back to the server. New
completions are kept in memory and, when a dates file is configured, written
back to it after every click.`,
		Example: `  heatgrid serve --dates done.txt
  heatgrid serve --addr :9090 --year 2024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &yf, addr, noCache)
		},
	}

	yf.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// runServe serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, yf *yearFlags, addr string, noCache bool) error {
	resolved, err := yf.resolve(c, true)
	if err != nil {
		return err
	}
	if addr == "" {
		addr = c.Config.Server.Addr
	}

	opts := c.pipelineOptions()
	if err := yf.apply(resolved, &opts); err != nil {
		return err
	}
	completed := opts.Completed
	opts.Completed = nil

	var now func() time.Time
	if yf.today != "" {
		fixed := resolved.today
		now = func() time.Time { return fixed }
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv, err := server.New(server.Config{
		Addr:      addr,
		Options:   opts,
		Completed: completed,
		DatesPath: resolved.datesPath,
		Now:       now,
	}, runner, loggerFromContext(ctx))
	if err != nil {
		return err
	}

	printSuccess("Serving heatmap %d", opts.Year)
	printKeyValue("URL", StyleLink.Render(serverURL(addr)))
	if resolved.datesPath != "" {
		printKeyValue("Dates", resolved.datesPath)
	}
	printDetail("Press Ctrl+C to stop")
	printNewline()

	if err := srv.ListenAndServe(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return err
	}
	printInfo("Stopped with %d completed dates", len(srv.Completed()))
	return nil
}

// serverURL turns a listen address into a browsable URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return fmt.Sprintf("http://%s/", addr)
}
