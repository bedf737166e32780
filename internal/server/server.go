// Package server serves an interactive heatmap over HTTP.
//
// The server owns an in-memory completed set seeded at startup. Clicks posted
// by the interactive SVG add to the set; every other endpoint renders from a
// snapshot of it through the shared pipeline runner, so artifacts are cached
// per completed set and day.
//
// # Routes
//
//	GET  /health             liveness check
//	GET  /                   HTML page embedding the interactive SVG
//	GET  /heatmap.{format}   svg (interactive), png, pdf or json
//	GET  /api/layout         grid geometry and classification (JSON)
//	GET  /api/completed      completed dates
//	POST /api/click/{day}    click a cell; returns its new status and the ripple
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

// ClickEndpoint is the URL template embedded in served SVGs.
const ClickEndpoint = "/api/click/{day}"

const shutdownTimeout = 5 * time.Second

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string
	// Options is the template for every render. Completed and Today are
	// replaced per request.
	Options pipeline.Options
	// Completed seeds the completed set.
	Completed []string
	// DatesPath, when set, receives the completed set after every new completion.
	DatesPath string
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Server is the HTTP front end.
type Server struct {
	addr      string
	base      pipeline.Options
	runner    *pipeline.Runner
	logger    *log.Logger
	dates     *dateio.DateSet
	datesPath string
	now       func() time.Time

	// mu serializes clicks so each one sees the previous click's completion.
	mu sync.Mutex
}

// New creates a server. runner may be shared with other callers.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	base := cfg.Options
	base.Today = cfg.Now()
	if err := base.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	base.Today = time.Time{}
	base.Logger = logger

	return &Server{
		addr:      cfg.Addr,
		base:      base,
		runner:    runner,
		logger:    logger,
		dates:     dateio.NewDateSet(cfg.Completed),
		datesPath: cfg.DatesPath,
		now:       cfg.Now,
	}, nil
}

// Completed returns a snapshot of the completed set.
func (s *Server) Completed() []string { return s.dates.Dates() }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// options returns the render options for the current state.
func (s *Server) options(formats ...string) pipeline.Options {
	opts := s.base
	opts.Today = s.now()
	opts.Completed = s.dates.Dates()
	opts.Formats = formats
	return opts
}
