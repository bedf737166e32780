package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/observability"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
	"github.com/matzehuels/heatgrid/pkg/ripple"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// health handles GET /health.
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// index handles GET / with a page that inlines the interactive SVG.
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	svg, err := s.render(r, pipeline.FormatSVG)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!doctype html>\n<html>\n<head><meta charset=\"utf-8\"><title>heatgrid %d</title></head>\n<body style=\"margin:24px\">\n%s</body>\n</html>\n",
		s.base.Year, svg)
}

// heatmap handles GET /heatmap.{format}.
func (s *Server) heatmap(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	data, err := s.render(r, format)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Write(data)
}

// layout handles GET /api/layout.
func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	data, err := s.render(r, pipeline.FormatJSON)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.Write(data)
}

// completed handles GET /api/completed.
func (s *Server) completed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"dates": s.dates.Dates()})
}

// clickResponse is the body of POST /api/click/{day}.
type clickResponse struct {
	Day     int            `json:"day"`
	Date    string         `json:"date"`
	Status  string         `json:"status"`
	Ignored bool           `json:"ignored,omitempty"`
	Ripple  *ripple.Ripple `json:"ripple,omitempty"`
}

// click handles POST /api/click/{day}.
func (s *Server) click(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "day must be an integer, got %q", chi.URLParam(r, "day")))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	opts := s.options()
	added := false
	var h *heatmap.Heatmap
	onComplete := func(date time.Time) {
		if s.dates.Add(date) {
			added = true
		}
		h.SetCompleted(s.dates.Dates())
	}
	h, err = heatmap.New(opts.Year, opts.Completed, opts.Today, onComplete, opts.HeatmapOptions()...)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rp, err := h.Click(day)
	if err != nil {
		writeError(w, err)
		return
	}
	cell, _ := h.Cell(day)
	resp := clickResponse{Day: day, Date: cell.Date, Status: cell.Status}
	if rp == nil {
		resp.Ignored = true
		observability.Interaction().OnClick(r.Context(), day, 0)
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp.Ripple = rp
	observability.Interaction().OnClick(r.Context(), day, len(rp.Entries))

	if added {
		s.logger.Info("completed", "date", cell.Date, "total", s.dates.Len())
		if s.datesPath != "" {
			if err := dateio.ExportDates(s.datesPath, s.dates.Dates()); err != nil {
				s.logger.Error("save completed dates", "path", s.datesPath, "error", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// render produces one artifact for the current state.
func (s *Server) render(r *http.Request, format string) ([]byte, error) {
	opts := s.options(format)
	if format == pipeline.FormatSVG {
		opts.ClickEndpoint = ClickEndpoint
		opts.Title = fmt.Sprintf("heatgrid %d", opts.Year)
	}
	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return nil, err
	}
	return result.Artifacts[format], nil
}

// fail logs unexpected errors and writes the error response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if statusFor(errors.GetCode(err)) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, err)
}
