package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

// =============================================================================
// Test setup helpers
// =============================================================================

var today = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func setupTest(t *testing.T, datesPath string) (*Server, http.Handler) {
	t.Helper()
	logger := log.New(io.Discard)
	opts := pipeline.DefaultOptions()
	opts.Year = 2025
	srv, err := New(Config{
		Options:   opts,
		Completed: []string{"2025-03-01"},
		DatesPath: datesPath,
		Now:       func() time.Time { return today },
	}, pipeline.NewRunner(nil, nil, logger), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// =============================================================================
// Tests
// =============================================================================

func TestHealth(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestHeatmapSVG(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/heatmap.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Cache-Control = %q", cc)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="day-59"`, `data-status="complete"`, ClickEndpoint, "<script>"} {
		if !strings.Contains(body, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestHeatmapPNG(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/heatmap.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}
}

func TestHeatmapBadFormat(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/heatmap.gif")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorResponse
	decode(t, rec, &body)
	if body.Error.Code != "INVALID_FORMAT" {
		t.Errorf("code = %q, want INVALID_FORMAT", body.Error.Code)
	}
}

func TestIndex(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("index should inline the svg")
	}
}

func TestLayout(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/api/layout")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Year  int `json:"year"`
		Cells []struct {
			Status string `json:"status"`
		} `json:"cells"`
	}
	decode(t, rec, &body)
	if body.Year != 2025 || len(body.Cells) != 365 {
		t.Errorf("year = %d, cells = %d", body.Year, len(body.Cells))
	}
	if body.Cells[59].Status != "complete" || body.Cells[200].Status != "future" {
		t.Errorf("statuses = %q, %q", body.Cells[59].Status, body.Cells[200].Status)
	}
}

func TestClick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dates.json")
	srv, h := setupTest(t, path)

	rec := do(t, h, http.MethodPost, "/api/click/100")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var resp clickResponse
	decode(t, rec, &resp)

	if resp.Date != "2025-04-11" || resp.Status != "complete" || resp.Ignored {
		t.Errorf("response = %+v", resp)
	}
	if resp.Ripple == nil {
		t.Fatal("expected a ripple")
	}
	if len(resp.Ripple.Entries) != 365 {
		t.Errorf("entries = %d, want 365", len(resp.Ripple.Entries))
	}
	origin := resp.Ripple.Entries[100]
	if origin.DelayMs != 0 || origin.FinalColor != "#ba6306" {
		t.Errorf("origin entry = %+v", origin)
	}

	want := []string{"2025-03-01", "2025-04-11"}
	if got := srv.Completed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Completed() = %v, want %v", got, want)
	}
	saved, err := dateio.ImportDates(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(saved, want) {
		t.Errorf("saved = %v, want %v", saved, want)
	}

	// The next render reflects the click.
	rec = do(t, h, http.MethodGet, "/api/completed")
	var body struct {
		Dates []string `json:"dates"`
	}
	decode(t, rec, &body)
	if !reflect.DeepEqual(body.Dates, want) {
		t.Errorf("/api/completed = %v, want %v", body.Dates, want)
	}
}

func TestClickFutureIgnored(t *testing.T) {
	srv, h := setupTest(t, "")
	rec := do(t, h, http.MethodPost, "/api/click/200")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp clickResponse
	decode(t, rec, &resp)
	if !resp.Ignored || resp.Status != "future" || resp.Ripple != nil {
		t.Errorf("response = %+v", resp)
	}
	if n := len(srv.Completed()); n != 1 {
		t.Errorf("completed = %d, want 1", n)
	}
}

func TestClickErrors(t *testing.T) {
	_, h := setupTest(t, "")
	tests := []struct {
		path   string
		status int
		code   string
	}{
		{"/api/click/365", http.StatusNotFound, "OUT_OF_RANGE"},
		{"/api/click/-1", http.StatusNotFound, "OUT_OF_RANGE"},
		{"/api/click/abc", http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body errorResponse
			decode(t, rec, &body)
			if body.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", body.Error.Code, tt.code)
			}
		})
	}
}

func TestClickMethodNotAllowed(t *testing.T) {
	_, h := setupTest(t, "")
	rec := do(t, h, http.MethodGet, "/api/click/10")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
