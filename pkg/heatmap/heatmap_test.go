package heatmap

import (
	"testing"
	"time"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/status"
)

var june15 = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

type recordingSurface struct {
	rects []RectCmd
	texts []TextCmd
}

func (s *recordingSurface) Rect(c RectCmd) { s.rects = append(s.rects, c) }
func (s *recordingSurface) Text(c TextCmd) { s.texts = append(s.texts, c) }

type tooltipCall struct {
	text    string
	x, y    float64
	visible bool
}

type recordingTooltip struct{ calls []tooltipCall }

func (t *recordingTooltip) Show(text string, x, y float64, visible bool) {
	t.calls = append(t.calls, tooltipCall{text, x, y, visible})
}

func (t *recordingTooltip) last() tooltipCall { return t.calls[len(t.calls)-1] }

func TestClickCompletesDay(t *testing.T) {
	var completed []string
	var calls []time.Time
	var h *Heatmap
	h, err := New(2025, nil, june15, func(d time.Time) {
		calls = append(calls, d)
		completed = append(completed, d.Format("2006-01-02"))
		h.SetCompleted(completed)
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, err := h.Click(59)
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if r == nil {
		t.Fatal("Click on a past day returned no ripple")
	}

	if len(calls) != 1 {
		t.Fatalf("callback invoked %d times, want 1", len(calls))
	}
	if want := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC); !calls[0].Equal(want) {
		t.Errorf("callback date = %v, want %v", calls[0], want)
	}
	if len(r.Entries) != 365 {
		t.Errorf("len(Entries) = %d, want 365", len(r.Entries))
	}
	self, _ := r.Entry(59)
	if self.DelayMs != 0 {
		t.Errorf("clicked delay = %v, want 0", self.DelayMs)
	}
}

func TestRippleSettlesOnUpdatedState(t *testing.T) {
	var h *Heatmap
	h, err := New(2025, nil, june15, func(d time.Time) {
		h.SetCompleted([]string{d.Format("2006-01-02")})
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, _ := h.Click(59)
	if !r.Settled {
		t.Fatal("ripple returned unsettled")
	}
	tests := []struct {
		day  int
		want string
	}{
		{59, "#ba6306"},
		{60, "rgba(0, 0, 0, 0.2)"},
		{200, "rgba(0, 0, 0, 0.05)"},
	}
	for _, tt := range tests {
		e, ok := r.Entry(tt.day)
		if !ok {
			t.Fatalf("day %d missing", tt.day)
		}
		if e.FinalColor != tt.want {
			t.Errorf("day %d FinalColor = %q, want %q", tt.day, e.FinalColor, tt.want)
		}
	}
}

func TestRippleSettlesWithoutSetCompleted(t *testing.T) {
	var got time.Time
	h, err := New(2025, nil, june15, func(d time.Time) { got = d })
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, _ := h.Click(59)
	if got.IsZero() {
		t.Fatal("callback not invoked")
	}
	e, _ := r.Entry(59)
	if e.FinalColor != "rgba(0, 0, 0, 0.2)" {
		t.Errorf("FinalColor = %q, want the unchanged past color", e.FinalColor)
	}
}

func TestClickFutureIsNoop(t *testing.T) {
	calls := 0
	tip := &recordingTooltip{}
	h, err := New(2025, nil, june15, func(time.Time) { calls++ }, WithTooltip(tip))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, err := h.Click(200)
	if err != nil {
		t.Fatalf("Click: %v", err)
	}
	if r != nil {
		t.Errorf("future click scheduled %d entries", len(r.Entries))
	}
	if calls != 0 {
		t.Errorf("callback invoked %d times, want 0", calls)
	}
	if len(tip.calls) == 0 || tip.last().visible {
		t.Error("future click should still hide the tooltip")
	}
}

func TestClickToday(t *testing.T) {
	calls := 0
	h, _ := New(2025, nil, june15, func(time.Time) { calls++ })

	r, err := h.Click(165)
	if err != nil || r == nil {
		t.Fatalf("Click(today) = %v, %v", r, err)
	}
	if calls != 1 {
		t.Errorf("callback invoked %d times, want 1", calls)
	}
}

func TestEventsOutOfRange(t *testing.T) {
	h, _ := New(2025, nil, june15, nil)

	if _, err := h.Click(365); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("Click(365) err = %v, want OUT_OF_RANGE", err)
	}
	if err := h.HoverEnter(-1, 0, 0); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("HoverEnter(-1) err = %v, want OUT_OF_RANGE", err)
	}
	if err := h.HoverMove(400, 0, 0); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("HoverMove(400) err = %v, want OUT_OF_RANGE", err)
	}
	if _, err := h.RestingColor(365); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("RestingColor(365) err = %v, want OUT_OF_RANGE", err)
	}
}

func TestTooltipLifecycle(t *testing.T) {
	tip := &recordingTooltip{}
	h, _ := New(2025, nil, june15, nil, WithTooltip(tip))

	if err := h.HoverEnter(59, 100, 200); err != nil {
		t.Fatalf("HoverEnter: %v", err)
	}
	want := tooltipCall{"Date: Sat Mar 01 2025", 110, 180, true}
	if got := tip.last(); got != want {
		t.Errorf("after enter = %+v, want %+v", got, want)
	}

	_ = h.HoverMove(59, 120, 200)
	if got := tip.last(); got.x != 130 || !got.visible {
		t.Errorf("after move = %+v", got)
	}

	_, _ = h.Click(59)
	if tip.last().visible {
		t.Error("tooltip still visible after click")
	}

	_ = h.HoverEnter(0, 0, 0)
	h.HoverLeave()
	if tip.last().visible {
		t.Error("tooltip still visible after leave")
	}
}

func TestDraw(t *testing.T) {
	h, _ := New(2025, []string{"2025-03-01"}, june15, nil)
	s := &recordingSurface{}
	h.Draw(s)

	if len(s.rects) != 365 {
		t.Fatalf("rects = %d, want 365", len(s.rects))
	}
	initials, labels := 0, 0
	for _, txt := range s.texts {
		switch txt.Kind {
		case WeekdayInitial:
			initials++
		case MonthLabel:
			labels++
		}
	}
	if initials != 7 || labels != 12 {
		t.Errorf("initials = %d, labels = %d; want 7 and 12", initials, labels)
	}

	first := s.texts[0]
	if first.Text != "S" || first.X != 6 || first.Y != 13.5 {
		t.Errorf("first initial = %+v", first)
	}

	jan1 := s.rects[0]
	if jan1.X != 16 || jan1.Y != 61.5 || jan1.Size != 18 || jan1.Radius != 3 {
		t.Errorf("jan 1 rect = %+v", jan1)
	}

	outlined := 0
	for _, r := range s.rects {
		if r.StrokeWidth > 0 {
			outlined++
			if r.Day != 165 || r.Stroke.CSS() != "#ff0000" {
				t.Errorf("unexpected outline on %+v", r)
			}
		}
	}
	if outlined != 1 {
		t.Errorf("outlined cells = %d, want 1", outlined)
	}
	if got := s.rects[59].Fill.CSS(); got != "#ba6306" {
		t.Errorf("mar 1 fill = %q", got)
	}
}

func TestDrawIsIdempotent(t *testing.T) {
	h, _ := New(2025, []string{"2025-01-10"}, june15, nil)
	a, b := &recordingSurface{}, &recordingSurface{}
	h.Draw(a)
	h.Draw(b)
	for i := range a.rects {
		if a.rects[i] != b.rects[i] {
			t.Fatalf("rect %d differs between draws", i)
		}
	}
}

func TestSize(t *testing.T) {
	h, _ := New(2025, nil, june15, nil)
	w, ht := h.Size()
	if w != 1527.5 || ht != 168.5 {
		t.Errorf("Size() = %v x %v, want 1527.5 x 168.5", w, ht)
	}
}

func TestCellsAndWarnings(t *testing.T) {
	h, err := New(2025, []string{"2025-03-01", "not a date", "2025-03-01"}, june15, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if n := len(h.Warnings()); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}

	cells := h.Cells()
	counts := map[status.Class]int{}
	for _, c := range cells {
		counts[c.Class]++
	}
	if counts[status.PastComplete] != 1 || counts[status.Future] != 199 || counts[status.PastIncomplete] != 165 {
		t.Errorf("class counts = %v", counts)
	}
	if cells[59].Date != "2025-03-01" || cells[59].Status != "complete" {
		t.Errorf("cell 59 = %+v", cells[59])
	}
	if !cells[165].IsToday {
		t.Error("cell 165 should be today")
	}
}

func TestSetCompletedKeepsLayout(t *testing.T) {
	h, _ := New(2025, nil, june15, nil, WithLayout(grid.WithSquareSize(10)))
	before := h.Layout()
	h.SetCompleted([]string{"2025-02-02"})

	if h.Layout().Width != before.Width {
		t.Error("SetCompleted changed the layout")
	}
	if c, _ := h.RestingColor(32); c != h.Palette().Complete {
		t.Errorf("RestingColor(32) = %+v, want complete", c)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		year int
		opts []Option
		code errors.Code
	}{
		{"year", 1500, nil, errors.ErrCodeInvalidYear},
		{"square", 2025, []Option{WithLayout(grid.WithSquareSize(0))}, errors.ErrCodeInvalidInput},
		{"palette", 2025, []Option{WithPalette(Palette{})}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.year, nil, june15, nil, tt.opts...); !errors.Is(err, tt.code) {
				t.Errorf("New() err = %v, want %s", err, tt.code)
			}
		})
	}
}
