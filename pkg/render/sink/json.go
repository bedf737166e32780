package sink

import (
	"encoding/json"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	"github.com/matzehuels/heatgrid/pkg/ripple"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	ripple *ripple.Ripple
}

// WithJSONRipple attaches a ripple schedule to the output.
func WithJSONRipple(r *ripple.Ripple) JSONOption { return func(j *jsonRenderer) { j.ripple = r } }

type jsonOutput struct {
	Year         int              `json:"year"`
	Width        float64          `json:"width"`
	Height       float64          `json:"height"`
	GridWidth    float64          `json:"grid_width"`
	GridHeight   float64          `json:"grid_height"`
	SquareSize   float64          `json:"square_size"`
	Padding      float64          `json:"padding"`
	MonthGap     float64          `json:"month_gap"`
	CornerRadius float64          `json:"corner_radius"`
	WeekStart    string           `json:"week_start"`
	Today        string           `json:"today"`
	Months       []calendar.Month `json:"months"`
	Labels       []grid.Label     `json:"labels"`
	Cells        []heatmap.Cell   `json:"cells"`
	Warnings     []string         `json:"warnings,omitempty"`
	Ripple       *ripple.Ripple   `json:"ripple,omitempty"`
}

// RenderJSON exports the heatmap's layout and classification.
func RenderJSON(h *heatmap.Heatmap, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	l := h.Layout()
	w, ht := h.Size()
	out := jsonOutput{
		Year:         l.Year,
		Width:        w,
		Height:       ht,
		GridWidth:    l.Width,
		GridHeight:   l.Height,
		SquareSize:   l.SquareSize,
		Padding:      l.Padding,
		MonthGap:     l.MonthGap,
		CornerRadius: l.CornerRadius(),
		WeekStart:    l.WeekStart.String(),
		Today:        h.Today().Format(calendar.ISOLayout),
		Months:       l.Months[:],
		Labels:       l.MonthLabels(),
		Cells:        h.Cells(),
		Ripple:       r.ripple,
	}
	for _, warn := range h.Warnings() {
		out.Warnings = append(out.Warnings, warn.Error())
	}
	return json.MarshalIndent(out, "", "  ")
}
