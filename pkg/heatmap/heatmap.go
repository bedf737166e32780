package heatmap

import (
	"time"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/ripple"
	"github.com/matzehuels/heatgrid/pkg/status"
)

const (
	// Gutter is the width of the weekday-initial column left of the grid.
	Gutter = 16.0
	// LabelBand is the height reserved under the grid for month labels.
	LabelBand = 25.0
	// LabelSize is the font size of all labels.
	LabelSize = 10.0

	initialX        = 6.0
	initialBaseline = 0.75

	// TooltipOffsetX and TooltipOffsetY place the tooltip relative to the pointer.
	TooltipOffsetX = 10.0
	TooltipOffsetY = -20.0
	// TooltipPrefix precedes the date in the tooltip text.
	TooltipPrefix = "Date: "
)

// Option configures New.
type Option func(*Heatmap)

// WithLayout passes options to grid.Build.
func WithLayout(opts ...grid.Option) Option {
	return func(h *Heatmap) { h.layoutOpts = append(h.layoutOpts, opts...) }
}

// WithPalette sets the colors.
func WithPalette(p Palette) Option { return func(h *Heatmap) { h.palette = p } }

// WithRipple sets the ripple timing.
func WithRipple(cfg ripple.Config) Option { return func(h *Heatmap) { h.ripple = cfg } }

// WithTooltip sets the tooltip presenter.
func WithTooltip(t Tooltip) Option { return func(h *Heatmap) { h.tooltip = t } }

// Heatmap is the state of one render: layout, classification and the
// presentation collaborators.
type Heatmap struct {
	layoutOpts []grid.Option
	layout     grid.Layout
	classifier *status.Classifier
	palette    Palette
	ripple     ripple.Config
	tooltip    Tooltip
	onComplete func(time.Time)
	today      time.Time
	warnings   []error
}

// New builds the heatmap of year. Unparseable completed dates are skipped and
// reported by Warnings. onComplete may be nil.
//
// The heatmap never adds the clicked date itself. onComplete must record the
// date and pass the new set to [Heatmap.SetCompleted] before returning,
// otherwise the ripple settles the clicked cell on its old color.
func New(year int, completed []string, today time.Time, onComplete func(time.Time), opts ...Option) (*Heatmap, error) {
	if err := errors.ValidateYear(year); err != nil {
		return nil, err
	}
	h := &Heatmap{
		palette:    DefaultPalette(),
		ripple:     ripple.DefaultConfig(),
		tooltip:    noopTooltip{},
		onComplete: onComplete,
		today:      today,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.tooltip == nil {
		h.tooltip = noopTooltip{}
	}

	h.layout = grid.Build(year, h.layoutOpts...)
	if err := errors.ValidateDimensions(h.layout.SquareSize, h.layout.Padding, h.layout.MonthGap); err != nil {
		return nil, err
	}
	if err := h.palette.Validate(); err != nil {
		return nil, err
	}
	if err := h.ripple.Validate(); err != nil {
		return nil, err
	}
	h.SetCompleted(completed)
	return h, nil
}

// Layout returns the grid layout.
func (h *Heatmap) Layout() grid.Layout { return h.layout }

// Year returns the rendered year.
func (h *Heatmap) Year() int { return h.layout.Year }

// Today returns the today snapshot taken for this render.
func (h *Heatmap) Today() time.Time { return h.today }

// Palette returns the colors in use.
func (h *Heatmap) Palette() Palette { return h.palette }

// RippleConfig returns the ripple timing in use.
func (h *Heatmap) RippleConfig() ripple.Config { return h.ripple }

// Classifier returns the classifier for the current completed set.
func (h *Heatmap) Classifier() *status.Classifier { return h.classifier }

// Warnings returns the completed dates skipped by the last SetCompleted.
func (h *Heatmap) Warnings() []error { return h.warnings }

// Size returns the canvas size including the label gutter and band.
func (h *Heatmap) Size() (width, height float64) {
	return h.layout.Width + Gutter, h.layout.Height + LabelBand
}

// SetCompleted replaces the completed set. The layout is untouched.
func (h *Heatmap) SetCompleted(completed []string) []error {
	h.classifier, h.warnings = status.New(completed, h.today)
	return h.warnings
}

// Cell is the fully resolved state of one day.
type Cell struct {
	Day      int           `json:"day"`
	Date     string        `json:"date"`
	Position grid.Position `json:"position"`
	Class    status.Class  `json:"-"`
	Status   string        `json:"status"`
	IsToday  bool          `json:"is_today"`
	Fill     Color         `json:"fill"`
}

// Cell returns the state of day.
func (h *Heatmap) Cell(day int) (Cell, error) {
	date, err := calendar.DateOf(h.layout.Year, day)
	if err != nil {
		return Cell{}, err
	}
	class, isToday := h.classifier.Classify(date)
	return Cell{
		Day:      day,
		Date:     date.Format(calendar.ISOLayout),
		Position: h.layout.Positions[day],
		Class:    class,
		Status:   class.String(),
		IsToday:  isToday,
		Fill:     h.palette.Fill(class),
	}, nil
}

// Cells returns the state of every day in order.
func (h *Heatmap) Cells() []Cell {
	cells := make([]Cell, h.layout.Days())
	for day := range cells {
		cells[day], _ = h.Cell(day)
	}
	return cells
}

// RestingColor returns the fill a day settles on under the current completed set.
func (h *Heatmap) RestingColor(day int) (Color, error) {
	c, err := h.Cell(day)
	if err != nil {
		return Color{}, err
	}
	return c.Fill, nil
}

// Draw issues the full set of draw commands for the current state.
func (h *Heatmap) Draw(s Surface) {
	cell := h.layout.Cell()
	for i, initial := range calendar.Weekdays(h.layout.WeekStart) {
		s.Text(TextCmd{
			Kind:   WeekdayInitial,
			Text:   initial,
			X:      initialX,
			Y:      float64(i)*cell + h.layout.SquareSize*initialBaseline,
			Anchor: AnchorMiddle,
			Size:   LabelSize,
			Fill:   h.palette.Label,
		})
	}

	radius := h.layout.CornerRadius()
	for _, c := range h.Cells() {
		cmd := RectCmd{
			Day:     c.Day,
			Date:    c.Date,
			X:       c.Position.X + Gutter,
			Y:       c.Position.Y,
			Size:    h.layout.SquareSize,
			Radius:  radius,
			Fill:    c.Fill,
			Class:   c.Class,
			IsToday: c.IsToday,
		}
		if c.IsToday {
			cmd.Stroke = h.palette.Today
			cmd.StrokeWidth = h.palette.TodayWidth
		}
		s.Rect(cmd)
	}

	for _, l := range h.layout.MonthLabels() {
		s.Text(TextCmd{
			Kind:   MonthLabel,
			Text:   l.Text,
			X:      l.X + Gutter,
			Y:      l.Y,
			Anchor: AnchorMiddle,
			Size:   LabelSize,
			Fill:   h.palette.Label,
		})
	}
}
