package grid

import (
	"math"
	"time"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
)

const (
	// DefaultSquareSize is the side length of a day cell.
	DefaultSquareSize = 18.0
	// DefaultPadding is the space between adjacent cells.
	DefaultPadding = 2.5
	// DefaultMonthGap is the extra horizontal space between months.
	DefaultMonthGap = 20.0

	// cornerRadiusRatio is the fixed rounding policy for cells.
	cornerRadiusRatio = 0.15

	// labelOffset is the distance from the grid bottom to month label baselines.
	labelOffset = 16.0
)

// Position is the top-left corner of a cell in layout units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Label is a month label anchored at its horizontal center.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Layout is the computed grid for one year. It is a value: building it twice
// with the same inputs yields equal layouts.
type Layout struct {
	Year       int                `json:"year"`
	SquareSize float64            `json:"square_size"`
	Padding    float64            `json:"padding"`
	MonthGap   float64            `json:"month_gap"`
	WeekStart  time.Weekday       `json:"week_start"`
	Months     [12]calendar.Month `json:"months"`
	Positions  []Position         `json:"positions"`
	Columns    int                `json:"columns"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
}

// Option configures Build.
type Option func(*Layout)

// WithSquareSize sets the cell side length.
func WithSquareSize(s float64) Option { return func(l *Layout) { l.SquareSize = s } }

// WithPadding sets the gap between cells.
func WithPadding(p float64) Option { return func(l *Layout) { l.Padding = p } }

// WithMonthGap sets the extra gap inserted between months.
func WithMonthGap(g float64) Option { return func(l *Layout) { l.MonthGap = g } }

// WithWeekStart sets the weekday shown on the top row.
func WithWeekStart(wd time.Weekday) Option { return func(l *Layout) { l.WeekStart = wd } }

// Build computes the layout of year.
func Build(year int, opts ...Option) Layout {
	l := Layout{
		Year:       year,
		SquareSize: DefaultSquareSize,
		Padding:    DefaultPadding,
		MonthGap:   DefaultMonthGap,
		WeekStart:  time.Sunday,
	}
	for _, opt := range opts {
		opt(&l)
	}

	l.Months = calendar.Months(year, l.WeekStart)
	for _, m := range l.Months {
		l.Columns += m.Weeks()
	}

	cell := l.Cell()
	l.Width = float64(l.Columns)*cell + float64(len(l.Months)-1)*l.MonthGap
	l.Height = calendar.DaysPerWeek * cell

	l.Positions = make([]Position, calendar.DaysIn(year))
	for day := range l.Positions {
		l.Positions[day] = l.place(day)
	}
	return l
}

// Cell returns the pitch of the grid: square size plus padding.
func (l Layout) Cell() float64 { return l.SquareSize + l.Padding }

// Days returns the number of cells in the layout.
func (l Layout) Days() int { return len(l.Positions) }

// CornerRadius returns max(1, round(squareSize*0.15)).
func (l Layout) CornerRadius() float64 {
	return math.Max(1, math.Round(l.SquareSize*cornerRadiusRatio))
}

// MonthOf returns the index of the last month whose start is <= day.
func (l Layout) MonthOf(day int) (int, error) {
	if err := l.check(day); err != nil {
		return 0, err
	}
	return l.monthOf(day), nil
}

func (l Layout) monthOf(day int) int {
	idx := 0
	for i, m := range l.Months {
		if m.StartDayOfYear > day {
			break
		}
		idx = i
	}
	return idx
}

// Position returns the top-left corner of the cell for day.
func (l Layout) Position(day int) (Position, error) {
	if err := l.check(day); err != nil {
		return Position{}, err
	}
	return l.Positions[day], nil
}

// MustPosition is like Position but panics on an out-of-range day.
func (l Layout) MustPosition(day int) Position {
	p, err := l.Position(day)
	if err != nil {
		panic(err)
	}
	return p
}

// Coord returns the grid column and row of day.
func (l Layout) Coord(day int) (col, row int, err error) {
	if err := l.check(day); err != nil {
		return 0, 0, err
	}
	col, row, _ = l.coord(day)
	return col, row, nil
}

func (l Layout) coord(day int) (col, row, month int) {
	month = l.monthOf(day)
	m := l.Months[month]
	adjusted := m.FirstDayOfWeek + day - m.StartDayOfYear
	return l.firstColumn(month) + adjusted/calendar.DaysPerWeek, adjusted % calendar.DaysPerWeek, month
}

// firstColumn sums the week counts of all months before month.
func (l Layout) firstColumn(month int) int {
	col := 0
	for _, m := range l.Months[:month] {
		col += m.Weeks()
	}
	return col
}

func (l Layout) place(day int) Position {
	col, row, month := l.coord(day)
	cell := l.Cell()
	return Position{
		X: float64(col)*cell + float64(month)*l.MonthGap,
		Y: float64(row) * cell,
	}
}

// DayAt returns the day whose square contains the point (x, y). Points in the
// padding between cells or outside the grid report false.
func (l Layout) DayAt(x, y float64) (int, bool) {
	cell := l.Cell()
	if cell <= 0 || x < 0 || y < 0 {
		return 0, false
	}
	row := int(y / cell)
	if row >= calendar.DaysPerWeek || y-float64(row)*cell >= l.SquareSize {
		return 0, false
	}
	col := 0
	for i, m := range l.Months {
		left := float64(col)*cell + float64(i)*l.MonthGap
		col += m.Weeks()
		right := left + float64(m.Weeks())*cell
		if x < left || x >= right {
			continue
		}
		week := int((x - left) / cell)
		if x-left-float64(week)*cell >= l.SquareSize {
			return 0, false
		}
		inMonth := week*calendar.DaysPerWeek + row - m.FirstDayOfWeek
		if inMonth < 0 || inMonth >= m.DayCount {
			return 0, false
		}
		return m.StartDayOfYear + inMonth, true
	}
	return 0, false
}

// MonthLabels returns one label per month centered under its column group.
func (l Layout) MonthLabels() []Label {
	labels := make([]Label, 0, len(l.Months))
	cell := l.Cell()
	x := 0.0
	for _, m := range l.Months {
		width := float64(m.Weeks()) * cell
		labels = append(labels, Label{Text: m.Name, X: x + width/2, Y: l.Height + labelOffset})
		x += width + l.MonthGap
	}
	return labels
}

func (l Layout) check(day int) error {
	if day < 0 || day >= len(l.Positions) {
		return errors.OutOfRange(day, len(l.Positions))
	}
	return nil
}
