package grid

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/heatgrid/pkg/errors"
)

func TestBuildCanvas2025(t *testing.T) {
	l := Build(2025, WithSquareSize(18), WithPadding(2.5), WithMonthGap(20))

	// 63 week columns * 20.5 + 11 gaps * 20
	if l.Columns != 63 {
		t.Errorf("Columns = %d, want 63", l.Columns)
	}
	if l.Width != 1511.5 {
		t.Errorf("Width = %v, want 1511.5", l.Width)
	}
	if l.Height != 143.5 {
		t.Errorf("Height = %v, want 143.5", l.Height)
	}
	if l.Days() != 365 {
		t.Errorf("Days() = %d, want 365", l.Days())
	}
}

func TestBuildLeapYear(t *testing.T) {
	l := Build(2024)
	if l.Days() != 366 {
		t.Errorf("Days() = %d, want 366", l.Days())
	}
	if _, err := l.Position(365); err != nil {
		t.Errorf("Position(365) in leap year: %v", err)
	}
}

func TestPositionsUnique(t *testing.T) {
	for _, year := range []int{2024, 2025, 2026} {
		for _, ws := range []time.Weekday{time.Sunday, time.Monday} {
			l := Build(year, WithWeekStart(ws))
			seen := make(map[Position]int, l.Days())
			for day, p := range l.Positions {
				if prev, ok := seen[p]; ok {
					t.Fatalf("%d/%s: days %d and %d collide at %+v", year, ws, prev, day, p)
				}
				seen[p] = day
			}
		}
	}
}

func TestPositionKnownDays(t *testing.T) {
	l := Build(2025)
	cell := l.Cell()

	tests := []struct {
		name string
		day  int
		want Position
	}{
		// Jan 1 2025 is a Wednesday
		{"jan 1", 0, Position{X: 0, Y: 3 * cell}},
		// Jan 4 is a Saturday, Jan 5 starts the second column
		{"jan 4", 3, Position{X: 0, Y: 6 * cell}},
		{"jan 5", 4, Position{X: cell, Y: 0}},
		// Feb 1 is a Saturday in column 5, after one month gap
		{"feb 1", 31, Position{X: 5*cell + 20, Y: 6 * cell}},
		// Mar 1 is a Saturday: columns 0-4 Jan, 5-9 Feb, 10 is March's first
		{"mar 1", 59, Position{X: 10*cell + 40, Y: 6 * cell}},
		// Dec 31 is a Wednesday in the last column
		{"dec 31", 364, Position{X: 62*cell + 11*20, Y: 3 * cell}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Position(tt.day)
			if err != nil {
				t.Fatalf("Position(%d) error: %v", tt.day, err)
			}
			if got != tt.want {
				t.Errorf("Position(%d) = %+v, want %+v", tt.day, got, tt.want)
			}
		})
	}
}

func TestPositionOutOfRange(t *testing.T) {
	l := Build(2025)
	for _, day := range []int{-1, 365, 1000} {
		if _, err := l.Position(day); !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("Position(%d) error = %v, want OUT_OF_RANGE", day, err)
		}
		if _, err := l.MonthOf(day); !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("MonthOf(%d) error = %v, want OUT_OF_RANGE", day, err)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustPosition(-1) should panic")
		}
	}()
	l.MustPosition(-1)
}

func TestMonthOfBoundaries(t *testing.T) {
	l := Build(2025)
	tests := []struct {
		day  int
		want int
	}{
		{0, 0},
		{30, 0},
		{31, 1},
		{58, 1},
		{59, 2},
		{333, 10},
		{334, 11},
		{364, 11},
	}
	for _, tt := range tests {
		got, err := l.MonthOf(tt.day)
		if err != nil || got != tt.want {
			t.Errorf("MonthOf(%d) = %d, %v; want %d", tt.day, got, err, tt.want)
		}
	}
}

func TestCoordStaysWithinMonthColumns(t *testing.T) {
	l := Build(2025)
	for day := range l.Positions {
		col, row, err := l.Coord(day)
		if err != nil {
			t.Fatal(err)
		}
		if row < 0 || row > 6 || col < 0 || col >= l.Columns {
			t.Fatalf("Coord(%d) = (%d, %d) outside grid", day, col, row)
		}
	}
}

func TestCornerRadius(t *testing.T) {
	tests := []struct {
		size float64
		want float64
	}{
		{18, 3},
		{10, 2},
		{4, 1},
		{1, 1},
	}
	for _, tt := range tests {
		if got := Build(2025, WithSquareSize(tt.size)).CornerRadius(); got != tt.want {
			t.Errorf("CornerRadius(size=%v) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestDayAtInvertsPosition(t *testing.T) {
	for _, l := range []Layout{
		Build(2025),
		Build(2024, WithWeekStart(time.Monday)),
		Build(2025, WithSquareSize(1), WithPadding(0), WithMonthGap(1)),
	} {
		for day, p := range l.Positions {
			got, ok := l.DayAt(p.X+l.SquareSize/2, p.Y+l.SquareSize/2)
			if !ok || got != day {
				t.Fatalf("DayAt(center of %d) = %d, %v", day, got, ok)
			}
		}
	}
}

func TestDayAtMisses(t *testing.T) {
	l := Build(2025)
	tests := []struct {
		name string
		x, y float64
	}{
		{"negative", -1, 5},
		{"below grid", 5, l.Height + 1},
		{"padding between rows", 5, l.SquareSize + 1},
		{"month gap", 5*l.Cell() + 5, 5},
		// Jan 1-3 are empty slots above Wednesday in the first column
		{"before jan 1", 5, 5},
		{"past canvas", l.Width + 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if day, ok := l.DayAt(tt.x, tt.y); ok {
				t.Errorf("DayAt(%v, %v) = %d, want miss", tt.x, tt.y, day)
			}
		})
	}
}

func TestMonthLabels(t *testing.T) {
	l := Build(2025)
	labels := l.MonthLabels()
	if len(labels) != 12 {
		t.Fatalf("len(MonthLabels()) = %d, want 12", len(labels))
	}
	if labels[0].Text != "Jan" || labels[0].X != 5*l.Cell()/2 {
		t.Errorf("Jan label = %+v", labels[0])
	}
	// Feb starts after Jan's 5 columns plus one gap
	wantFeb := 5*l.Cell() + 20 + 5*l.Cell()/2
	if math.Abs(labels[1].X-wantFeb) > 1e-9 {
		t.Errorf("Feb label X = %v, want %v", labels[1].X, wantFeb)
	}
	for _, lb := range labels {
		if lb.Y != l.Height+16 {
			t.Errorf("%s label Y = %v, want %v", lb.Text, lb.Y, l.Height+16)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := Build(2025, WithMonthGap(12))
	b := Build(2025, WithMonthGap(12))
	if !reflect.DeepEqual(a, b) {
		t.Error("Build should be a pure function of its inputs")
	}
}
