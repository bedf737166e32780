package heatmap

import "github.com/matzehuels/heatgrid/pkg/status"

// Anchor is the horizontal alignment of a text command.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// RectCmd draws one day cell.
type RectCmd struct {
	Day         int
	Date        string
	X, Y        float64
	Size        float64
	Radius      float64
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Class       status.Class
	IsToday     bool
}

// TextKind distinguishes the two label groups.
type TextKind int

const (
	WeekdayInitial TextKind = iota
	MonthLabel
)

// TextCmd draws a label. Y is the text baseline.
type TextCmd struct {
	Kind   TextKind
	Text   string
	X, Y   float64
	Anchor Anchor
	Size   float64
	Fill   Color
}

// Surface receives draw commands.
type Surface interface {
	Rect(RectCmd)
	Text(TextCmd)
}

// Tooltip presents the hover text. Show with visible false hides it.
type Tooltip interface {
	Show(text string, x, y float64, visible bool)
}

type noopTooltip struct{}

func (noopTooltip) Show(string, float64, float64, bool) {}

// TooltipFunc adapts a function to Tooltip.
type TooltipFunc func(text string, x, y float64, visible bool)

// Show calls f.
func (f TooltipFunc) Show(text string, x, y float64, visible bool) { f(text, x, y, visible) }
