package heatmap

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/status"
)

// Color is a hex color with an opacity.
type Color struct {
	Hex   string  `json:"hex" toml:"hex"`
	Alpha float64 `json:"alpha" toml:"alpha"`
}

// Opaque returns a fully opaque color.
func Opaque(hex string) Color { return Color{Hex: hex, Alpha: 1} }

// IsZero reports whether the color is unset. Unset strokes are not drawn.
func (c Color) IsZero() bool { return c.Hex == "" }

// CSS returns the color as a CSS value: the hex string when opaque,
// rgba() otherwise.
func (c Color) CSS() string {
	if c.IsZero() {
		return "none"
	}
	if c.Alpha >= 1 {
		return strings.ToLower(c.Hex)
	}
	r, g, b := c.rgb().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", r, g, b, c.Alpha)
}

// RGBA returns the components in [0, 1].
func (c Color) RGBA() (r, g, b, a float64) {
	col := c.rgb()
	return col.R, col.G, col.B, c.Alpha
}

// Over composites c onto an opaque background and returns the opaque result.
func (c Color) Over(bg Color) Color {
	if c.Alpha >= 1 {
		return c
	}
	return Opaque(bg.rgb().BlendRgb(c.rgb(), c.Alpha).Clamped().Hex())
}

// Mix interpolates from a toward b. Channels and alpha move independently.
func Mix(a, b Color, t float64) Color {
	t = min(max(t, 0), 1)
	return Color{
		Hex:   a.rgb().BlendRgb(b.rgb(), t).Clamped().Hex(),
		Alpha: a.Alpha + (b.Alpha-a.Alpha)*t,
	}
}

func (c Color) rgb() colorful.Color {
	col, err := colorful.Hex(c.Hex)
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// Palette holds the visual treatment of each classification.
type Palette struct {
	Background Color   `json:"background" toml:"background"`
	Future     Color   `json:"future" toml:"future"`
	Past       Color   `json:"past" toml:"past"`
	Complete   Color   `json:"complete" toml:"complete"`
	Today      Color   `json:"today" toml:"today"`
	TodayWidth float64 `json:"today_width" toml:"today_width"`
	Label      Color   `json:"label" toml:"label"`
}

// DefaultPalette returns the standard colors.
func DefaultPalette() Palette {
	return Palette{
		Background: Opaque("#ffffff"),
		Future:     Color{Hex: "#000000", Alpha: 0.05},
		Past:       Color{Hex: "#000000", Alpha: 0.2},
		Complete:   Opaque("#ba6306"),
		Today:      Opaque("#ff0000"),
		TodayWidth: 2,
		Label:      Opaque("#6b7280"),
	}
}

// Fill returns the resting fill for a classification.
func (p Palette) Fill(c status.Class) Color {
	switch c {
	case status.Future:
		return p.Future
	case status.PastComplete:
		return p.Complete
	default:
		return p.Past
	}
}

// Validate checks every color of the palette.
func (p Palette) Validate() error {
	colors := []struct {
		name string
		c    Color
	}{
		{"background", p.Background},
		{"future", p.Future},
		{"past", p.Past},
		{"complete", p.Complete},
		{"today", p.Today},
		{"label", p.Label},
	}
	for _, c := range colors {
		if err := errors.ValidateColor(c.c.Hex, c.c.Alpha); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette %s", c.name)
		}
	}
	if p.TodayWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "today outline width cannot be negative")
	}
	return nil
}
