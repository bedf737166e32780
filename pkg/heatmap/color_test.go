package heatmap

import (
	"testing"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/status"
)

func TestColorCSS(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Opaque("#BA6306"), "#ba6306"},
		{Color{Hex: "#000000", Alpha: 0.2}, "rgba(0, 0, 0, 0.2)"},
		{Color{Hex: "#000000", Alpha: 0.05}, "rgba(0, 0, 0, 0.05)"},
		{Color{}, "none"},
	}
	for _, tt := range tests {
		if got := tt.c.CSS(); got != tt.want {
			t.Errorf("%+v.CSS() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestColorOver(t *testing.T) {
	white := Opaque("#ffffff")
	if got := (Color{Hex: "#000000", Alpha: 0.2}).Over(white); got.Hex != "#cccccc" || got.Alpha != 1 {
		t.Errorf("20%% black over white = %+v, want #cccccc", got)
	}
	if got := Opaque("#ba6306").Over(white); got.Hex != "#ba6306" {
		t.Errorf("opaque over white = %+v", got)
	}
}

func TestMix(t *testing.T) {
	from := Color{Hex: "#000000", Alpha: 0.2}
	to := Opaque("#ff9f43")

	if got := Mix(from, to, 0); got.Hex != "#000000" || got.Alpha != 0.2 {
		t.Errorf("Mix(t=0) = %+v", got)
	}
	if got := Mix(from, to, 1); got.Hex != "#ff9f43" || got.Alpha != 1 {
		t.Errorf("Mix(t=1) = %+v", got)
	}
	if got := Mix(from, to, 2); got.Hex != "#ff9f43" {
		t.Errorf("Mix clamps t, got %+v", got)
	}
}

func TestPaletteFill(t *testing.T) {
	p := DefaultPalette()
	if p.Fill(status.Future) != p.Future || p.Fill(status.PastIncomplete) != p.Past || p.Fill(status.PastComplete) != p.Complete {
		t.Error("Fill does not map classes to their palette entries")
	}
}

func TestPaletteValidate(t *testing.T) {
	if err := DefaultPalette().Validate(); err != nil {
		t.Fatalf("DefaultPalette().Validate() = %v", err)
	}
	p := DefaultPalette()
	p.Complete = Color{Hex: "orange", Alpha: 1}
	if err := p.Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
	}
	p = DefaultPalette()
	p.TodayWidth = -1
	if err := p.Validate(); err == nil {
		t.Error("negative today width accepted")
	}
}
