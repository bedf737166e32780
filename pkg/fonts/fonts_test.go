package fonts

import "testing"

func TestRegularParsedOnce(t *testing.T) {
	a, err := Regular()
	if err != nil {
		t.Fatalf("Regular: %v", err)
	}
	b, _ := Regular()
	if a != b {
		t.Error("Regular parsed the font twice")
	}
}

func TestFaceSize(t *testing.T) {
	small, err := Face(10)
	if err != nil {
		t.Fatalf("Face(10): %v", err)
	}
	large, err := Face(20)
	if err != nil {
		t.Fatalf("Face(20): %v", err)
	}

	adv := func(size float64) int {
		f, _ := Face(size)
		a, ok := f.GlyphAdvance('M')
		if !ok {
			t.Fatalf("no glyph for M at %g", size)
		}
		return a.Round()
	}
	if adv(20) <= adv(10) {
		t.Errorf("advance at 20pt (%d) not larger than at 10pt (%d)", adv(20), adv(10))
	}
	if small.Metrics().Height >= large.Metrics().Height {
		t.Error("line height does not grow with size")
	}
}
