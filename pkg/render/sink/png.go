package sink

import (
	"bytes"
	"context"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/fonts"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	"github.com/matzehuels/heatgrid/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	rsvg    bool
	svgOpts []SVGOption
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG rasterizes the SVG output through rsvg-convert instead of drawing
// natively. Labels then use the system sans-serif font.
func WithRSVG(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.rsvg = true; r.svgOpts = opts }
}

// RenderPNG renders the heatmap as PNG.
func RenderPNG(ctx context.Context, h *heatmap.Heatmap, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", r.scale)
	}
	if r.rsvg {
		return render.ToPNG(ctx, RenderSVG(h, r.svgOpts...), r.scale)
	}

	w, ht := h.Size()
	dc := gg.NewContext(int(math.Ceil(w*r.scale)), int(math.Ceil(ht*r.scale)))
	dc.SetRGBA(h.Palette().Background.RGBA())
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	h.Draw(&pngSurface{dc: dc, faces: make(map[float64]font.Face)})

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type pngSurface struct {
	dc    *gg.Context
	faces map[float64]font.Face
}

// setFace selects the label face for size, falling back to the fixed
// bitmap face if the bundled font cannot be loaded.
func (s *pngSurface) setFace(size float64) {
	face, ok := s.faces[size]
	if !ok {
		var err error
		if face, err = fonts.Face(size); err != nil {
			face = basicfont.Face7x13
		}
		s.faces[size] = face
	}
	s.dc.SetFontFace(face)
}

func (s *pngSurface) Rect(c heatmap.RectCmd) {
	s.dc.DrawRoundedRectangle(c.X, c.Y, c.Size, c.Size, c.Radius)
	s.dc.SetRGBA(c.Fill.RGBA())
	s.dc.Fill()

	if c.StrokeWidth > 0 && !c.Stroke.IsZero() {
		s.dc.DrawRoundedRectangle(c.X, c.Y, c.Size, c.Size, c.Radius)
		s.dc.SetRGBA(c.Stroke.RGBA())
		s.dc.SetLineWidth(c.StrokeWidth)
		s.dc.Stroke()
	}
}

func (s *pngSurface) Text(c heatmap.TextCmd) {
	ax := 0.0
	switch c.Anchor {
	case heatmap.AnchorMiddle:
		ax = 0.5
	case heatmap.AnchorEnd:
		ax = 1
	}
	s.setFace(c.Size)
	s.dc.SetRGBA(c.Fill.RGBA())
	s.dc.DrawStringAnchored(c.Text, c.X, c.Y, ax, 0)
}
