package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/heatgrid/pkg/heatmap"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	endpoint    string
	title       string
}

// WithInteractive embeds the tooltip and ripple script.
func WithInteractive() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithClickEndpoint makes the embedded script POST clicks to url, where
// "{day}" is replaced by the day-of-year. Implies WithInteractive.
func WithClickEndpoint(url string) SVGOption {
	return func(r *svgRenderer) { r.interactive = true; r.endpoint = url }
}

// WithTitle sets the document title.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// RenderSVG renders the heatmap as an SVG document.
func RenderSVG(h *heatmap.Heatmap, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, ht := h.Size()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="heatgrid" viewBox="0 0 %s %s" width="%s" height="%s" overflow="visible">`+"\n",
		num(w), num(ht), num(w), num(ht))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", interactionCSS)
	}

	h.Draw(&svgSurface{buf: &buf})

	if r.interactive {
		buf.WriteString(tooltipElement)
		renderScript(&buf, h, r.endpoint)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type svgSurface struct {
	buf *bytes.Buffer
}

func (s *svgSurface) Rect(c heatmap.RectCmd) {
	fmt.Fprintf(s.buf, `  <rect class="day-square" id="day-%d" data-day="%d" data-date="%s" data-status="%s" x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" %s`,
		c.Day, c.Day, c.Date, c.Class, num(c.X), num(c.Y), num(c.Size), num(c.Size), num(c.Radius), num(c.Radius), fillAttrs(c.Fill))
	if c.StrokeWidth > 0 && !c.Stroke.IsZero() {
		fmt.Fprintf(s.buf, ` stroke="%s" stroke-width="%s"`, c.Stroke.Hex, num(c.StrokeWidth))
	}
	s.buf.WriteString("/>\n")
}

func (s *svgSurface) Text(c heatmap.TextCmd) {
	class := "day-initial"
	if c.Kind == heatmap.MonthLabel {
		class = "month-label"
	}
	fmt.Fprintf(s.buf, `  <text class="%s" x="%s" y="%s" text-anchor="%s" font-size="%s" font-family="sans-serif" %s>%s</text>`+"\n",
		class, num(c.X), num(c.Y), c.Anchor, num(c.Size), fillAttrs(c.Fill), html.EscapeString(c.Text))
}

// fillAttrs writes fill and fill-opacity separately; rsvg-convert does not
// accept rgba() in presentation attributes.
func fillAttrs(c heatmap.Color) string {
	if c.Alpha >= 1 {
		return fmt.Sprintf(`fill="%s"`, c.Hex)
	}
	return fmt.Sprintf(`fill="%s" fill-opacity="%s"`, c.Hex, num(c.Alpha))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
