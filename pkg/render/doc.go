// Package render provides format conversion shared by the heatmap sinks.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(h)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// The concrete SVG, PNG, PDF and JSON renderers live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/heatgrid/pkg/render/sink
package render
