package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/heatgrid/pkg/heatmap"
	"github.com/matzehuels/heatgrid/pkg/observability"
	"github.com/matzehuels/heatgrid/pkg/render/sink"
)

// Render generates output artifacts of h in the requested formats.
// It does not consult any cache.
func Render(ctx context.Context, h *heatmap.Heatmap, opts Options) (artifacts map[string][]byte, err error) {
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(h, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, h, sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, h, sink.WithPDFSVGOptions(staticSVGOptions(opts)...))
		case FormatJSON:
			data, err = sink.RenderJSON(h)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := staticSVGOptions(opts)
	if opts.ClickEndpoint != "" {
		svgOpts = append(svgOpts, sink.WithClickEndpoint(opts.ClickEndpoint))
	} else if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteractive())
	}
	return svgOpts
}

// staticSVGOptions are the options that apply to documents without scripts.
func staticSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}
	return svgOpts
}
