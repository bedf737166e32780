// Package sink provides output format renderers for heatmaps.
//
// # Overview
//
// A "sink" implements [heatmap.Surface] for one output format and turns a
// [heatmap.Heatmap] into bytes:
//
//   - SVG: vector output, optionally interactive (tooltip and click ripple)
//   - PNG: raster output drawn with gg, or via rsvg-convert
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: layout and classification export for external tools
//
// # SVG Output
//
// [RenderSVG] writes one rect per day with data-day, data-date and
// data-status attributes. [WithInteractive] embeds a script that shows the
// hover tooltip and plays the click ripple with the heatmap's ripple timing.
// With [WithClickEndpoint] the script also POSTs each click so a server can
// update its completed set:
//
//	svg := sink.RenderSVG(h, sink.WithClickEndpoint("/api/click/{day}"))
//
// # JSON Output
//
// [RenderJSON] exports months, labels and per-day cells. [WithJSONRipple]
// attaches a ripple schedule, which is how clients that animate on their own
// receive it.
package sink
