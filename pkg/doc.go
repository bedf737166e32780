// Package pkg provides the core libraries for heatgrid annual activity heatmaps.
//
// # Overview
//
// heatgrid lays a calendar year out as a grid of day squares, one column per
// week and one row per weekday, and colors each day by whether it lies in the
// future, was completed, or was missed. Completing a day starts a ripple that
// spreads from the clicked cell to its neighbors. The pkg directory is
// organized into these areas:
//
//  1. [calendar], [grid] and [status] - Domain logic (dates, layout, classification)
//  2. [heatmap] and [ripple] - Interaction (draw commands, clicks, hover, animation schedule)
//  3. [render] - Output (SVG, PNG, PDF and JSON sinks)
//  4. [pipeline] - Orchestration (layout → render with caching)
//  5. [cache], [config], [io], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through heatgrid:
//
//	year + completed dates + today
//	         ↓
//	    [grid] package (cell positions, month metadata)
//	         ↓
//	    [status] package (future / complete / past per day)
//	         ↓
//	    [heatmap] package (draw commands, click and hover handling)
//	         ↓
//	    [render/sink] package (SVG/PNG/PDF/JSON output)
//
// # Quick Start
//
//	opts := pipeline.DefaultOptions()
//	opts.Year = 2025
//	opts.Completed = []string{"2025-03-01"}
//	opts.Formats = []string{pipeline.FormatSVG}
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, opts)
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// [calendar]: github.com/matzehuels/heatgrid/pkg/calendar
// [grid]: github.com/matzehuels/heatgrid/pkg/grid
// [status]: github.com/matzehuels/heatgrid/pkg/status
// [heatmap]: github.com/matzehuels/heatgrid/pkg/heatmap
// [ripple]: github.com/matzehuels/heatgrid/pkg/ripple
// [render]: github.com/matzehuels/heatgrid/pkg/render
// [render/sink]: github.com/matzehuels/heatgrid/pkg/render/sink
// [pipeline]: github.com/matzehuels/heatgrid/pkg/pipeline
// [cache]: github.com/matzehuels/heatgrid/pkg/cache
// [config]: github.com/matzehuels/heatgrid/pkg/config
// [io]: github.com/matzehuels/heatgrid/pkg/io
// [errors]: github.com/matzehuels/heatgrid/pkg/errors
// [observability]: github.com/matzehuels/heatgrid/pkg/observability
package pkg
