// Package pipeline provides the layout → render pipeline for heatgrid.
//
// This package implements the complete pipeline that the CLI and the HTTP
// server share. By centralizing it, both entry points classify, lay out and
// cache heatmaps the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Compute the grid for a year and classify every day against
//     the completed set and today's date
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Year = 2025
//	opts.Completed = []string{"2025-03-01"}
//	opts.Formats = []string{"svg"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.Layout(ctx, opts)
//
//	// Render an existing heatmap
//	artifacts, err := runner.Render(ctx, h, opts)
package pipeline

import (
	"encoding/json"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatgrid/pkg/cache"
	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	dateio "github.com/matzehuels/heatgrid/pkg/io"
	"github.com/matzehuels/heatgrid/pkg/ripple"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

// DefaultScale is the default PNG pixel density.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the heatmap pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Year       int          `json:"year,omitempty"`
	SquareSize float64      `json:"square_size,omitempty"`
	Padding    float64      `json:"padding,omitempty"`
	MonthGap   float64      `json:"month_gap,omitempty"`
	WeekStart  time.Weekday `json:"week_start,omitempty"`

	// Classification inputs
	Completed []string  `json:"completed,omitempty"`
	Today     time.Time `json:"today,omitzero"`

	// Render options
	Formats       []string        `json:"formats"`
	Interactive   bool            `json:"interactive,omitempty"`
	ClickEndpoint string          `json:"click_endpoint,omitempty"`
	Title         string          `json:"title,omitempty"`
	Scale         float64         `json:"scale,omitempty"`
	Palette       heatmap.Palette `json:"palette,omitzero"`
	Ripple        ripple.Config   `json:"ripple,omitzero"`

	// Cache control
	Refresh bool `json:"refresh,omitempty"` // skip cache reads, still write

	// Runtime (not serialized)
	Logger *log.Logger `json:"-"`
}

// DefaultOptions returns options with the standard geometry, palette and
// ripple timing.
func DefaultOptions() Options {
	return Options{
		SquareSize: grid.DefaultSquareSize,
		Padding:    grid.DefaultPadding,
		MonthGap:   grid.DefaultMonthGap,
		Palette:    heatmap.DefaultPalette(),
		Ripple:     ripple.DefaultConfig(),
	}
}

// ValidateFormat checks that format is one of the supported output formats.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q: must be svg, png, pdf, or json", format)
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults fills zero values and validates the result.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetLayoutDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	return o.ValidateForRender()
}

// SetLayoutDefaults fills zero layout values. Padding and MonthGap are kept
// as given since zero is a valid spacing; start from [DefaultOptions] to get
// the standard spacing.
func (o *Options) SetLayoutDefaults() {
	if o.Today.IsZero() {
		o.Today = time.Now()
	}
	if o.Year == 0 {
		o.Year = o.Today.Year()
	}
	if o.SquareSize == 0 {
		o.SquareSize = grid.DefaultSquareSize
	}
	if o.Palette == (heatmap.Palette{}) {
		o.Palette = heatmap.DefaultPalette()
	}
	if o.Ripple == (ripple.Config{}) {
		o.Ripple = ripple.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates the options consumed by the layout stage.
func (o *Options) ValidateForLayout() error {
	if err := errors.ValidateYear(o.Year); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.SquareSize, o.Padding, o.MonthGap); err != nil {
		return err
	}
	if o.WeekStart < time.Sunday || o.WeekStart > time.Saturday {
		return errors.New(errors.ErrCodeInvalidInput, "invalid week start %d", o.WeekStart)
	}
	return nil
}

// SetRenderDefaults fills zero render values.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.ClickEndpoint != "" {
		o.Interactive = true
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates the options consumed by the render stage.
func (o *Options) ValidateForRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if err := o.Palette.Validate(); err != nil {
		return err
	}
	return o.Ripple.Validate()
}

// LayoutOptions converts the geometry fields to grid options.
func (o *Options) LayoutOptions() []grid.Option {
	return []grid.Option{
		grid.WithSquareSize(o.SquareSize),
		grid.WithPadding(o.Padding),
		grid.WithMonthGap(o.MonthGap),
		grid.WithWeekStart(o.WeekStart),
	}
}

// HeatmapOptions converts the options to heatmap options.
func (o *Options) HeatmapOptions() []heatmap.Option {
	return []heatmap.Option{
		heatmap.WithLayout(o.LayoutOptions()...),
		heatmap.WithPalette(o.Palette),
		heatmap.WithRipple(o.Ripple),
	}
}

// LayoutKeyOpts extracts the layout cache key inputs.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SquareSize: o.SquareSize,
		Padding:    o.Padding,
		MonthGap:   o.MonthGap,
		WeekStart:  int(o.WeekStart),
	}
}

// ArtifactKeyOpts extracts the artifact cache key inputs for format.
// Only the inputs that affect format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:    format,
		Today:     o.Today.Format(calendar.ISOLayout),
		Completed: dateio.Normalize(o.Completed),
		Style:     o.styleHash(),
	}
	switch format {
	case FormatSVG:
		k.Interactive = o.Interactive
		k.Endpoint = o.ClickEndpoint
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

// styleHash fingerprints the palette, ripple timing and title.
func (o *Options) styleHash() string {
	data, _ := json.Marshal(struct {
		Palette heatmap.Palette `json:"palette"`
		Ripple  ripple.Config   `json:"ripple"`
		Title   string          `json:"title"`
	}{o.Palette, o.Ripple, o.Title})
	return cache.Hash(data)[:16]
}
