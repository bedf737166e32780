package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatgrid/pkg/cache"
	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/grid"
	"github.com/matzehuels/heatgrid/pkg/heatmap"
	"github.com/matzehuels/heatgrid/pkg/observability"
)

// Cache key types reported to observability hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Result is the output of Execute.
type Result struct {
	Heatmap   *heatmap.Heatmap
	Layout    grid.Layout
	Artifacts map[string][]byte
	// Warnings lists completed dates that were skipped.
	Warnings  []error
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records stage timings and sizes.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
	Days       int
	Completed  int
}

// CacheInfo reports which stages were served from cache.
type CacheInfo struct {
	RenderHit bool
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	// Stage 1: Layout and classification
	layoutStart := time.Now()
	h, err := r.Build(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result := &Result{
		Heatmap:  h,
		Layout:   h.Layout(),
		Warnings: h.Warnings(),
	}
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Days = h.Layout().Days()
	result.Stats.Completed = h.Classifier().Len()

	r.Logger.Info("computed layout",
		"year", opts.Year,
		"days", result.Stats.Days,
		"completed", result.Stats.Completed,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, h, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build constructs the heatmap for opts and logs every skipped date.
func (r *Runner) Build(ctx context.Context, opts Options) (*heatmap.Heatmap, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Year)
	h, err := heatmap.New(opts.Year, opts.Completed, opts.Today, nil, opts.HeatmapOptions()...)
	days := 0
	if h != nil {
		days = h.Layout().Days()
	}
	observability.Pipeline().OnLayoutComplete(ctx, opts.Year, days, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	for _, w := range h.Warnings() {
		opts.Logger.Warn("skipped completed date", "reason", errors.UserMessage(w))
	}
	return h, nil
}

// LayoutWithCacheInfo computes the grid for opts with caching and returns
// cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (grid.Layout, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if err := opts.ValidateForLayout(); err != nil {
		return grid.Layout{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(opts.Year, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached grid.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeLayout)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeLayout)

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Year)
	l := grid.Build(opts.Year, opts.LayoutOptions()...)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Year, l.Days(), time.Since(start), nil)

	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeLayout, len(data))
		}
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (grid.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, h *heatmap.Heatmap, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutHash := r.Keyer.LayoutKey(h.Year(), opts.LayoutKeyOpts())

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)

	// Render all formats
	rendered, err := Render(ctx, h, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, h *heatmap.Heatmap, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, h, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
