// Package cache stores rendered heatmap artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance, for several servers behind one cache
//   - [NullCache]: stores nothing (--no-cache)
//
// # Keys
//
// A [Keyer] derives keys from everything that affects an artifact. Layouts are
// a pure function of year and geometry; artifacts additionally depend on the
// completed set, today's date and the output options, so a new completion or a
// new day always produces a new key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default time-to-live per entry kind.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// LayoutKeyOpts are the inputs of a grid layout.
type LayoutKeyOpts struct {
	SquareSize float64 `json:"square_size"`
	Padding    float64 `json:"padding"`
	MonthGap   float64 `json:"month_gap"`
	WeekStart  int     `json:"week_start"`
}

// ArtifactKeyOpts are the inputs of a rendered artifact beyond its layout.
type ArtifactKeyOpts struct {
	Format      string   `json:"format"`
	Today       string   `json:"today"`
	Completed   []string `json:"completed"`
	Interactive bool     `json:"interactive,omitempty"`
	Endpoint    string   `json:"endpoint,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Style       string   `json:"style,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(year int, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(year int, opts LayoutKeyOpts) string {
	return hashKey("layout", year, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
