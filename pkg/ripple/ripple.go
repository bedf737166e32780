package ripple

import (
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
)

const (
	// DefaultDuration is the time the wavefront takes to reach MaxDistance.
	DefaultDuration = 5 * time.Second
	// DefaultMaxDistance effectively includes every cell of a year.
	DefaultMaxDistance = 1000.0
	// DefaultHighlight is the duration of the highlight transition.
	DefaultHighlight = 600 * time.Millisecond
	// DefaultRestore is the duration of the restore transition.
	DefaultRestore = 200 * time.Millisecond
	// DefaultScale is the cell scale at the end of the highlight transition.
	DefaultScale = 1.2
	// DefaultHighlightColor is the fill at the end of the highlight transition.
	DefaultHighlightColor = "#ff9f43"
)

// Config controls ripple timing.
type Config struct {
	Duration       time.Duration
	MaxDistance    float64
	Highlight      time.Duration
	Restore        time.Duration
	Scale          float64
	HighlightColor string
}

// DefaultConfig returns the standard ripple timing.
func DefaultConfig() Config {
	return Config{
		Duration:       DefaultDuration,
		MaxDistance:    DefaultMaxDistance,
		Highlight:      DefaultHighlight,
		Restore:        DefaultRestore,
		Scale:          DefaultScale,
		HighlightColor: DefaultHighlightColor,
	}
}

// Validate checks that the configuration produces a well-formed schedule.
func (c Config) Validate() error {
	if c.MaxDistance <= 0 || math.IsNaN(c.MaxDistance) {
		return errors.New(errors.ErrCodeInvalidConfig, "ripple max distance must be positive, got %g", c.MaxDistance)
	}
	if c.Duration < 0 || c.Highlight < 0 || c.Restore < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ripple durations cannot be negative")
	}
	if c.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "ripple scale must be positive, got %g", c.Scale)
	}
	return errors.ValidateColor(c.HighlightColor, 1)
}

// Entry is the schedule of a single cell.
type Entry struct {
	Day        int     `json:"day"`
	Distance   float64 `json:"distance"`
	DelayMs    float64 `json:"delay_ms"`
	FinalColor string  `json:"final_color,omitempty"`
}

// Delay returns the entry's start offset.
func (e Entry) Delay() time.Duration {
	return time.Duration(e.DelayMs * float64(time.Millisecond))
}

// Timing is the per-cell transition timing shared by all entries.
type Timing struct {
	HighlightMs    float64 `json:"highlight_ms"`
	RestoreMs      float64 `json:"restore_ms"`
	Scale          float64 `json:"scale"`
	HighlightColor string  `json:"highlight_color"`
}

// Ripple is the full schedule produced by one click.
type Ripple struct {
	ID      string  `json:"id"`
	Origin  int     `json:"origin"`
	Timing  Timing  `json:"timing"`
	Entries []Entry `json:"entries"`
	Settled bool    `json:"settled"`
}

// Distance returns the Euclidean distance between two days on the raw
// (day/7, day%7) grid.
func Distance(a, b int) float64 {
	dw := float64(b/calendar.DaysPerWeek - a/calendar.DaysPerWeek)
	dd := float64(b%calendar.DaysPerWeek - a%calendar.DaysPerWeek)
	return math.Sqrt(dw*dw + dd*dd)
}

// Schedule computes the ripple for a click on clicked. Days farther than
// cfg.MaxDistance are left out. Entries are ordered by day.
func Schedule(clicked int, days []int, cfg Config) *Ripple {
	r := &Ripple{
		ID:     uuid.NewString(),
		Origin: clicked,
		Timing: Timing{
			HighlightMs:    ms(cfg.Highlight),
			RestoreMs:      ms(cfg.Restore),
			Scale:          cfg.Scale,
			HighlightColor: cfg.HighlightColor,
		},
		Entries: make([]Entry, 0, len(days)),
	}
	perUnit := ms(cfg.Duration) / cfg.MaxDistance
	for _, day := range days {
		d := Distance(clicked, day)
		if d > cfg.MaxDistance {
			continue
		}
		r.Entries = append(r.Entries, Entry{Day: day, Distance: d, DelayMs: d * perUnit})
	}
	slices.SortFunc(r.Entries, func(a, b Entry) int { return a.Day - b.Day })
	return r
}

// Entry returns the entry for day, if it participates.
func (r *Ripple) Entry(day int) (Entry, bool) {
	i, ok := slices.BinarySearchFunc(r.Entries, day, func(e Entry, d int) int { return e.Day - d })
	if !ok {
		return Entry{}, false
	}
	return r.Entries[i], true
}

// Duration returns the time from the click until the last cell has restored.
func (r *Ripple) Duration() time.Duration {
	var last float64
	for _, e := range r.Entries {
		last = max(last, e.DelayMs)
	}
	return time.Duration((last + r.Timing.HighlightMs + r.Timing.RestoreMs) * float64(time.Millisecond))
}

// Settle resolves each entry's final color. Call it after the click's state
// change has been applied.
func (r *Ripple) Settle(resting func(day int) string) {
	for i := range r.Entries {
		r.Entries[i].FinalColor = resting(r.Entries[i].Day)
	}
	r.Settled = true
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
