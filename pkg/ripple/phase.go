package ripple

import "time"

// Phase is the animation state of one cell at a point in time.
type Phase int

const (
	// Pending means the wavefront has not reached the cell yet.
	Pending Phase = iota
	// Highlighting means the cell is moving toward the highlight color and scale.
	Highlighting
	// Restoring means the cell is returning to scale 1 and its resting color.
	Restoring
	// Done means both transitions have finished.
	Done
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Highlighting:
		return "highlight"
	case Restoring:
		return "restore"
	case Done:
		return "done"
	default:
		return "pending"
	}
}

// PhaseAt returns the phase of e at elapsed time since the click, and the
// progress in [0, 1] within that phase. Highlight always precedes restore.
func (t Timing) PhaseAt(e Entry, elapsed time.Duration) (Phase, float64) {
	at := ms(elapsed) - e.DelayMs
	switch {
	case at < 0:
		return Pending, 0
	case at < t.HighlightMs:
		return Highlighting, at / t.HighlightMs
	case at < t.HighlightMs+t.RestoreMs:
		return Restoring, (at - t.HighlightMs) / t.RestoreMs
	default:
		return Done, 1
	}
}

// ScaleAt returns the cell scale for a phase and progress.
func (t Timing) ScaleAt(p Phase, progress float64) float64 {
	switch p {
	case Highlighting:
		return 1 + (t.Scale-1)*progress
	case Restoring:
		return t.Scale + (1-t.Scale)*progress
	default:
		return 1
	}
}
