// Package heatmap ties the grid layout, the completion classifier and the
// ripple scheduler into one per-render value and defines the contract between
// that value and a presentation layer.
//
// # Presentation Contract
//
// A presentation layer implements [Surface] to receive draw commands and
// [Tooltip] to show the hover text. [Heatmap.Draw] emits, in order, the
// weekday initials down the left edge, one rectangle per day and one label
// per month beneath its column group. Cell and label coordinates are already
// shifted right by [Gutter] so they can be drawn directly into a canvas of
// [Heatmap.Size].
//
// # Events
//
// Input events carry the day-of-year of the cell under the pointer:
//
//	h, _ := heatmap.New(2025, completed, time.Now(), onComplete)
//	r, err := h.Click(59)   // hides the tooltip, schedules the ripple, calls onComplete
//	_ = h.HoverEnter(59, px, py)
//	h.HoverLeave()
//
// Clicking a future day returns a nil ripple and never invokes the callback.
// The callback runs synchronously before Click returns and is expected to
// update the caller's completed set, typically through [Heatmap.SetCompleted].
// The returned ripple is settled after the callback so its final colors
// reflect the updated state.
//
// A Heatmap is not safe for concurrent use; callers serving several
// goroutines must serialize access.
package heatmap
