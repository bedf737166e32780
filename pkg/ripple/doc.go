// Package ripple schedules the click-triggered wavefront animation.
//
// # Distance
//
// Distance is measured on the raw sequential week/weekday grid of the year,
// where day d sits at (d/7, d%7). This is deliberately not the month-aware
// visual grid of package grid: month gaps and partial weeks would otherwise
// bend the wavefront at every month boundary.
//
// # Scheduling
//
// Every day within [Config.MaxDistance] of the clicked day receives an entry
// whose delay grows linearly with distance:
//
//	delay = distance * Duration / MaxDistance
//
// so the clicked cell starts immediately and farther cells follow.
//
// # Phases
//
// Each entry runs a two-phase chain: after its delay the cell transitions to
// the highlight color and scale over [Config.Highlight], then back to scale 1
// and its resting color over [Config.Restore]. The resting color is not part
// of the schedule; call [Ripple.Settle] once the click's side effects have been
// applied so the final state reflects the current completion status.
//
// A Ripple is a self-contained value. Overlapping ripples from rapid clicks
// are independent and none cancels another.
package ripple
