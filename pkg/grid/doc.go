// Package grid computes cell positions for an annual heatmap.
//
// # Overview
//
// The grid has seven rows (one per weekday, counted from the week start) and
// one column per calendar week of each month. Months never share a column: a
// month that starts mid-week begins a new column, and a fixed gap separates
// consecutive months horizontally.
//
// For a day-of-year d owned by month m:
//
//	adjusted = m.FirstDayOfWeek + (d - m.StartDayOfYear)
//	column   = (weeks of all months before m) + adjusted/7
//	row      = adjusted % 7
//	x        = column*(square+padding) + monthIndex*monthGap
//	y        = row*(square+padding)
//
// The canvas is columns*(square+padding) + 11*monthGap wide and
// 7*(square+padding) tall.
//
// # Building a Layout
//
//	l := grid.Build(2025,
//	    grid.WithSquareSize(18),
//	    grid.WithPadding(2.5),
//	    grid.WithMonthGap(20),
//	)
//	p, err := l.Position(59) // March 1st
//
// [Layout.Position] rejects days outside [0, days-1] with an OUT_OF_RANGE
// error; it never clamps. [Layout.DayAt] is the inverse used by pointer-driven
// surfaces to resolve which cell was hit.
//
// # Options
//
//   - [WithSquareSize]: cell side length (default 18)
//   - [WithPadding]: spacing between cells (default 2.5)
//   - [WithMonthGap]: extra spacing between months (default 20)
//   - [WithWeekStart]: weekday on the top row (default Sunday)
package grid
