// Package io reads and writes completed-date files.
//
// The heatmap core never persists anything; the completed set belongs to the
// caller. This package is the storage the heatgrid CLI and server use as that
// caller.
//
// # Formats
//
// [ReadDates] accepts either a JSON array of date strings:
//
//	["2025-03-01", "2025-03-02"]
//
// or plain text with one date per line, where blank lines and lines starting
// with '#' are ignored:
//
//	# morning runs
//	2025-03-01
//	2025-03-02
//
// Entries are returned verbatim. Validation happens at classification time,
// where unparseable entries become warnings instead of failures.
//
// [WriteDates] always writes a sorted, deduplicated JSON array with
// parseable entries normalized to YYYY-MM-DD.
package io
