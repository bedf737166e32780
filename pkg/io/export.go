package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
)

// Normalize rewrites parseable dates as YYYY-MM-DD, keeps the rest verbatim,
// and returns the sorted, deduplicated result.
func Normalize(dates []string) []string {
	out := make([]string, 0, len(dates))
	for _, s := range dates {
		if t, err := calendar.ParseDate(s); err == nil {
			s = t.Format(calendar.ISOLayout)
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// WriteDates encodes dates as an indented JSON array.
func WriteDates(w io.Writer, dates []string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Normalize(dates)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dates")
	}
	return nil
}

// ExportDates writes dates to path, replacing the file atomically.
func ExportDates(path string, dates []string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".heatgrid-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if err := WriteDates(tmp, dates); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}
