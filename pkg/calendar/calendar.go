// Package calendar provides the date arithmetic consumed by the grid layout
// and the completion classifier.
//
// All values are civil dates: a [time.Time] is reduced to its year, month and
// day in its own location before any comparison, so "2025-03-01" parsed from a
// string and a wall-clock instant on the first of March agree on the same
// [DayNumber] regardless of time zone.
//
// # Months
//
// [Months] builds the per-month metadata of a year:
//
//	months := calendar.Months(2025, time.Sunday)
//	fmt.Println(months[2].Name, months[2].StartDayOfYear) // Mar 59
//
// FirstDayOfWeek is relative to the chosen week start, so with the default
// Sunday start 0 means Sunday and 6 means Saturday.
package calendar

import (
	"strings"
	"time"

	"github.com/matzehuels/heatgrid/pkg/errors"
)

// DaysPerWeek is the number of rows in the heatmap grid.
const DaysPerWeek = 7

// TooltipLayout formats a date the way the hover tooltip shows it,
// e.g. "Sat Mar 01 2025".
const TooltipLayout = "Mon Jan 02 2006"

// ISOLayout is the canonical date string layout for completed dates.
const ISOLayout = "2006-01-02"

// Month describes one calendar month of the rendered year.
type Month struct {
	Index          int    `json:"index"`             // 0 = January
	Name           string `json:"name"`              // short label, e.g. "Jan"
	DayCount       int    `json:"day_count"`         // 28..31
	FirstDayOfWeek int    `json:"first_day_of_week"` // weekday of the 1st, relative to the week start
	StartDayOfYear int    `json:"start_day_of_year"` // zero-based day-of-year of the 1st
}

// Weeks returns the number of grid columns the month occupies.
func (m Month) Weeks() int {
	return (m.FirstDayOfWeek + m.DayCount + DaysPerWeek - 1) / DaysPerWeek
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the length of year in days (365 or 366).
func DaysIn(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month m of year.
func DaysInMonth(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Relative converts a weekday into a row index counted from weekStart.
func Relative(wd, weekStart time.Weekday) int {
	return (int(wd) - int(weekStart) + DaysPerWeek) % DaysPerWeek
}

// Months returns the twelve months of year. Months are contiguous: the start
// of month i+1 is the start of month i plus its day count.
func Months(year int, weekStart time.Weekday) [12]Month {
	var months [12]Month
	start := 0
	for i := range months {
		first := time.Date(year, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC)
		days := DaysInMonth(year, first.Month())
		months[i] = Month{
			Index:          i,
			Name:           first.Month().String()[:3],
			DayCount:       days,
			FirstDayOfWeek: Relative(first.Weekday(), weekStart),
			StartDayOfYear: start,
		}
		start += days
	}
	return months
}

// DateOf returns the civil date (UTC midnight) of a zero-based day-of-year.
func DateOf(year, day int) (time.Time, error) {
	if total := DaysIn(year); day < 0 || day >= total {
		return time.Time{}, errors.OutOfRange(day, total)
	}
	return time.Date(year, time.January, 1+day, 0, 0, 0, 0, time.UTC), nil
}

// DayOfYear returns the zero-based day-of-year of t's civil date.
func DayOfYear(t time.Time) int {
	return t.YearDay() - 1
}

// DayNumber returns the number of days between 1970-01-01 and the civil date of t.
func DayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// FromDayNumber is the inverse of DayNumber.
func FromDayNumber(n int) time.Time {
	return time.Unix(int64(n)*86400, 0).UTC()
}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	ISOLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// ParseDate parses an ISO-like date string and returns its civil date at UTC midnight.
// Time-of-day and offset only matter insofar as they select the calendar day written in s.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidDate, "empty date")
	}
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, errors.Wrap(errors.ErrCodeInvalidDate, lastErr, "unparseable date %q", s)
}

// Weekdays returns the single-letter weekday initials in row order.
func Weekdays(weekStart time.Weekday) [DaysPerWeek]string {
	var out [DaysPerWeek]string
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % DaysPerWeek).String()[:1]
	}
	return out
}

// ParseWeekday parses a weekday name ("sunday", "Mon", ...). Empty means Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return time.Sunday, nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	return time.Sunday, errors.New(errors.ErrCodeInvalidInput, "unknown weekday %q", s)
}
