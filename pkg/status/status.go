// Package status classifies heatmap days as future, past-incomplete or
// past-complete.
//
// Completed dates are converted once into a set of day numbers when the
// [Classifier] is built; per-cell classification is then a set lookup and
// two integer comparisons. Entries that cannot be parsed are skipped and
// returned to the caller as warnings so one bad date never breaks a render.
package status

import (
	"time"

	"github.com/matzehuels/heatgrid/pkg/calendar"
)

// Class is the three-way temporal classification of a day.
type Class int

const (
	// PastIncomplete is a day on or before today that has not been completed.
	PastIncomplete Class = iota
	// PastComplete is a day on or before today that has been completed.
	PastComplete
	// Future is a day after today. Future days ignore clicks.
	Future
)

// String returns the lower-case name of the class.
func (c Class) String() string {
	switch c {
	case Future:
		return "future"
	case PastComplete:
		return "complete"
	default:
		return "incomplete"
	}
}

// Classifier answers classification queries for a fixed completed set and today.
// It is immutable; build a new one when the completed set changes.
type Classifier struct {
	completed map[int]struct{}
	today     int
}

// New builds a Classifier. Unparseable completed dates are skipped and
// reported in warnings; duplicates are tolerated.
func New(completed []string, today time.Time) (*Classifier, []error) {
	c := &Classifier{
		completed: make(map[int]struct{}, len(completed)),
		today:     calendar.DayNumber(today),
	}
	var warnings []error
	for _, s := range completed {
		d, err := calendar.ParseDate(s)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		c.completed[calendar.DayNumber(d)] = struct{}{}
	}
	return c, warnings
}

// Today returns the day number of today.
func (c *Classifier) Today() int { return c.today }

// Completed reports whether the day number is in the completed set.
func (c *Classifier) Completed(dayNumber int) bool {
	_, ok := c.completed[dayNumber]
	return ok
}

// Len returns the number of distinct completed days.
func (c *Classifier) Len() int { return len(c.completed) }

// ClassifyNumber classifies a day number. isToday is independent of the class.
func (c *Classifier) ClassifyNumber(n int) (class Class, isToday bool) {
	isToday = n == c.today
	switch {
	case n > c.today:
		return Future, isToday
	case c.Completed(n):
		return PastComplete, isToday
	default:
		return PastIncomplete, isToday
	}
}

// Classify classifies the civil date of t.
func (c *Classifier) Classify(t time.Time) (Class, bool) {
	return c.ClassifyNumber(calendar.DayNumber(t))
}

// ClassifyDay classifies a day-of-year of year. Out-of-range days return an
// OUT_OF_RANGE error.
func (c *Classifier) ClassifyDay(year, day int) (Class, bool, error) {
	d, err := calendar.DateOf(year, day)
	if err != nil {
		return 0, false, err
	}
	class, isToday := c.Classify(d)
	return class, isToday, nil
}
