package status

import (
	"testing"
	"time"

	"github.com/matzehuels/heatgrid/pkg/calendar"
	"github.com/matzehuels/heatgrid/pkg/errors"
)

var june15 = time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

func TestClassifyScenario(t *testing.T) {
	c, warnings := New([]string{"2025-03-01"}, june15)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	tests := []struct {
		day  int
		want Class
	}{
		{59, PastComplete},
		{60, PastIncomplete},
		{200, Future},
		{165, PastIncomplete},
	}
	for _, tt := range tests {
		got, _, err := c.ClassifyDay(2025, tt.day)
		if err != nil {
			t.Fatalf("ClassifyDay(%d) error: %v", tt.day, err)
		}
		if got != tt.want {
			t.Errorf("ClassifyDay(%d) = %v, want %v", tt.day, got, tt.want)
		}
	}
}

func TestIsTodayIndependent(t *testing.T) {
	c, _ := New([]string{"2025-06-15"}, june15)

	class, isToday, _ := c.ClassifyDay(2025, 165)
	if !isToday || class != PastComplete {
		t.Errorf("today completed = (%v, %v), want (complete, true)", class, isToday)
	}

	c, _ = New(nil, june15)
	class, isToday, _ = c.ClassifyDay(2025, 165)
	if !isToday || class != PastIncomplete {
		t.Errorf("today incomplete = (%v, %v), want (incomplete, true)", class, isToday)
	}

	_, isToday, _ = c.ClassifyDay(2025, 166)
	if isToday {
		t.Error("tomorrow should not be today")
	}
}

func TestClassesExclusive(t *testing.T) {
	c, _ := New([]string{"2025-01-01", "2025-02-10", "2025-12-31"}, june15)
	counts := map[Class]int{}
	for day := 0; day < 365; day++ {
		class, _, err := c.ClassifyDay(2025, day)
		if err != nil {
			t.Fatal(err)
		}
		counts[class]++
	}
	// Dec 31 is completed but in the future: future wins.
	if counts[PastComplete] != 2 {
		t.Errorf("complete = %d, want 2", counts[PastComplete])
	}
	if counts[Future] != 365-166 {
		t.Errorf("future = %d, want %d", counts[Future], 365-166)
	}
	if counts[PastIncomplete]+counts[PastComplete]+counts[Future] != 365 {
		t.Errorf("classes do not partition the year: %v", counts)
	}
}

func TestUnparseableDatesSkipped(t *testing.T) {
	c, warnings := New([]string{"2025-03-01", "not-a-date", "", "2025-03-01", "2025-13-01"}, june15)
	if len(warnings) != 3 {
		t.Fatalf("warnings = %d, want 3", len(warnings))
	}
	for _, w := range warnings {
		if !errors.Is(w, errors.ErrCodeInvalidDate) {
			t.Errorf("warning code = %v, want INVALID_DATE", errors.GetCode(w))
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (duplicates collapse)", c.Len())
	}
}

func TestEmptyCompleted(t *testing.T) {
	c, warnings := New(nil, june15)
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	for day := 0; day < 365; day++ {
		class, _, _ := c.ClassifyDay(2025, day)
		if class == PastComplete {
			t.Fatalf("day %d classified complete with no completed dates", day)
		}
	}
}

func TestClassifyDayOutOfRange(t *testing.T) {
	c, _ := New(nil, june15)
	if _, _, err := c.ClassifyDay(2025, 365); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("ClassifyDay(365) error = %v, want OUT_OF_RANGE", err)
	}
}

func TestCrossYearComparison(t *testing.T) {
	// Today in the following year: every 2025 day is in the past.
	c, _ := New(nil, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	class, _, _ := c.ClassifyDay(2025, 364)
	if class != PastIncomplete {
		t.Errorf("Dec 31 2025 seen from 2026 = %v, want incomplete", class)
	}
	if c.Today() != calendar.DayNumber(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("Today() should be the day number of the supplied instant")
	}
}

func TestClassString(t *testing.T) {
	if Future.String() != "future" || PastComplete.String() != "complete" || PastIncomplete.String() != "incomplete" {
		t.Error("unexpected Class strings")
	}
}
