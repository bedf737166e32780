package calendar

import (
	"testing"
	"time"

	"github.com/matzehuels/heatgrid/pkg/errors"
)

func TestMonths2025(t *testing.T) {
	months := Months(2025, time.Sunday)

	wantFirst := [12]int{3, 6, 6, 2, 4, 0, 2, 5, 1, 3, 6, 1}
	wantWeeks := [12]int{5, 5, 6, 5, 5, 5, 5, 6, 5, 5, 6, 5}
	for i, m := range months {
		if m.FirstDayOfWeek != wantFirst[i] {
			t.Errorf("%s FirstDayOfWeek = %d, want %d", m.Name, m.FirstDayOfWeek, wantFirst[i])
		}
		if m.Weeks() != wantWeeks[i] {
			t.Errorf("%s Weeks() = %d, want %d", m.Name, m.Weeks(), wantWeeks[i])
		}
	}
	if months[2].Name != "Mar" || months[2].StartDayOfYear != 59 {
		t.Errorf("March = %+v, want Mar starting at 59", months[2])
	}
}

func TestMonthsContiguous(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025, 1900, 2000} {
		months := Months(year, time.Monday)
		total := 0
		for i, m := range months {
			total += m.DayCount
			if i+1 < len(months) && months[i+1].StartDayOfYear != m.StartDayOfYear+m.DayCount {
				t.Errorf("%d: month %d starts at %d, want %d", year, i+1, months[i+1].StartDayOfYear, m.StartDayOfYear+m.DayCount)
			}
		}
		if total != DaysIn(year) {
			t.Errorf("%d: sum of day counts = %d, want %d", year, total, DaysIn(year))
		}
	}
}

func TestIsLeap(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{2024, true},
		{2025, false},
		{1900, false},
		{2000, true},
	}
	for _, tt := range tests {
		if got := IsLeap(tt.year); got != tt.want {
			t.Errorf("IsLeap(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestDateOf(t *testing.T) {
	d, err := DateOf(2025, 59)
	if err != nil {
		t.Fatalf("DateOf error: %v", err)
	}
	if got := d.Format(ISOLayout); got != "2025-03-01" {
		t.Errorf("DateOf(2025, 59) = %s, want 2025-03-01", got)
	}

	for _, day := range []int{-1, 365} {
		if _, err := DateOf(2025, day); !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("DateOf(2025, %d) error = %v, want OUT_OF_RANGE", day, err)
		}
	}
	if _, err := DateOf(2024, 365); err != nil {
		t.Errorf("DateOf(2024, 365) should be valid in a leap year: %v", err)
	}
}

func TestDayNumberIgnoresZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	la := time.FixedZone("PST", -8*3600)

	a := time.Date(2025, 3, 1, 0, 30, 0, 0, tokyo)
	b := time.Date(2025, 3, 1, 23, 30, 0, 0, la)
	if DayNumber(a) != DayNumber(b) {
		t.Errorf("same civil date in different zones: %d != %d", DayNumber(a), DayNumber(b))
	}
	if got := DayNumber(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Errorf("DayNumber(1970-01-02) = %d, want 1", got)
	}
	if got := FromDayNumber(DayNumber(a)).Format(ISOLayout); got != "2025-03-01" {
		t.Errorf("FromDayNumber round trip = %s, want 2025-03-01", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2025-03-01", "2025-03-01", false},
		{" 2025-03-01 ", "2025-03-01", false},
		{"2025-03-01T23:59:00+09:00", "2025-03-01", false},
		{"2025-03-01T10:00:00", "2025-03-01", false},
		{"2025/03/01", "2025-03-01", false},
		{"", "", true},
		{"yesterday", "", true},
		{"2025-02-30", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidDate) {
				t.Errorf("ParseDate(%q) code = %v, want INVALID_DATE", tt.input, errors.GetCode(err))
			}
			continue
		}
		if got.Format(ISOLayout) != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got.Format(ISOLayout), tt.want)
		}
	}
}

func TestWeekdays(t *testing.T) {
	if got := Weekdays(time.Sunday); got != [7]string{"S", "M", "T", "W", "T", "F", "S"} {
		t.Errorf("Weekdays(Sunday) = %v", got)
	}
	if got := Weekdays(time.Monday); got != [7]string{"M", "T", "W", "T", "F", "S", "S"} {
		t.Errorf("Weekdays(Monday) = %v", got)
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{"", time.Sunday, false},
		{"monday", time.Monday, false},
		{"Sat", time.Saturday, false},
		{"funday", time.Sunday, true},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v, wantErr %v", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}
