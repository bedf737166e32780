package io

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/heatgrid/pkg/errors"
)

func TestReadDates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"json array", `["2025-03-01", "2025-03-02"]`, []string{"2025-03-01", "2025-03-02"}},
		{"json keeps garbage", `["2025-03-01", "soon"]`, []string{"2025-03-01", "soon"}},
		{"lines", "2025-03-01\n\n# comment\n  2025-03-02  \n", []string{"2025-03-01", "2025-03-02"}},
		{"empty", "   \n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadDates(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadDates() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ReadDates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadDatesMalformedJSON(t *testing.T) {
	_, err := ReadDates(strings.NewReader(`["2025-03-01",`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ReadDates() err = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{"2025-03-02", "2025-03-01T10:00:00Z", "2025-03-01", "junk", "2025/01/05"})
	want := []string{"2025-01-05", "2025-03-01", "2025-03-02", "junk"}
	if !slices.Equal(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestWriteDates(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDates(&buf, []string{"2025-03-02", "2025-03-01", "2025-03-02"}); err != nil {
		t.Fatalf("WriteDates() error: %v", err)
	}
	want := "[\n  \"2025-03-01\",\n  \"2025-03-02\"\n]\n"
	if buf.String() != want {
		t.Errorf("WriteDates() = %q, want %q", buf.String(), want)
	}
}

func TestExportImportDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dates.json")

	if err := ExportDates(path, []string{"2025-06-01", "2025-01-01"}); err != nil {
		t.Fatalf("ExportDates() error: %v", err)
	}
	got, err := ImportDates(path)
	if err != nil {
		t.Fatalf("ImportDates() error: %v", err)
	}
	if want := []string{"2025-01-01", "2025-06-01"}; !slices.Equal(got, want) {
		t.Errorf("ImportDates() = %v, want %v", got, want)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestImportDatesMissing(t *testing.T) {
	_, err := ImportDates(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportDates() err = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := ImportDates(""); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("ImportDates(\"\") err = %v, want INVALID_PATH", err)
	}
}

func TestDateSet(t *testing.T) {
	s := NewDateSet([]string{"2025-03-01", "2025-03-01T08:00:00Z"})
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	mar1 := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	if s.Add(mar1) {
		t.Error("Add of an existing date reported new")
	}

	var wg sync.WaitGroup
	for d := 2; d <= 11; d++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			s.Add(time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC))
		}(d)
	}
	wg.Wait()

	dates := s.Dates()
	if len(dates) != 11 || dates[0] != "2025-03-01" || dates[10] != "2025-03-11" {
		t.Errorf("Dates() = %v", dates)
	}
}
