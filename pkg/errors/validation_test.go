package errors

import (
	"math"
	"testing"
)

func TestValidateYear(t *testing.T) {
	tests := []struct {
		year    int
		wantErr bool
	}{
		{2025, false},
		{MinYear, false},
		{MaxYear, false},
		{MinYear - 1, true},
		{MaxYear + 1, true},
		{0, true},
	}

	for _, tt := range tests {
		err := ValidateYear(tt.year)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateYear(%d) error = %v, wantErr %v", tt.year, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidYear) {
			t.Errorf("ValidateYear(%d) code = %v, want %v", tt.year, GetCode(err), ErrCodeInvalidYear)
		}
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name             string
		square, pad, gap float64
		wantErr          bool
	}{
		{"defaults", 18, 2.5, 20, false},
		{"no padding", 10, 0, 0, false},
		{"zero square", 0, 2, 2, true},
		{"negative padding", 10, -1, 2, true},
		{"negative gap", 10, 1, -2, true},
		{"nan square", math.NaN(), 1, 1, true},
		{"infinite gap", 10, 1, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.square, tt.pad, tt.gap)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		alpha   float64
		wantErr bool
	}{
		{"six digit", "#ba6306", 1, false},
		{"three digit", "#fff", 0.5, false},
		{"upper case", "#FF9F43", 1, false},
		{"missing hash", "ba6306", 1, true},
		{"named color", "red", 1, true},
		{"bad length", "#ba630", 1, true},
		{"alpha above one", "#000000", 1.5, true},
		{"negative alpha", "#000000", -0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.hex, tt.alpha)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q, %g) error = %v, wantErr %v", tt.hex, tt.alpha, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "heatmap.svg", false},
		{"nested", "out/2025/heatmap.png", false},
		{"absolute", "/tmp/heatmap.svg", false},
		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
