package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// Supported year range. The layout works for any Gregorian year, but values
// outside this window are almost always typos.
const (
	MinYear = 1900
	MaxYear = 2200
)

// ValidateYear checks that year falls in [MinYear, MaxYear].
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return New(ErrCodeInvalidYear, "year %d outside supported range [%d, %d]", year, MinYear, MaxYear)
	}
	return nil
}

// ValidateDimensions checks grid geometry.
//
// Validation rules:
//   - squareSize must be positive
//   - padding and monthGap must not be negative
//   - no value may be NaN or infinite
func ValidateDimensions(squareSize, padding, monthGap float64) error {
	fields := []struct {
		name string
		v    float64
	}{{"square size", squareSize}, {"padding", padding}, {"month gap", monthGap}}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return New(ErrCodeInvalidInput, "%s must be a finite number", f.name)
		}
	}
	if squareSize <= 0 {
		return New(ErrCodeInvalidInput, "square size must be positive, got %g", squareSize)
	}
	if padding < 0 {
		return New(ErrCodeInvalidInput, "padding cannot be negative, got %g", padding)
	}
	if monthGap < 0 {
		return New(ErrCodeInvalidInput, "month gap cannot be negative, got %g", monthGap)
	}
	return nil
}

// hexColorRegex matches #RGB and #RRGGBB.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor checks a hex color and an alpha in [0, 1].
func ValidateColor(hex string, alpha float64) error {
	if !hexColorRegex.MatchString(hex) {
		return New(ErrCodeInvalidConfig, "invalid color %q (want #RGB or #RRGGBB)", hex)
	}
	if alpha < 0 || alpha > 1 || math.IsNaN(alpha) {
		return New(ErrCodeInvalidConfig, "alpha for %s must be within [0, 1], got %g", hex, alpha)
	}
	return nil
}

// ValidatePath validates an output or input file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsFunc(path, func(r rune) bool { return r == '\x00' || unicode.IsControl(r) }) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}
	return nil
}
