package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor checks that s is a #rgb or #rrggbb hex color.
func ValidateColor(field, s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "%s cannot be empty", field)
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "%s must be a hex color like #38bdf8, got %q", field, s)
	}
	return nil
}

// ValidatePositive checks that v is a finite number greater than zero.
func ValidatePositive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(ErrCodeInvalidInput, "%s must be a positive number, got %v", field, v)
	}
	return nil
}

// ValidateNonNegative checks that v is a finite number not below zero.
func ValidateNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeInvalidInput, "%s must be zero or greater, got %v", field, v)
	}
	return nil
}

// ValidateFormat checks that format is one of valid.
func ValidateFormat(format string, valid map[string]bool) error {
	if !valid[format] {
		return New(ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}

// ValidateIdentifier validates an element identifier (surface, input, or
// output id). Identifiers are short and free of whitespace and control
// characters.
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "identifier too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "identifier %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, `<>"'&`) {
		return New(ErrCodeInvalidInput, "identifier %q contains markup characters", id)
	}
	return nil
}
