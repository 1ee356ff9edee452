package engine

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber reads a numeric input value. Empty, unparseable, non-finite,
// and zero values all yield def, so the result is always usable.
func ParseNumber(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
