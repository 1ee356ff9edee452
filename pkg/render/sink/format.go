package sink

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// EscapeXML escapes s for use in SVG attribute values and text.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// parseColor parses a hex color, falling back to black on malformed input.
func parseColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// opacity maps the zero value to fully opaque.
func opacity(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}
