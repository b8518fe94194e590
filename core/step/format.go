package step

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders a value the way print and println write it: the
// shortest decimal that round trips, always with a fractional part in fixed
// notation, switching to exponent notation for very large or small
// magnitudes.
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil {
		return sci
	}

	// Position of the decimal point relative to the first significant digit.
	if decpt := exp + 1; decpt <= -4 || decpt > 16 {
		return sci
	}

	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}
