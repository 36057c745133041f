package cart

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Clamp forces a line quantity into [MinQuantity, MaxQuantity].
func Clamp(n int) int {
	return min(MaxQuantity, max(MinQuantity, n))
}

// ParseQuantity reads a quantity typed by the visitor. Blank and
// non-numeric input is rejected so the caller can restore the previous
// value; fractions are truncated and the result is clamped.
func ParseQuantity(input string) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	v = math.Max(MinQuantity, math.Min(MaxQuantity, math.Trunc(v)))
	return int(v), true
}

func normalize(n int) int {
	if n < MinQuantity {
		return MinQuantity
	}
	return n
}
