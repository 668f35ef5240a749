package storyscout

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var countRe = regexp.MustCompile(`[\d.]+`)

// ParseCount converts a human-readable quantity string to an integer.
// Engagement counters render abbreviated ("17.8m", "327K", "2.3M"); the
// k/m/b suffix multiplies by 1e3/1e6/1e9 and the result is rounded.
// Strings containing no digits parse to 0 rather than an error, because a
// missing counter is a declared approximation, not a failure.
func ParseCount(text string) int {
	if text == "" {
		return 0
	}

	text = strings.ToLower(strings.ReplaceAll(text, ",", ""))

	match := countRe.FindString(text)
	if match == "" {
		return 0
	}

	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(text, "k"):
		n *= 1e3
	case strings.Contains(text, "m"):
		n *= 1e6
	case strings.Contains(text, "b"):
		n *= 1e9
	}

	return int(math.Round(n))
}
