package storyscout

import (
	"regexp"
	"strings"
)

// MaxSampleLength caps free-text fields (descriptions, content samples)
// before they are handed to the intelligence service.
const MaxSampleLength = 8000

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeText collapses runs of whitespace into single spaces and trims
// the result. Extracted HTML text tends to carry layout newlines and
// indentation that mean nothing once flattened.
func NormalizeText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// TruncateText shortens text to at most max runes, appending an ellipsis
// when anything was cut. A max of 0 or less leaves the text unchanged.
func TruncateText(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
