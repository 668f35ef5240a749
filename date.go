package storyscout

import "regexp"

var (
	wordDateRe    = regexp.MustCompile(`[A-Za-z]+ \d{1,2}, \d{4}`)
	numericDateRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2}`)
)

// ExtractDate pulls a calendar date out of a free-form status string such
// as "updated June 15, 2023". The result stays in display form; extraction
// is best-effort and returns an empty string when no date-shaped substring
// is present.
func ExtractDate(text string) string {
	if match := wordDateRe.FindString(text); match != "" {
		return match
	}
	return numericDateRe.FindString(text)
}
