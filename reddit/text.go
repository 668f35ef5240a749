package reddit

import (
	"regexp"
	"strings"

	"github.com/fwojciec/storyscout"
)

var markdownLinkRe = regexp.MustCompile(`\[.*?\]\(.*?\)`)

// CleanText flattens a self post's markdown body into plain prose:
// inline links are dropped, the common HTML entities Reddit double-escapes
// are restored, whitespace is collapsed, and the result is length-capped.
func CleanText(text string) string {
	text = markdownLinkRe.ReplaceAllString(text, "")
	text = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">").Replace(text)
	text = storyscout.NormalizeText(text)
	return storyscout.TruncateText(text, storyscout.MaxSampleLength)
}
