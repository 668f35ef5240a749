package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storyscout"
)

// Ensure CardExtractor implements storyscout.CardExtractor at compile time.
var _ storyscout.CardExtractor = (*CardExtractor)(nil)

var (
	rankPrefixRe    = regexp.MustCompile(`^#\d+\s*`)
	rankMarkerRe    = regexp.MustCompile(`#\d+`)
	titleByRe       = regexp.MustCompile(`#\d+\s*(.+?)\s*by\s`)
	authorByRe      = regexp.MustCompile(`by\s+(\S+)`)
	authorStatsRe   = regexp.MustCompile(`(?i)\d+\.?\d*[kmb]\S*$`)
	storyIDRe       = regexp.MustCompile(`/story/(\d+)`)
	digitRe         = regexp.MustCompile(`\d`)
	combinedStatsRe = regexp.MustCompile(`(?i)(\d+\.?\d*[kmb]?)(\d+\.?\d*[kmb]?)(\d+)`)
	suffixedNumRe   = regexp.MustCompile(`(?i)\b\d+\.?\d*[kmb]\b`)
	readsLineRe     = regexp.MustCompile(`(?i)(\d+\.?\d*[kmb]?)\s*(?:read|view|visit)`)
	votesLineRe     = regexp.MustCompile(`(?i)(\d+\.?\d*[kmb]?)\s*(?:vote|like)`)
	partsLineRe     = regexp.MustCompile(`(?i)(\d+)\s*(?:part|chapter)`)
	isolatedIntRe   = regexp.MustCompile(`\b(\d{1,3})\b`)
)

// anchor texts that are site chrome rather than story titles.
var boilerplateAnchors = map[string]bool{
	"Community Happenings": true,
	"See all":              true,
	"Read more":            true,
}

// CardExtractor builds candidate stories from listing-card fragments.
// Extraction is a pure function of the fragment, so re-running it on the
// same card yields identical output.
type CardExtractor struct{}

// NewCardExtractor creates a new CardExtractor.
func NewCardExtractor() *CardExtractor {
	return &CardExtractor{}
}

// Extract applies per-field heuristic cascades to the card fragment.
// Title and URL are required; every other field silently defaults when no
// heuristic recovers it.
func (e *CardExtractor) Extract(cardHTML string, baseURL string) (*storyscout.Story, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHTML))
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EINVALID, "failed to parse card fragment: %v", err)
	}
	card := doc.Selection

	// Raw text keeps source line breaks, which the per-line counter
	// heuristics depend on.
	rawText := card.Text()
	flatText := storyscout.NormalizeText(rawText)

	title, titleSel := extractTitle(card, flatText)
	if title == "" {
		return nil, storyscout.Errorf(storyscout.EUNPROCESSABLE, "no title recoverable from card")
	}

	storyURL := extractURL(card, titleSel, base)
	if storyURL == "" {
		return nil, storyscout.Errorf(storyscout.EUNPROCESSABLE, "no story URL recoverable from card %q", title)
	}

	reads, votes, parts := extractCounters(card, rawText)

	story := &storyscout.Story{
		Source:      storyscout.SourceWattpad,
		SourceID:    extractStoryID(storyURL),
		Title:       title,
		Author:      extractAuthor(card, flatText),
		URL:         storyURL,
		CoverURL:    extractCover(card, base),
		Description: extractDescription(card),
		Reads:       reads,
		Votes:       votes,
		Parts:       parts,
		Tags:        extractTags(card),
	}
	return story, nil
}

// extractTitle runs the title cascade: dedicated title elements, then
// anchor-text scanning, then the "#<rank> <title> by <author>" pattern
// over the flattened text. Any leading rank marker is stripped.
// The matched selection is returned so the URL cascade can reuse it.
func extractTitle(card *goquery.Selection, flatText string) (string, *goquery.Selection) {
	var titleSel *goquery.Selection

	title := ""
	for _, selector := range []string{".title", "h3.story-title", "h3"} {
		sel := card.Find(selector).First()
		if sel.Length() > 0 {
			title = strings.TrimSpace(sel.Text())
			titleSel = sel
			break
		}
	}

	if title == "" {
		card.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if text != "" && !boilerplateAnchors[text] {
				title = text
				return false
			}
			return true
		})
	}

	if title == "" {
		if m := titleByRe.FindStringSubmatch(flatText); m != nil {
			title = m[1]
		}
	}

	return cleanTitle(title), titleSel
}

// cleanTitle strips rank markers and trailing byline noise from a title
// candidate. Some templates flatten the whole "#<rank> <title> by
// <author><counters>" block into one text node; the ranked pattern
// recovers the title proper from those.
func cleanTitle(candidate string) string {
	if m := titleByRe.FindStringSubmatch(candidate); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(rankPrefixRe.ReplaceAllString(candidate, ""))
}

// extractURL runs the URL cascade: the title element when it is itself a
// link, then the first anchor, then any anchor whose path looks like a
// story permalink. Relative paths resolve against the site origin.
func extractURL(card *goquery.Selection, titleSel *goquery.Selection, base *url.URL) string {
	if titleSel != nil && goquery.NodeName(titleSel) == "a" {
		if href, ok := titleSel.Attr("href"); ok && href != "" {
			return resolveURL(base, href)
		}
	}

	if href, ok := card.Find("a").First().Attr("href"); ok && href != "" {
		if resolved := resolveURL(base, href); resolved != "" {
			return resolved
		}
	}

	found := ""
	card.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if ok && isStoryPath(href) {
			found = resolveURL(base, href)
			return false
		}
		return true
	})
	return found
}

// extractCounters recovers the reads/votes/parts counters. This is the
// most failure-prone field set because the same visual counter block
// renders inconsistently across page templates. Four strategies run in
// order, each filling only fields the previous ones left at zero; a
// counter no strategy recovers stays 0, which is a declared approximation
// rather than an error.
func extractCounters(card *goquery.Selection, rawText string) (reads, votes, parts int) {
	lowerText := strings.ToLower(rawText)
	lines := strings.Split(lowerText, "\n")

	// 1. Dedicated vote-labeled sub-elements.
	card.Find(`[class*="vote"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if digitRe.MatchString(text) {
			votes = storyscout.ParseCount(text)
			return false
		}
		return true
	})

	// 2. Three counters rendered back-to-back with no delimiter, e.g.
	// "17.8m327k45": first is reads, second votes, third parts.
	if m := combinedStatsRe.FindStringSubmatch(lowerText); m != nil {
		if reads == 0 {
			reads = storyscout.ParseCount(m[1])
		}
		if votes == 0 {
			votes = storyscout.ParseCount(m[2])
		}
		if parts == 0 {
			parts = storyscout.ParseCount(m[3])
		}
	}

	// 3. Numbers paired with a keyword on the same line.
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if reads == 0 && strings.Contains(line, "read") {
			if m := readsLineRe.FindStringSubmatch(line); m != nil {
				reads = storyscout.ParseCount(m[1])
			}
		}
		if votes == 0 && (strings.Contains(line, "vote") || strings.Contains(line, "like")) {
			if m := votesLineRe.FindStringSubmatch(line); m != nil {
				votes = storyscout.ParseCount(m[1])
			}
		}
		if parts == 0 && (strings.Contains(line, "part") || strings.Contains(line, "chapter")) {
			if m := partsLineRe.FindStringSubmatch(line); m != nil {
				parts = storyscout.ParseCount(m[1])
			}
		}
	}

	// 4. Last resort: any standalone suffixed number reads as reads; an
	// isolated 1-3 digit integer away from rank markers, in the plausible
	// [1,100] range, reads as parts.
	if reads == 0 {
		if m := suffixedNumRe.FindString(lowerText); m != "" {
			reads = storyscout.ParseCount(m)
		}
	}
	if parts == 0 {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if rankMarkerRe.MatchString(line) {
				continue
			}
			if m := isolatedIntRe.FindStringSubmatch(line); m != nil {
				candidate := storyscout.ParseCount(m[1])
				if candidate >= 1 && candidate <= 100 {
					parts = candidate
					break
				}
			}
		}
	}

	return reads, votes, parts
}

// extractAuthor runs the author cascade: dedicated elements, then a
// "by <token>" pattern over the flattened text. Defaults to the
// UnknownAuthor sentinel.
func extractAuthor(card *goquery.Selection, flatText string) string {
	author := ""
	for _, selector := range []string{".username", ".by-author", "span.author"} {
		sel := card.Find(selector).First()
		if sel.Length() > 0 {
			author = strings.TrimSpace(sel.Text())
			break
		}
	}

	if author == "" {
		if m := authorByRe.FindStringSubmatch(flatText); m != nil {
			// Counter blocks sometimes render glued to the username
			// ("by janedoe17.8m327k45"); drop everything from the first
			// suffixed number onward.
			author = strings.TrimSpace(authorStatsRe.ReplaceAllString(m[1], ""))
		}
	}

	if lower := strings.ToLower(author); strings.HasPrefix(lower, "by ") {
		author = strings.TrimSpace(author[3:])
	}

	if author == "" {
		return storyscout.UnknownAuthor
	}
	return author
}

func extractDescription(card *goquery.Selection) string {
	for _, selector := range []string{".description", ".story-description", "p.description"} {
		sel := card.Find(selector).First()
		if sel.Length() > 0 {
			return storyscout.NormalizeText(sel.Text())
		}
	}
	return ""
}

// extractTags pulls tag strings from the first matching tag container.
// Empty strings never make it into the result; duplicates are kept and
// deduplicated at display time.
func extractTags(card *goquery.Selection) []string {
	return tagsFrom(card)
}

func tagsFrom(sel *goquery.Selection) []string {
	for _, selector := range []string{".tag-items", ".tag-list", ".story-tags"} {
		container := sel.Find(selector).First()
		if container.Length() == 0 {
			continue
		}

		var tags []string
		container.Find("a, span.tag").Each(func(_ int, tag *goquery.Selection) {
			if text := storyscout.NormalizeText(tag.Text()); text != "" {
				tags = append(tags, text)
			}
		})
		return tags
	}
	return nil
}

func extractCover(card *goquery.Selection, base *url.URL) string {
	src, ok := card.Find("img.cover, img.story-cover").First().Attr("src")
	if !ok || src == "" {
		return ""
	}
	return resolveURL(base, src)
}

// extractStoryID recovers the platform-scoped numeric identifier from a
// story permalink. May be empty; the record stays valid without it.
func extractStoryID(storyURL string) string {
	if m := storyIDRe.FindStringSubmatch(storyURL); m != nil {
		return m[1]
	}
	return ""
}

// resolveURL resolves a relative href against a base URL.
// Returns an empty string when the href cannot be parsed.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
