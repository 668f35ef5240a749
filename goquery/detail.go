package goquery

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/storyscout"
)

// Ensure DetailEnricher implements storyscout.DetailEnricher at compile time.
var _ storyscout.DetailEnricher = (*DetailEnricher)(nil)

// DefaultSampleParagraphs caps how many paragraph elements feed the
// content sample.
const DefaultSampleParagraphs = 5

// chapter link cascade, most specific first.
var chapterLinkSelectors = []string{
	"a.story-parts-title-container",
	"a.table-of-contents-item",
	`a[href*="/page/"]`,
	"a.part-link",
	"a.first-chapter",
}

// paragraph cascade for the first-part page.
var paragraphSelectors = []string{
	".page-paragraph",
	"p.paragraph",
	"pre.pre-content",
	"div.page-content p",
}

// DetailEnricher fetches a story's detail page and extracts the fields
// only present there. Every failure inside Enrich is local: a fetch or
// parse problem yields an empty (or partial) patch, never an error.
type DetailEnricher struct {
	fetcher    storyscout.Fetcher
	sampler    storyscout.TextExtractor
	paragraphs int
	sampleMax  int
}

// DetailOption configures a DetailEnricher.
type DetailOption func(*DetailEnricher)

// WithSampler installs a fallback text extractor used when the paragraph
// selector cascade finds nothing on the first-part page.
func WithSampler(sampler storyscout.TextExtractor) DetailOption {
	return func(e *DetailEnricher) {
		e.sampler = sampler
	}
}

// WithSampleLimits overrides the paragraph count and sample length caps.
func WithSampleLimits(paragraphs, sampleMax int) DetailOption {
	return func(e *DetailEnricher) {
		e.paragraphs = paragraphs
		e.sampleMax = sampleMax
	}
}

// NewDetailEnricher creates a DetailEnricher using the given fetcher.
func NewDetailEnricher(fetcher storyscout.Fetcher, opts ...DetailOption) *DetailEnricher {
	e := &DetailEnricher{
		fetcher:    fetcher,
		paragraphs: DefaultSampleParagraphs,
		sampleMax:  storyscout.MaxSampleLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich fetches the page at storyURL and extracts a patch.
func (e *DetailEnricher) Enrich(ctx context.Context, storyURL string) *storyscout.StoryPatch {
	patch := &storyscout.StoryPatch{}

	html, err := e.fetcher.Fetch(ctx, storyURL)
	if err != nil {
		return patch
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return patch
	}

	for _, selector := range []string{".description", ".story-description", "pre.description"} {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			patch.Description = storyscout.NormalizeText(sel.Text())
			break
		}
	}

	patch.Tags = tagsFrom(doc.Selection)
	patch.Completed = extractCompleted(doc)
	patch.Mature = extractMature(doc)
	patch.LastUpdated, patch.FirstPublished = extractDates(doc)

	// The sample requires a second fetch; problems there must never
	// clobber the primary fields extracted above.
	patch.ContentSample = e.extractSample(ctx, doc, storyURL)

	return patch
}

// extractCompleted looks for explicit completion text on status badges.
// Positive evidence only: absence of a badge never implies completion.
func extractCompleted(doc *goquery.Document) bool {
	for _, selector := range []string{".story-badges .badge-status", ".badge-status", ".story-status"} {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(sel.Text()), "complete") {
			return true
		}
	}
	return false
}

// extractMature checks for a maturity badge or an explicit "mature
// content" notice. Positive evidence only.
func extractMature(doc *goquery.Document) bool {
	if doc.Find(".badge-mature, .mature-badge").Length() > 0 {
		return true
	}
	return strings.Contains(strings.ToLower(doc.Text()), "mature content")
}

func extractDates(doc *goquery.Document) (lastUpdated, firstPublished string) {
	doc.Find(".story-details .date, .date-info, .story-date").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "updated"):
			if lastUpdated == "" {
				lastUpdated = storyscout.ExtractDate(text)
			}
		case strings.Contains(lower, "published"):
			if firstPublished == "" {
				firstPublished = storyscout.ExtractDate(text)
			}
		}
	})
	return lastUpdated, firstPublished
}

// extractSample follows the first chapter-shaped link and concatenates
// the text of the leading content paragraphs into a length-capped sample.
// Any failure yields an empty sample.
func (e *DetailEnricher) extractSample(ctx context.Context, doc *goquery.Document, storyURL string) string {
	base, err := url.Parse(storyURL)
	if err != nil {
		return ""
	}

	chapterURL := findChapterURL(doc, base)
	if chapterURL == "" {
		return ""
	}

	html, err := e.fetcher.Fetch(ctx, chapterURL)
	if err != nil {
		return ""
	}

	chapter, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, selector := range paragraphSelectors {
		sel := chapter.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		sel.EachWithBreak(func(i int, para *goquery.Selection) bool {
			if i >= e.paragraphs {
				return false
			}
			sb.WriteString(strings.TrimSpace(para.Text()))
			sb.WriteString("\n\n")
			return true
		})
		break
	}

	sample := storyscout.NormalizeText(sb.String())
	if sample == "" && e.sampler != nil {
		if text, err := e.sampler.ExtractText(html); err == nil {
			sample = storyscout.NormalizeText(text)
		}
	}

	return storyscout.TruncateText(sample, e.sampleMax)
}

// findChapterURL runs the chapter link cascade, then falls back to any
// anchor whose path looks like a chapter permalink.
func findChapterURL(doc *goquery.Document, base *url.URL) string {
	for _, selector := range chapterLinkSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if href, ok := sel.Attr("href"); ok && href != "" {
			return resolveURL(base, href)
		}
	}

	found := ""
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok {
			return true
		}
		if strings.Contains(href, "/page/") || strings.Contains(href, "/part/") || strings.Contains(href, "/chapter/") {
			found = resolveURL(base, href)
			return false
		}
		return true
	})
	return found
}
