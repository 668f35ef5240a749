package storyscout

import "context"

// CardLocator finds the repeated story-card fragments on a listing page.
// Implementations try an ordered cascade of structural queries and stop at
// the first one that matches, so the most specific (least false-positive
// prone) strategies win.
type CardLocator interface {
	// Locate returns the outer HTML of each story card in document order.
	// An empty result means no strategy matched the page structure; the
	// caller should treat that as a template change, not as zero results.
	Locate(html string) ([]string, error)
}

// CardExtractor builds a candidate story from a single card fragment.
// Extraction is a pure function of its input: the same fragment always
// yields the same candidate.
type CardExtractor interface {
	// Extract applies per-field heuristic cascades to the card fragment.
	// Relative URLs are resolved against baseURL. Returns EUNPROCESSABLE
	// when no title or no URL can be recovered; every other field defaults
	// silently (0, empty, false) when unrecoverable.
	Extract(cardHTML string, baseURL string) (*Story, error)
}

// TextExtractor extracts readable body text from an HTML document,
// discarding boilerplate. Used as the last resort when the paragraph
// selector cascade finds nothing on a first-part page.
type TextExtractor interface {
	ExtractText(html string) (string, error)
}

// Converter converts HTML markup to Markdown. Report rendering uses it to
// flatten fields that arrive as markup, such as feed entry bodies.
type Converter interface {
	Convert(html string) (string, error)
}

// DetailEnricher supplements a story with fields only present on its
// detail page.
type DetailEnricher interface {
	// Enrich fetches the page at storyURL and extracts a patch: fuller
	// description and tags, completion/maturity flags, publish dates, and
	// a short sample of the first part's text. Fetch or extraction
	// failures of any kind yield an empty patch: a single story's
	// enrichment must never abort a discovery run.
	Enrich(ctx context.Context, storyURL string) *StoryPatch
}
