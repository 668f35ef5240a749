// Package discover provides story discovery orchestration. It coordinates
// listing fetches, card location and extraction, detail enrichment, and
// politeness controls for the scraped fiction source.
package discover

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/bloom"
)

// DefaultBaseURL is the root of the fiction site the pipeline scrapes.
const DefaultBaseURL = "https://www.wattpad.com"

// Bloom filter sizing for per-pass URL deduplication.
const (
	expectedURLs      = 100000
	falsePositiveRate = 0.01
)

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressListingFetched ProgressType = iota
	ProgressCardSkipped
	ProgressDuplicateSkipped
	ProgressRejected
	ProgressAccepted
	ProgressFinished
)

// ProgressEvent reports progress during a discovery pass.
type ProgressEvent struct {
	Type       ProgressType
	URL        string
	Cards      int
	Accepted   int
	UniqueURLs uint
	Err        error
}

// ProgressFunc is a callback for reporting discovery progress.
type ProgressFunc func(event ProgressEvent)

// Ensure Pipeline implements storyscout.StorySource at compile time.
var _ storyscout.StorySource = (*Pipeline)(nil)

// Pipeline discovers stories by scraping one listing page per query,
// extracting a record per story card, and enriching accepted records
// from their detail pages. All requests go through the rate limiter.
//
// Each Discover call holds only local working state, so a single Pipeline
// may serve concurrent callers with different queries.
type Pipeline struct {
	fetcher   storyscout.Fetcher
	locator   storyscout.CardLocator
	extractor storyscout.CardExtractor
	enricher  storyscout.DetailEnricher

	limiter     Limiter
	baseURL     string
	retryDelays []time.Duration
	progress    ProgressFunc
	now         func() time.Time
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithBaseURL overrides the site root, mainly for tests against httptest
// servers.
func WithBaseURL(baseURL string) PipelineOption {
	return func(p *Pipeline) {
		p.baseURL = baseURL
	}
}

// WithLimiter replaces the default per-domain rate limiter.
func WithLimiter(limiter Limiter) PipelineOption {
	return func(p *Pipeline) {
		p.limiter = limiter
	}
}

// WithRetryDelays sets the backoff delays for failed fetches.
// Defaults to DefaultRetryDelays() if not specified.
func WithRetryDelays(delays []time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.retryDelays = delays
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) PipelineOption {
	return func(p *Pipeline) {
		p.progress = fn
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		p.now = now
	}
}

// DefaultRequestsPerSecond is the politeness ceiling for the scraped site.
const DefaultRequestsPerSecond = 0.5

// NewPipeline creates a Pipeline wired to the given collaborators.
func NewPipeline(
	fetcher storyscout.Fetcher,
	locator storyscout.CardLocator,
	extractor storyscout.CardExtractor,
	enricher storyscout.DetailEnricher,
	opts ...PipelineOption,
) *Pipeline {
	p := &Pipeline{
		fetcher:   fetcher,
		locator:   locator,
		extractor: extractor,
		enricher:  enricher,
		limiter:   NewDomainLimiter(DefaultRequestsPerSecond),
		baseURL:   DefaultBaseURL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ListingURL builds the listing page URL for a query: category queries
// browse a curated list, tag queries go through search.
func ListingURL(baseURL string, query storyscout.DiscoveryQuery) string {
	var listing string
	if query.Category != "" {
		listing = baseURL + "/stories/" + url.PathEscape(query.Category)
	} else {
		listing = baseURL + "/search/" + url.PathEscape(query.Tag)
	}
	if query.Language != "" {
		listing += "?language=" + url.QueryEscape(query.Language)
	}
	return listing
}

// Discover runs one discovery pass and returns the accepted stories, in
// listing order, up to the query limit. A listing-level failure returns an
// error with no partial results; per-card and enrichment failures degrade
// the affected record instead.
func (p *Pipeline) Discover(ctx context.Context, query storyscout.DiscoveryQuery) ([]*storyscout.Story, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if query.Category == "" && query.Tag == "" {
		return nil, storyscout.Errorf(storyscout.EINVALID, "a category or tag is required")
	}

	listingURL := ListingURL(p.baseURL, query)
	domain := domainOf(listingURL)

	if err := p.limiter.Wait(ctx, domain); err != nil {
		return nil, err
	}

	html, err := FetchWithRetryDelays(ctx, listingURL, p.fetcher.Fetch, nil, p.delays())
	if err != nil {
		return nil, err
	}

	cards, err := p.locator.Locate(html)
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, storyscout.Errorf(storyscout.EUNPROCESSABLE, "no story cards found at %s; the listing template may have changed", listingURL)
	}
	p.emit(ProgressEvent{Type: ProgressListingFetched, URL: listingURL, Cards: len(cards)})

	// Listings repeat promoted stories across sections; dedup is scoped to
	// this pass so repeated calls stay independent.
	seen := bloom.NewFilter(expectedURLs, falsePositiveRate)

	var accepted []*storyscout.Story
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return accepted, err
		}

		story, err := p.extractor.Extract(card, p.baseURL)
		if err != nil {
			p.emit(ProgressEvent{Type: ProgressCardSkipped, Err: err})
			continue
		}

		if seen.Test(story.URL) {
			p.emit(ProgressEvent{Type: ProgressDuplicateSkipped, URL: story.URL})
			continue
		}
		seen.Add(story.URL)

		if !query.Acceptance.Accept(story, len(accepted)) {
			p.emit(ProgressEvent{Type: ProgressRejected, URL: story.URL})
			continue
		}

		if p.enricher != nil {
			if err := p.limiter.Wait(ctx, domain); err != nil {
				return accepted, err
			}
			patch := p.enricher.Enrich(ctx, story.URL)
			patch.Apply(story)
		}

		story.Source = storyscout.SourceWattpad
		if story.Language == "" {
			story.Language = query.Language
		}
		story.Fingerprint = Fingerprint(story)
		story.DiscoveredAt = p.now().UTC()

		accepted = append(accepted, story)
		p.emit(ProgressEvent{Type: ProgressAccepted, URL: story.URL, Accepted: len(accepted)})

		if len(accepted) >= query.Limit {
			break
		}
	}

	p.emit(ProgressEvent{Type: ProgressFinished, Accepted: len(accepted), UniqueURLs: seen.EstimatedCount()})
	return accepted, nil
}

// Fingerprint computes a stable content hash used to detect re-discoveries
// of an unchanged story.
func Fingerprint(s *storyscout.Story) string {
	h := xxhash.New()
	_, _ = h.WriteString(s.URL)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(s.Title)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(s.Description)
	return fmt.Sprintf("%016x", h.Sum64())
}

func (p *Pipeline) delays() []time.Duration {
	if p.retryDelays == nil {
		return DefaultRetryDelays()
	}
	return p.retryDelays
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.progress != nil {
		p.progress(event)
	}
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
