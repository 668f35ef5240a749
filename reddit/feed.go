package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/discover"
)

// DefaultFeedURL is the root for unauthenticated Atom feeds.
const DefaultFeedURL = "https://www.reddit.com"

// Ensure FeedSource implements storyscout.StorySource at compile time.
var _ storyscout.StorySource = (*FeedSource)(nil)

// FeedSource discovers stories from a subreddit's public Atom feed. It
// needs no credentials but the feed carries no score or comment counts,
// so engagement floors cannot be applied; entries are taken in feed order
// up to the query limit. Use the API Client when credentials are available.
type FeedSource struct {
	feedURL    string
	userAgent  string
	httpClient *http.Client
	sampler    storyscout.TextExtractor
	now        func() time.Time
}

// FeedOption configures a FeedSource.
type FeedOption func(*FeedSource)

// WithFeedURL overrides the feed root, mainly for tests.
func WithFeedURL(feedURL string) FeedOption {
	return func(f *FeedSource) {
		f.feedURL = feedURL
	}
}

// WithFeedHTTPClient replaces the underlying HTTP client.
func WithFeedHTTPClient(httpClient *http.Client) FeedOption {
	return func(f *FeedSource) {
		f.httpClient = httpClient
	}
}

// WithFeedSampler installs a text extractor used to flatten the HTML
// bodies Atom entries carry. Without one, bodies are kept as-is.
func WithFeedSampler(sampler storyscout.TextExtractor) FeedOption {
	return func(f *FeedSource) {
		f.sampler = sampler
	}
}

// WithFeedClock replaces the wall clock, for tests.
func WithFeedClock(now func() time.Time) FeedOption {
	return func(f *FeedSource) {
		f.now = now
	}
}

// NewFeedSource creates a FeedSource.
func NewFeedSource(opts ...FeedOption) *FeedSource {
	f := &FeedSource{
		feedURL:    DefaultFeedURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Discover fetches and parses the subreddit's top feed.
func (f *FeedSource) Discover(ctx context.Context, query storyscout.DiscoveryQuery) ([]*storyscout.Story, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if query.Subreddit == "" {
		return nil, storyscout.Errorf(storyscout.EINVALID, "a subreddit is required")
	}

	timeFilter := query.TimeFilter
	if timeFilter == "" {
		timeFilter = "week"
	}

	endpoint := fmt.Sprintf("%s/r/%s/top/.rss?t=%s",
		f.feedURL, url.PathEscape(query.Subreddit), url.QueryEscape(timeFilter))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EINTERNAL, "building feed request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EUNAVAILABLE, "fetching subreddit feed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(resp.Body); err != nil {
		return nil, storyscout.Errorf(storyscout.EUNPROCESSABLE, "parsing subreddit feed: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, storyscout.Errorf(storyscout.EUNPROCESSABLE, "empty subreddit feed")
	}

	var stories []*storyscout.Story
	for _, entry := range root.SelectElements("entry") {
		story := f.storyFromEntry(entry, query)
		if story == nil {
			continue
		}
		stories = append(stories, story)
		if len(stories) >= query.Limit {
			break
		}
	}

	return stories, nil
}

// storyFromEntry maps one Atom entry to a story. Entries without a title
// or a link are dropped.
func (f *FeedSource) storyFromEntry(entry *etree.Element, query storyscout.DiscoveryQuery) *storyscout.Story {
	title := elementText(entry, "title")
	link := linkHref(entry)
	if title == "" || link == "" {
		return nil
	}

	author := strings.TrimPrefix(elementText(entry, "author/name"), "/u/")
	if author == "" {
		author = storyscout.UnknownAuthor
	}

	body := elementText(entry, "content")
	if f.sampler != nil && body != "" {
		if text, err := f.sampler.ExtractText(body); err == nil {
			body = text
		}
	}
	body = storyscout.TruncateText(storyscout.NormalizeText(body), storyscout.MaxSampleLength)

	story := &storyscout.Story{
		Source:   storyscout.SourceReddit,
		SourceID: elementText(entry, "id"),
		Title:    storyscout.NormalizeText(title),
		Author:   author,
		URL:      link,

		Description:   storyscout.TruncateText(body, 500),
		ContentSample: body,
		Parts:         1,

		Tags:     []string{strings.ToLower(query.Subreddit)},
		Language: query.Language,

		FirstPublished: datePart(elementText(entry, "published")),
		LastUpdated:    datePart(elementText(entry, "updated")),
		DiscoveredAt:   f.now().UTC(),
	}
	story.Fingerprint = discover.Fingerprint(story)
	return story
}

func elementText(parent *etree.Element, path string) string {
	el := parent.FindElement(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

func linkHref(entry *etree.Element) string {
	link := entry.SelectElement("link")
	if link == nil {
		return ""
	}
	return link.SelectAttrValue("href", "")
}

// datePart reduces an RFC 3339 timestamp to its date component.
func datePart(timestamp string) string {
	if len(timestamp) >= 10 {
		return timestamp[:10]
	}
	return timestamp
}
