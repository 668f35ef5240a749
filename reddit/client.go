// Package reddit provides a storyscout.StorySource backed by the Reddit
// API. Unlike the scraped fiction site, Reddit offers structured JSON, so
// discovery here is an authenticated API exchange rather than extraction.
package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/discover"
)

// Default endpoints and identity.
const (
	DefaultTokenURL  = "https://www.reddit.com/api/v1/access_token"
	DefaultAPIURL    = "https://oauth.reddit.com"
	DefaultUserAgent = "storyscout:story-discovery:v1.0"
)

// Ensure Client implements storyscout.StorySource at compile time.
var _ storyscout.StorySource = (*Client)(nil)

// Client discovers stories from subreddit top listings using the
// client-credentials OAuth2 flow. Client is safe for concurrent use.
type Client struct {
	clientID     string
	clientSecret string
	userAgent    string

	tokenURL   string
	apiURL     string
	httpClient *http.Client
	now        func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoints overrides the token and API endpoints, mainly for tests
// against httptest servers.
func WithEndpoints(tokenURL, apiURL string) Option {
	return func(c *Client) {
		c.tokenURL = tokenURL
		c.apiURL = apiURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent overrides the User-Agent string. Reddit throttles
// aggressively on generic agents, so production callers should identify
// themselves.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a Client with the given application credentials.
// Credentials are trimmed; a client with empty credentials is valid to
// construct but fails with EINVALID on Discover.
func NewClient(clientID, clientSecret string, opts ...Option) *Client {
	c := &Client{
		clientID:     strings.TrimSpace(clientID),
		clientSecret: strings.TrimSpace(clientSecret),
		userAgent:    DefaultUserAgent,
		tokenURL:     DefaultTokenURL,
		apiURL:       DefaultAPIURL,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listing mirrors the subset of the Reddit listing payload we consume.
type listing struct {
	Data struct {
		Children []struct {
			Data post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type post struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Selftext      string  `json:"selftext"`
	Score         int     `json:"score"`
	NumComments   int     `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	Subreddit     string  `json:"subreddit"`
	Permalink     string  `json:"permalink"`
	IsSelf        bool    `json:"is_self"`
	Over18        bool    `json:"over_18"`
	LinkFlairText string  `json:"link_flair_text"`
}

// Discover fetches the subreddit's top listing for the query's time filter
// and maps qualifying text posts to stories. The listing is over-fetched by
// a factor of two so that engagement and self-post filtering can still fill
// the requested limit.
func (c *Client) Discover(ctx context.Context, query storyscout.DiscoveryQuery) ([]*storyscout.Story, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if query.Subreddit == "" {
		return nil, storyscout.Errorf(storyscout.EINVALID, "a subreddit is required")
	}
	if c.clientID == "" || c.clientSecret == "" {
		return nil, storyscout.Errorf(storyscout.EINVALID, "missing Reddit API credentials; provide both a client ID and a client secret")
	}

	timeFilter := query.TimeFilter
	if timeFilter == "" {
		timeFilter = "week"
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/r/%s/top?t=%s&limit=%d&raw_json=1",
		c.apiURL, url.PathEscape(query.Subreddit), url.QueryEscape(timeFilter), query.Limit*2)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EINTERNAL, "building listing request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, storyscout.Errorf(storyscout.EUNAVAILABLE, "fetching subreddit listing: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp.StatusCode)
	}

	var body listing
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, storyscout.Errorf(storyscout.EUNPROCESSABLE, "decoding subreddit listing: %v", err)
	}

	var stories []*storyscout.Story
	for _, child := range body.Data.Children {
		p := child.Data

		if !p.IsSelf || p.Selftext == "" || p.Selftext == "[removed]" || p.Selftext == "[deleted]" {
			continue
		}
		if p.Score < query.Acceptance.MinScore || p.NumComments < query.Acceptance.MinComments {
			continue
		}

		story := c.storyFromPost(p, query)
		stories = append(stories, story)

		if len(stories) >= query.Limit {
			break
		}
	}

	return stories, nil
}

func (c *Client) storyFromPost(p post, query storyscout.DiscoveryQuery) *storyscout.Story {
	text := CleanText(p.Selftext)

	story := &storyscout.Story{
		Source:   storyscout.SourceReddit,
		SourceID: p.ID,
		Title:    storyscout.NormalizeText(p.Title),
		Author:   p.Author,
		URL:      "https://www.reddit.com" + p.Permalink,

		Description:   storyscout.TruncateText(text, 500),
		ContentSample: text,

		// The forum has no read counter; comment volume is the closest
		// engagement analogue, and score maps to votes.
		Reads: p.NumComments,
		Votes: p.Score,
		Parts: 1,

		Tags:     tagsFromPost(p),
		Mature:   p.Over18,
		Language: query.Language,

		FirstPublished: time.Unix(int64(p.CreatedUTC), 0).UTC().Format("2006-01-02"),
		DiscoveredAt:   c.now().UTC(),
	}
	if story.Author == "" {
		story.Author = storyscout.UnknownAuthor
	}
	story.Fingerprint = discover.Fingerprint(story)
	return story
}

func tagsFromPost(p post) []string {
	tags := []string{strings.ToLower(p.Subreddit)}
	if flair := strings.TrimSpace(p.LinkFlairText); flair != "" {
		tags = append(tags, strings.ToLower(flair))
	}
	return tags
}

// accessToken returns a cached application token, refreshing it through the
// client-credentials grant when absent or within a minute of expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", storyscout.Errorf(storyscout.EINTERNAL, "building token request: %v", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", storyscout.Errorf(storyscout.EUNAVAILABLE, "requesting access token: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusUnauthorized || strings.Contains(string(body), "invalid_grant") {
			return "", storyscout.Errorf(storyscout.EINVALID, "invalid Reddit API credentials; check the client ID and client secret")
		}
		return "", classifyStatus(resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", storyscout.Errorf(storyscout.EUNPROCESSABLE, "decoding token response: %v", err)
	}
	if token.AccessToken == "" {
		return "", storyscout.Errorf(storyscout.EINVALID, "invalid Reddit API credentials; check the client ID and client secret")
	}

	c.token = token.AccessToken
	c.tokenExpiry = c.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return c.token, nil
}

func classifyStatus(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return storyscout.Errorf(storyscout.EINVALID, "invalid Reddit API credentials; check the client ID and client secret")
	case http.StatusForbidden:
		return storyscout.Errorf(storyscout.EINVALID, "insufficient permissions for the provided Reddit API credentials")
	case http.StatusTooManyRequests:
		return storyscout.Errorf(storyscout.EUNAVAILABLE, "Reddit API rate limit exceeded; try again later")
	default:
		return storyscout.Errorf(storyscout.EUNAVAILABLE, "Reddit API returned HTTP %d", status)
	}
}
