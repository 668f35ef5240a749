package storyscout

import (
	"context"
	"time"
)

// Source identifies the platform a story was discovered on.
type Source string

// Supported discovery sources.
const (
	SourceWattpad Source = "wattpad"
	SourceReddit  Source = "reddit"
)

// UnknownAuthor is the sentinel used when no author can be recovered.
const UnknownAuthor = "Unknown Author"

// Story is the canonical normalized record produced by discovery,
// regardless of which source it came from.
//
// Title and URL are always non-empty for any story emitted by a source;
// candidates missing either are dropped during extraction, not defaulted.
// Reads, Votes and Parts are never negative, each independently defaulting
// to 0 when unparseable. Completed and Mature are set true only on positive
// textual evidence.
type Story struct {
	ID       string `json:"id"`
	Source   Source `json:"source"`
	SourceID string `json:"sourceId"` // platform-scoped identifier, may be empty

	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`

	CoverURL    string   `json:"coverUrl"`
	Description string   `json:"description"`
	Reads       int      `json:"reads"`
	Votes       int      `json:"votes"`
	Parts       int      `json:"parts"`
	Tags        []string `json:"tags"`

	Completed bool `json:"completed"`
	Mature    bool `json:"mature"`

	// Display-form date strings, best-effort; empty when unrecoverable.
	LastUpdated    string `json:"lastUpdated"`
	FirstPublished string `json:"firstPublished"`

	ContentSample string `json:"contentSample"`
	Language      string `json:"language"`

	Fingerprint  string    `json:"fingerprint"`
	DiscoveredAt time.Time `json:"discoveredAt"`
}

// Validate returns an error if the story violates the record invariants.
func (s *Story) Validate() error {
	if s.Title == "" {
		return Errorf(EINVALID, "story title required")
	}
	if s.URL == "" {
		return Errorf(EINVALID, "story URL required")
	}
	if s.Reads < 0 || s.Votes < 0 || s.Parts < 0 {
		return Errorf(EINVALID, "story counters must be non-negative")
	}
	for _, tag := range s.Tags {
		if tag == "" {
			return Errorf(EINVALID, "story tags must be non-empty")
		}
	}
	return nil
}

// StorySource discovers stories from a platform. Each call is independent
// and holds only local working state, so implementations are safe for
// concurrent use against different queries.
type StorySource interface {
	Discover(ctx context.Context, query DiscoveryQuery) ([]*Story, error)
}

// StoryService represents a service for persisting discovered stories.
type StoryService interface {
	// CreateStory saves a story. Re-saving a story with the same URL and
	// content fingerprint is a no-op.
	CreateStory(ctx context.Context, story *Story) error

	// FindStoryByID retrieves a story by ID.
	// Returns ENOTFOUND if the story does not exist.
	FindStoryByID(ctx context.Context, id string) (*Story, error)

	// FindStories retrieves stories matching the filter.
	FindStories(ctx context.Context, filter StoryFilter) ([]*Story, error)

	// DeleteStory permanently removes a story and its pitches.
	// Returns ENOTFOUND if the story does not exist.
	DeleteStory(ctx context.Context, id string) error
}

// StoryFilter represents a filter for FindStories.
type StoryFilter struct {
	ID     *string `json:"id"`
	Source *Source `json:"source"`
	URL    *string `json:"url"`
	Title  *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
