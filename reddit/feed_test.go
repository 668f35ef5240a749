package reddit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/mock"
	"github.com/fwojciec/storyscout/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>top scoring links : nosleep</title>
  <entry>
    <author><name>/u/storyteller</name></author>
    <content type="html">&lt;p&gt;I never believed the house was watching us.&lt;/p&gt;</content>
    <id>t3_abc</id>
    <link href="https://www.reddit.com/r/nosleep/comments/abc/story/"/>
    <published>2024-06-15T12:30:00+00:00</published>
    <updated>2024-06-16T08:00:00+00:00</updated>
    <title>The House That Watches</title>
  </entry>
  <entry>
    <author><name>/u/other</name></author>
    <id>t3_def</id>
    <link href="https://www.reddit.com/r/nosleep/comments/def/story/"/>
    <title>Second Story</title>
  </entry>
  <entry>
    <id>t3_untitled</id>
    <link href="https://www.reddit.com/r/nosleep/comments/ghi/story/"/>
  </entry>
</feed>`

func TestFeedSource_Discover(t *testing.T) {
	t.Parallel()

	t.Run("parses entries from the Atom feed", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/r/nosleep/top/.rss", r.URL.Path)
			assert.Equal(t, "week", r.URL.Query().Get("t"))
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomFeed))
		}))
		defer srv.Close()

		source := reddit.NewFeedSource(reddit.WithFeedURL(srv.URL))

		stories, err := source.Discover(context.Background(), storyscout.DiscoveryQuery{
			Subreddit: "nosleep",
			Limit:     10,
		})
		require.NoError(t, err)
		require.Len(t, stories, 2) // the untitled entry is dropped

		s := stories[0]
		assert.Equal(t, storyscout.SourceReddit, s.Source)
		assert.Equal(t, "t3_abc", s.SourceID)
		assert.Equal(t, "The House That Watches", s.Title)
		assert.Equal(t, "storyteller", s.Author)
		assert.Equal(t, "https://www.reddit.com/r/nosleep/comments/abc/story/", s.URL)
		assert.Equal(t, []string{"nosleep"}, s.Tags)
		assert.Equal(t, "2024-06-15", s.FirstPublished)
		assert.Equal(t, "2024-06-16", s.LastUpdated)
		assert.NotEmpty(t, s.Fingerprint)
	})

	t.Run("flattens entry bodies through the sampler", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(atomFeed))
		}))
		defer srv.Close()

		sampler := &mock.TextExtractor{
			ExtractTextFn: func(html string) (string, error) {
				assert.Contains(t, html, "<p>")
				return "I never believed the house was watching us.", nil
			},
		}
		source := reddit.NewFeedSource(reddit.WithFeedURL(srv.URL), reddit.WithFeedSampler(sampler))

		stories, err := source.Discover(context.Background(), storyscout.DiscoveryQuery{Subreddit: "nosleep", Limit: 1})
		require.NoError(t, err)
		require.Len(t, stories, 1)
		assert.Equal(t, "I never believed the house was watching us.", stories[0].ContentSample)
	})

	t.Run("stops at the query limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(atomFeed))
		}))
		defer srv.Close()

		source := reddit.NewFeedSource(reddit.WithFeedURL(srv.URL))

		stories, err := source.Discover(context.Background(), storyscout.DiscoveryQuery{Subreddit: "nosleep", Limit: 1})
		require.NoError(t, err)
		assert.Len(t, stories, 1)
	})

	t.Run("malformed XML is unprocessable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<feed><entry></feed>"))
		}))
		defer srv.Close()

		source := reddit.NewFeedSource(reddit.WithFeedURL(srv.URL))

		_, err := source.Discover(context.Background(), storyscout.DiscoveryQuery{Subreddit: "nosleep", Limit: 5})
		require.Error(t, err)
		assert.Equal(t, storyscout.EUNPROCESSABLE, storyscout.ErrorCode(err))
	})

	t.Run("server errors are unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		source := reddit.NewFeedSource(reddit.WithFeedURL(srv.URL))

		_, err := source.Discover(context.Background(), storyscout.DiscoveryQuery{Subreddit: "nosleep", Limit: 5})
		require.Error(t, err)
		assert.Equal(t, storyscout.EUNAVAILABLE, storyscout.ErrorCode(err))
	})
}
