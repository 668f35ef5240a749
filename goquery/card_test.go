package goquery_test

import (
	"testing"

	"github.com/fwojciec/storyscout"
	ssgoquery "github.com/fwojciec/storyscout/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://www.wattpad.com"

func TestCardExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := ssgoquery.NewCardExtractor()

	t.Run("fully structured card", func(t *testing.T) {
		t.Parallel()

		card := `<li data-story-id="12345">
	<img class="cover" src="/covers/12345.jpg">
	<a class="title" href="/story/12345-midnight-run">Midnight Run</a>
	<span class="username">janedoe</span>
	<p class="description">A courier takes one last job.</p>
	<div class="stats">
		<span class="read-count">2.3M Reads</span>
		<span class="vote-count">327K Votes</span>
		<span class="part-count">45 Parts</span>
	</div>
	<div class="tag-items"><a>thriller</a><a>action</a><span class="tag"></span></div>
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Equal(t, "Midnight Run", story.Title)
		assert.Equal(t, "janedoe", story.Author)
		assert.Equal(t, "https://www.wattpad.com/story/12345-midnight-run", story.URL)
		assert.Equal(t, "https://www.wattpad.com/covers/12345.jpg", story.CoverURL)
		assert.Equal(t, "12345", story.SourceID)
		assert.Equal(t, "A courier takes one last job.", story.Description)
		assert.Equal(t, 2300000, story.Reads)
		assert.Equal(t, 327000, story.Votes)
		assert.Equal(t, 45, story.Parts)
		assert.Equal(t, []string{"thriller", "action"}, story.Tags)
		require.NoError(t, story.Validate())
	})

	t.Run("combined back-to-back counter block", func(t *testing.T) {
		t.Parallel()

		// Three counters render concatenated with no delimiter: reads,
		// votes, parts in that order.
		card := `<li><a href="/story/99-my-great-story">#3 My Great Story by janedoe17.8m327k45</a></li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Equal(t, "My Great Story", story.Title)
		assert.Equal(t, "janedoe", story.Author)
		assert.Equal(t, 17800000, story.Reads)
		assert.Equal(t, 327000, story.Votes)
		assert.Equal(t, 45, story.Parts)
	})

	t.Run("title from regex when no anchors carry text", func(t *testing.T) {
		t.Parallel()

		card := `<li><a href="/story/5"><img src="/c.jpg"></a>
#1 Ocean Hearts by skylar
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Equal(t, "Ocean Hearts", story.Title)
		assert.Equal(t, "skylar", story.Author)
	})

	t.Run("leading rank marker stripped from title element", func(t *testing.T) {
		t.Parallel()

		card := `<li><h3 class="story-title">#12 The Last Ember</h3><a href="/story/8-ember">read</a></li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, "The Last Ember", story.Title)
	})

	t.Run("boilerplate anchor text skipped", func(t *testing.T) {
		t.Parallel()

		card := `<li>
	<a href="/community">Community Happenings</a>
	<a href="/story/77-true-title">True Title</a>
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, "True Title", story.Title)
	})

	t.Run("contextual per-line counters", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/3-x">X</a>
<span>25.5k reads</span>
<span>1.2k likes</span>
<span>12 chapters</span>
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Equal(t, 25500, story.Reads)
		assert.Equal(t, 1200, story.Votes)
		assert.Equal(t, 12, story.Parts)
	})

	t.Run("dedicated vote element wins over later strategies", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/3-x">X</a>
<span class="vote-badge">901</span>
<span>10k reads</span>
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Equal(t, 901, story.Votes)
		assert.Equal(t, 10000, story.Reads)
	})

	t.Run("unrecoverable counters default to zero", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/3-x">Silence</a></li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Zero(t, story.Reads)
		assert.Zero(t, story.Votes)
		assert.Zero(t, story.Parts)
	})

	t.Run("isolated small integer read as parts, rank markers ignored", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/3-x">X</a>
<span>#2</span>
<span>37</span>
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, 37, story.Parts)
	})

	t.Run("author defaults to sentinel", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/3-x">No Byline</a></li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, storyscout.UnknownAuthor, story.Author)
	})

	t.Run("author by-prefix stripped", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/3-x">X</a><span class="by-author">by marcus</span></li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, "marcus", story.Author)
	})

	t.Run("no title rejects the candidate", func(t *testing.T) {
		t.Parallel()

		card := `<li><a href="/story/3-x"><img src="/c.jpg"></a></li>`

		_, err := e.Extract(card, baseURL)
		require.Error(t, err)
		assert.Equal(t, storyscout.EUNPROCESSABLE, storyscout.ErrorCode(err))
	})

	t.Run("no URL rejects the candidate", func(t *testing.T) {
		t.Parallel()

		card := `<li><span class="title">Adrift</span></li>`

		_, err := e.Extract(card, baseURL)
		require.Error(t, err)
		assert.Equal(t, storyscout.EUNPROCESSABLE, storyscout.ErrorCode(err))
	})

	t.Run("permalink-shaped anchor preferred when title is not a link", func(t *testing.T) {
		t.Parallel()

		card := `<li>
	<span class="title">Driftwood</span>
	<a href="/w/555">cover</a>
</li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, "https://www.wattpad.com/w/555", story.URL)
	})

	t.Run("absolute URLs pass through unchanged", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="https://www.wattpad.com/story/1-a">A</a></li>`

		story, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		assert.Equal(t, "https://www.wattpad.com/story/1-a", story.URL)
	})

	t.Run("extraction is idempotent", func(t *testing.T) {
		t.Parallel()

		card := `<li><a class="title" href="/story/12345-x">#3 My Great Story by janedoe17.8m327k45</a></li>`

		first, err := e.Extract(card, baseURL)
		require.NoError(t, err)
		second, err := e.Extract(card, baseURL)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
