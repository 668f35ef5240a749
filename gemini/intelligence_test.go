package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStory() *storyscout.Story {
	return &storyscout.Story{
		Title:         "The House That Watches",
		Author:        "storyteller",
		URL:           "https://www.reddit.com/r/nosleep/comments/abc/story/",
		Reads:         300,
		Votes:         5000,
		Parts:         1,
		ContentSample: "I never believed the house was watching us until the night the lights went out.",
	}
}

func TestIntelligence_AssessStory_RequiresTitle(t *testing.T) {
	t.Parallel()

	g := gemini.NewIntelligence(nil)

	_, err := g.AssessStory(context.Background(), &storyscout.Story{})
	require.Error(t, err)
	assert.Equal(t, storyscout.EINVALID, storyscout.ErrorCode(err))

	_, err = g.AssessStory(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, storyscout.EINVALID, storyscout.ErrorCode(err))
}

func TestIntelligence_GenerateCastSuggestions_RequiresCharacters(t *testing.T) {
	t.Parallel()

	g := gemini.NewIntelligence(nil)

	_, err := g.GenerateCastSuggestions(context.Background(), nil, "Movie", "Horror")
	require.Error(t, err)
	assert.Equal(t, storyscout.EINVALID, storyscout.ErrorCode(err))
}

func TestBuildTextConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildTextConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "development executive")
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.7, *config.Temperature, 0.001)
	assert.Empty(t, config.ResponseMIMEType)
}

func TestBuildJSONConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildJSONConfig(nil)

	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.SystemInstruction)
}

func TestBuildAssessPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildAssessPrompt(testStory())

	assert.Contains(t, prompt, "TITLE: The House That Watches")
	assert.Contains(t, prompt, "the house was watching us")
	assert.Contains(t, prompt, "300 reads, 5000 votes, 1 parts")
	assert.Contains(t, prompt, "scale of 1-10")
}

func TestBuildAssessPrompt_FallsBackToDescription(t *testing.T) {
	t.Parallel()

	s := testStory()
	s.ContentSample = ""
	s.Description = "A short teaser about a haunted house."

	prompt := gemini.BuildAssessPrompt(s)
	assert.Contains(t, prompt, "A short teaser about a haunted house.")
}

func TestBuildAssessPrompt_NoTextAvailable(t *testing.T) {
	t.Parallel()

	s := testStory()
	s.ContentSample = ""

	prompt := gemini.BuildAssessPrompt(s)
	assert.Contains(t, prompt, "no story text available")
}

func TestBuildLoglinePrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildLoglinePrompt(testStory(), "TV Series")

	assert.Contains(t, prompt, `TV Series adaptation of "The House That Watches"`)
	assert.Contains(t, prompt, "protagonist")
}

func TestBuildSynopsisPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildSynopsisPrompt(testStory(), "Movie")

	assert.Contains(t, prompt, "3-act structure")
	assert.Contains(t, prompt, "300-500 words")
}

func TestBuildEndingsPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildEndingsPrompt(testStory(), "The family escapes.", "Movie", 3)

	assert.Contains(t, prompt, "Propose 3 alternate endings")
	assert.Contains(t, prompt, "CURRENT SYNOPSIS: The family escapes.")
}

func TestBuildCastPrompt(t *testing.T) {
	t.Parallel()

	characters := []storyscout.CharacterProfile{
		{Name: "Mara", Role: "Protagonist", Description: "A skeptical new homeowner."},
		{Name: "The House", Role: "Antagonist", Description: "The watcher."},
	}

	prompt := gemini.BuildCastPrompt(characters, "Movie", "Horror")

	assert.Contains(t, prompt, "Horror Movie adaptation")
	assert.Contains(t, prompt, "- Mara (Protagonist): A skeptical new homeowner.")
	assert.Contains(t, prompt, "- The House (Antagonist)")
}

func TestFallbackAssessment(t *testing.T) {
	t.Parallel()

	a := storyscout.FallbackAssessment("intelligence service unavailable")

	assert.InDelta(t, 5.0, a.Score, 0.001)
	assert.Equal(t, "intelligence service unavailable", a.Justification)
	assert.Equal(t, "Movie", a.AdaptationType)
	assert.NotEmpty(t, a.Genres)
	assert.NotEmpty(t, a.KeyElements)
}
