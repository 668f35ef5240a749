package main

import (
	"fmt"

	"github.com/fwojciec/storyscout"
)

// Run executes the pitch command.
func (c *PitchCmd) Run(deps *Dependencies) error {
	story, err := deps.Stories.FindStoryByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	assessment := assessStory(deps, story)

	adaptationType := c.AdaptationType
	if adaptationType == "" {
		adaptationType = assessment.AdaptationType
	}
	genre := c.Genre
	if genre == "" && len(assessment.Genres) > 0 {
		genre = assessment.Genres[0]
	}
	audience := c.Audience
	if audience == "" {
		audience = assessment.TargetAudience
	}

	pitch := &storyscout.Pitch{
		StoryID:        story.ID,
		Title:          story.Title,
		AdaptationType: adaptationType,
		Genre:          genre,
		Assessment:     assessment,
	}

	// Generation failures degrade the affected section, not the pitch.
	ctx := deps.Ctx
	pitch.Logline = generate(deps, "logline", func() (string, error) {
		return deps.Intelligence.GenerateLogline(ctx, story, adaptationType)
	})
	pitch.Synopsis = generate(deps, "synopsis", func() (string, error) {
		return deps.Intelligence.GenerateSynopsis(ctx, story, adaptationType)
	})
	pitch.Characters = generate(deps, "characters", func() ([]storyscout.CharacterProfile, error) {
		return deps.Intelligence.GenerateCharacters(ctx, story, adaptationType)
	})
	pitch.AudienceAnalysis = generate(deps, "audience analysis", func() (string, error) {
		return deps.Intelligence.GenerateAudience(ctx, story, adaptationType, audience)
	})
	pitch.TrailerScript = generate(deps, "trailer script", func() (string, error) {
		return deps.Intelligence.GenerateTrailerScript(ctx, story, adaptationType, genre)
	})
	if pitch.Synopsis != "" && c.Endings > 0 {
		pitch.AlternateEndings = generate(deps, "alternate endings", func() ([]string, error) {
			return deps.Intelligence.GenerateAlternateEndings(ctx, story, pitch.Synopsis, adaptationType, c.Endings)
		})
	}
	if len(pitch.Characters) > 0 {
		pitch.Cast = generate(deps, "cast suggestions", func() ([]storyscout.CastSuggestion, error) {
			return deps.Intelligence.GenerateCastSuggestions(ctx, pitch.Characters, adaptationType, genre)
		})
	}

	if err := deps.Pitches.CreatePitch(ctx, pitch); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	report, err := deps.Renderer.Render(pitch, story)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s", report)
	fmt.Fprintf(deps.Stderr, "Saved pitch %s\n", pitch.ID)
	return nil
}

// generate runs one pitch-material generator, reporting failures to stderr
// and returning the zero value so the pitch omits the section.
func generate[T any](deps *Dependencies, section string, fn func() (T, error)) T {
	result, err := fn()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", section, storyscout.ErrorMessage(err))
		var zero T
		return zero
	}
	return result
}
