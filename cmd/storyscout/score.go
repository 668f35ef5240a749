package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/storyscout"
)

// Run executes the score command.
func (c *ScoreCmd) Run(deps *Dependencies) error {
	story, err := deps.Stories.FindStoryByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	assessment := assessStory(deps, story)

	fmt.Fprintf(deps.Stdout, "%q by %s\n\n", story.Title, story.Author)
	fmt.Fprintf(deps.Stdout, "Score:           %.1f/10\n", assessment.Score)
	fmt.Fprintf(deps.Stdout, "Adaptation:      %s\n", assessment.AdaptationType)
	fmt.Fprintf(deps.Stdout, "Genres:          %s\n", strings.Join(assessment.Genres, ", "))
	fmt.Fprintf(deps.Stdout, "Similar works:   %s\n", strings.Join(assessment.SimilarWorks, ", "))
	fmt.Fprintf(deps.Stdout, "Key elements:    %s\n", strings.Join(assessment.KeyElements, ", "))
	fmt.Fprintf(deps.Stdout, "Target audience: %s\n", assessment.TargetAudience)
	fmt.Fprintf(deps.Stdout, "\n%s\n", assessment.Justification)

	return nil
}

// assessStory scores the story, degrading to the static fallback when the
// intelligence service is missing or fails.
func assessStory(deps *Dependencies, story *storyscout.Story) *storyscout.Assessment {
	if deps.Intelligence == nil {
		return storyscout.FallbackAssessment("GEMINI_API_KEY is not set; detailed analysis is unavailable.")
	}

	assessment, err := deps.Intelligence.AssessStory(deps.Ctx, story)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "assessment failed, using fallback: %s\n", storyscout.ErrorMessage(err))
		return storyscout.FallbackAssessment(storyscout.ErrorMessage(err))
	}
	return assessment
}
