package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/storyscout"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	story, err := deps.Stories.FindStoryByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%q by %s\n", story.Title, story.Author)
	fmt.Fprintf(deps.Stdout, "ID:         %s\n", story.ID)
	fmt.Fprintf(deps.Stdout, "Source:     %s\n", story.Source)
	fmt.Fprintf(deps.Stdout, "URL:        %s\n", story.URL)
	fmt.Fprintf(deps.Stdout, "Engagement: %d reads, %d votes, %d parts\n", story.Reads, story.Votes, story.Parts)
	if len(story.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "Tags:       %s\n", strings.Join(story.Tags, ", "))
	}
	if story.Completed {
		fmt.Fprintln(deps.Stdout, "Status:     Completed")
	}
	if story.Mature {
		fmt.Fprintln(deps.Stdout, "Content:    Mature")
	}
	if story.Description != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", story.Description)
	}

	pitches, err := deps.Pitches.FindPitchesByStory(deps.Ctx, story.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	if len(pitches) > 0 {
		fmt.Fprintf(deps.Stdout, "\nPitches:\n")
		for _, p := range pitches {
			score := "-"
			if p.Assessment != nil {
				score = fmt.Sprintf("%.1f/10", p.Assessment.Score)
			}
			fmt.Fprintf(deps.Stdout, "  %s  %s  %s  %s\n",
				p.ID, p.CreatedAt.Format("2006-01-02"), p.AdaptationType, score)
		}
	}

	return nil
}
