package main

import (
	"fmt"

	"github.com/fwojciec/storyscout"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	story, err := deps.Stories.FindStoryByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	pitches, err := deps.Pitches.FindPitchesByStory(deps.Ctx, story.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}
	if len(pitches) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no pitches for story %q. Use 'storyscout pitch' to generate one.\n", story.Title)
		return storyscout.Errorf(storyscout.ENOTFOUND, "no pitches for story %q", story.Title)
	}

	// FindPitchesByStory returns newest first.
	report, err := deps.Renderer.Render(pitches[0], story)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	path, err := deps.Reports.WriteReport(deps.Ctx, story, report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
