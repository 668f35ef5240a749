package main

import (
	"fmt"

	"github.com/fwojciec/storyscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return storyscout.Errorf(storyscout.EINVALID, "use --force to confirm deletion")
	}

	story, err := deps.Stories.FindStoryByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	if err := deps.Stories.DeleteStory(deps.Ctx, story.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted story %q\n", story.Title)
	return nil
}
