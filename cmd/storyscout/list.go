package main

import (
	"fmt"

	"github.com/fwojciec/storyscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := storyscout.StoryFilter{Limit: c.Limit}
	if c.Source != "" {
		source := storyscout.Source(c.Source)
		filter.Source = &source
	}

	stories, err := deps.Stories.FindStories(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	if len(stories) == 0 {
		fmt.Fprintln(deps.Stdout, "No stories found. Use 'storyscout discover' or 'storyscout posts' to find some.")
		return nil
	}

	for _, s := range stories {
		fmt.Fprintf(deps.Stdout, "%s  %-8s %q by %s  %s\n", s.ID, s.Source, s.Title, s.Author, s.URL)
	}

	return nil
}
