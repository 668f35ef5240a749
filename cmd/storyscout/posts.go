package main

import (
	"fmt"

	"github.com/fwojciec/storyscout"
)

// Run executes the posts command.
func (c *PostsCmd) Run(deps *Dependencies) error {
	stories, err := deps.Reddit.Discover(deps.Ctx, storyscout.DiscoveryQuery{
		Subreddit:  c.Subreddit,
		TimeFilter: c.TimeFilter,
		Limit:      c.Limit,
		Acceptance: storyscout.AcceptancePolicy{
			MinScore:    c.MinScore,
			MinComments: c.MinComments,
		},
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	return saveStories(deps, stories, c.DryRun)
}
