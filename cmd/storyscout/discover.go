package main

import (
	"fmt"

	"github.com/fwojciec/storyscout"
	"golang.org/x/sync/errgroup"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	if c.Category == "" && c.Tag == "" {
		fmt.Fprintf(deps.Stderr, "error: a category or tag is required\n")
		return storyscout.Errorf(storyscout.EINVALID, "a category or tag is required")
	}

	policy := storyscout.AcceptancePolicy{
		MinReads:  c.MinReads,
		MinVotes:  c.MinVotes,
		MinParts:  c.MinParts,
		Bootstrap: c.Bootstrap,
	}

	// The two sources live on different hosts, so they can run in parallel
	// without violating either one's politeness limits.
	var wattpadStories, redditStories []*storyscout.Story
	g, ctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		var err error
		wattpadStories, err = deps.Wattpad.Discover(ctx, storyscout.DiscoveryQuery{
			Category:   c.Category,
			Tag:        c.Tag,
			Limit:      c.Limit,
			Language:   c.Language,
			Acceptance: policy,
		})
		return err
	})

	if c.Subreddit != "" && deps.Reddit != nil {
		g.Go(func() error {
			var err error
			redditStories, err = deps.Reddit.Discover(ctx, storyscout.DiscoveryQuery{
				Subreddit:  c.Subreddit,
				Limit:      c.Limit,
				Acceptance: policy,
			})
			return err
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storyscout.ErrorMessage(err))
		return err
	}

	stories := append(wattpadStories, redditStories...)
	return saveStories(deps, stories, c.DryRun)
}

// saveStories persists discovered stories unless dryRun is set, and prints
// one line per story either way.
func saveStories(deps *Dependencies, stories []*storyscout.Story, dryRun bool) error {
	if len(stories) == 0 {
		fmt.Fprintln(deps.Stdout, "No stories found.")
		return nil
	}

	saved := 0
	for _, story := range stories {
		if !dryRun {
			if err := deps.Stories.CreateStory(deps.Ctx, story); err != nil {
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", story.URL, storyscout.ErrorMessage(err))
				continue
			}
			saved++
		}
		id := story.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-8s %q by %s (%d reads, %d votes)\n",
			id, story.Source, story.Title, story.Author, story.Reads, story.Votes)
	}

	if dryRun {
		fmt.Fprintf(deps.Stdout, "Found %d stories (not saved)\n", len(stories))
	} else {
		fmt.Fprintf(deps.Stdout, "Saved %d stories\n", saved)
	}
	return nil
}
