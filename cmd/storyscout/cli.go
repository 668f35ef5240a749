package main

import (
	"context"
	"io"

	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Stories storyscout.StoryService
	Pitches storyscout.PitchService

	Wattpad storyscout.StorySource
	Reddit  storyscout.StorySource

	Intelligence storyscout.Intelligence
	Renderer     storyscout.ReportRenderer
	Reports      storyscout.ReportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log requests and timings to stderr"`

	Discover DiscoverCmd `cmd:"" help:"Discover stories from Wattpad listings"`
	Posts    PostsCmd    `cmd:"" help:"Discover stories from a subreddit"`
	Score    ScoreCmd    `cmd:"" help:"Assess a saved story's adaptation potential"`
	Pitch    PitchCmd    `cmd:"" help:"Generate pitch materials for a saved story"`
	List     ListCmd     `cmd:"" help:"List saved stories"`
	Show     ShowCmd     `cmd:"" help:"Show a saved story and its pitches"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a story and its pitches"`
	Export   ExportCmd   `cmd:"" help:"Write a pitch report to a file"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Category  string `short:"c" help:"Browse a curated category listing"`
	Tag       string `short:"t" help:"Search stories by tag"`
	Subreddit string `short:"r" help:"Also pull posts from this subreddit"`
	Limit     int    `short:"n" default:"10" help:"Maximum stories to collect"`
	Language  string `help:"Restrict listings to a language code"`
	MinReads  int    `default:"1000" help:"Minimum read count"`
	MinVotes  int    `default:"50" help:"Minimum vote count"`
	MinParts  int    `default:"0" help:"Minimum part count (applies after the bootstrap window)"`
	Bootstrap int    `default:"5" help:"Candidates accepted before thresholds apply"`
	Browser   bool   `short:"b" help:"Fetch through a headless browser"`
	DryRun    bool   `help:"Print results without saving"`
}

// PostsCmd is the "posts" subcommand.
type PostsCmd struct {
	Subreddit   string `arg:"" help:"Subreddit to pull top posts from"`
	TimeFilter  string `short:"T" default:"week" enum:"hour,day,week,month,year,all" help:"Top-posts time window"`
	Limit       int    `short:"n" default:"10" help:"Maximum stories to collect"`
	MinScore    int    `default:"50" help:"Minimum post score"`
	MinComments int    `default:"10" help:"Minimum comment count"`
	Feed        bool   `help:"Use the public feed instead of the API"`
	DryRun      bool   `help:"Print results without saving"`
}

// ScoreCmd is the "score" subcommand.
type ScoreCmd struct {
	ID string `arg:"" help:"Story ID"`
}

// PitchCmd is the "pitch" subcommand.
type PitchCmd struct {
	ID             string `arg:"" help:"Story ID"`
	AdaptationType string `short:"a" default:"" help:"Target format (Movie, TV Series, Novel, Short Story)"`
	Genre          string `short:"g" default:"" help:"Genre angle for the pitch"`
	Endings        int    `default:"2" help:"Number of alternate endings to generate"`
	Audience       string `default:"" help:"Audience to target in the market analysis"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source string `short:"s" default:"" enum:",wattpad,reddit" help:"Filter by source"`
	Limit  int    `short:"n" default:"50" help:"Maximum stories to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Story ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Story ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID  string `arg:"" help:"Story ID"`
	Out string `short:"o" default:"reports" help:"Directory to write the report to"`
}
