package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/discover"
	"github.com/fwojciec/storyscout/fs"
	"github.com/fwojciec/storyscout/gemini"
	"github.com/fwojciec/storyscout/goquery"
	"github.com/fwojciec/storyscout/htmltomarkdown"
	scouthttp "github.com/fwojciec/storyscout/http"
	"github.com/fwojciec/storyscout/markdown"
	"github.com/fwojciec/storyscout/reddit"
	"github.com/fwojciec/storyscout/rod"
	scoutslog "github.com/fwojciec/storyscout/slog"
	"github.com/fwojciec/storyscout/sqlite"
	"github.com/fwojciec/storyscout/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	StoryService storyscout.StoryService
	PitchService storyscout.PitchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("storyscout"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'storyscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STORYSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.StoryService = sqlite.NewStoryService(m.DB)
	m.PitchService = sqlite.NewPitchService(m.DB)
	deps.DB = m.DB
	deps.Stories = m.StoryService
	deps.Pitches = m.PitchService

	// Wire command-specific dependencies based on command
	if cmd == "discover" {
		var fetcher storyscout.Fetcher
		if cli.Discover.Browser {
			browserFetcher, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = browserFetcher
		} else {
			fetcher = scouthttp.NewFetcher()
		}
		fetcher = scoutslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		progress := func(event discover.ProgressEvent) {
			switch event.Type {
			case discover.ProgressListingFetched:
				fmt.Fprintf(stdout, "  Found %d story cards\n", event.Cards)
			case discover.ProgressCardSkipped:
				fmt.Fprintf(stderr, "  skip %s: %v\n", event.URL, event.Err)
			}
		}

		pipeline := discover.NewPipeline(
			fetcher,
			goquery.NewLocator(),
			goquery.NewCardExtractor(),
			goquery.NewDetailEnricher(fetcher, goquery.WithSampler(trafilatura.NewExtractor())),
			discover.WithProgress(progress),
		)
		deps.Wattpad = scoutslog.NewLoggingSource(pipeline, "wattpad", logger)
	}

	if cmd == "posts" || (cmd == "discover" && cli.Discover.Subreddit != "") {
		deps.Reddit = scoutslog.NewLoggingSource(redditSource(cli, stderr), "reddit", logger)
	}

	if cmd == "score" || cmd == "pitch" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			if cmd == "pitch" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}
			// score degrades to the static fallback assessment
		} else {
			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}
			deps.Intelligence = gemini.NewIntelligence(client)
		}
	}

	if cmd == "pitch" || cmd == "export" {
		deps.Renderer = markdown.NewRenderer(markdown.WithConverter(htmltomarkdown.NewConverter()))
	}

	if cmd == "export" {
		deps.Reports = fs.NewWriter(cli.Export.Out)
	}

	return kongCtx.Run(deps)
}

// redditSource picks the authenticated API client when credentials are
// available and the unauthenticated feed otherwise.
func redditSource(cli *CLI, stderr io.Writer) storyscout.StorySource {
	clientID := os.Getenv("REDDIT_CLIENT_ID")
	clientSecret := os.Getenv("REDDIT_CLIENT_SECRET")

	if cli.Posts.Feed || clientID == "" || clientSecret == "" {
		if !cli.Posts.Feed {
			fmt.Fprintln(stderr, "REDDIT_CLIENT_ID/REDDIT_CLIENT_SECRET not set; using the public feed (no engagement filtering)")
		}
		return reddit.NewFeedSource(reddit.WithFeedSampler(trafilatura.NewExtractor()))
	}
	return reddit.NewClient(clientID, clientSecret)
}

func defaultDBPath() string {
	if path := os.Getenv("STORYSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "storyscout.db"
	}
	dir := filepath.Join(home, ".storyscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "storyscout.db")
}
