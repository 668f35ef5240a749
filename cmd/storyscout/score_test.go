package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/storyscout"
	main "github.com/fwojciec/storyscout/cmd/storyscout"
	"github.com/fwojciec/storyscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the assessment", func(t *testing.T) {
		t.Parallel()

		stories := &mock.StoryService{
			FindStoryByIDFn: func(_ context.Context, id string) (*storyscout.Story, error) {
				assert.Equal(t, "story-1", id)
				return &storyscout.Story{ID: "story-1", Title: "The House That Watches", Author: "janedoe", URL: "https://www.wattpad.com/story/1"}, nil
			},
		}
		intelligence := &mock.Intelligence{
			AssessStoryFn: func(_ context.Context, _ *storyscout.Story) (*storyscout.Assessment, error) {
				return &storyscout.Assessment{
					Score:          8.5,
					Justification:  "Contained setting, escalating dread.",
					Genres:         []string{"Horror", "Thriller"},
					SimilarWorks:   []string{"The Haunting of Hill House"},
					AdaptationType: "Movie",
					KeyElements:    []string{"Unreliable narrator"},
					TargetAudience: "Adults 18-34",
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       &bytes.Buffer{},
			Stories:      stories,
			Intelligence: intelligence,
		}

		cmd := &main.ScoreCmd{ID: "story-1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "8.5/10")
		assert.Contains(t, output, "Horror, Thriller")
		assert.Contains(t, output, "The Haunting of Hill House")
		assert.Contains(t, output, "Contained setting, escalating dread.")
	})

	t.Run("degrades to fallback without intelligence service", func(t *testing.T) {
		t.Parallel()

		stories := &mock.StoryService{
			FindStoryByIDFn: func(_ context.Context, id string) (*storyscout.Story, error) {
				return &storyscout.Story{ID: id, Title: "Untitled", URL: "https://www.wattpad.com/story/1"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Stories: stories,
		}

		cmd := &main.ScoreCmd{ID: "story-1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "5.0/10")
		assert.Contains(t, output, "GEMINI_API_KEY is not set")
	})

	t.Run("degrades to fallback when assessment fails", func(t *testing.T) {
		t.Parallel()

		stories := &mock.StoryService{
			FindStoryByIDFn: func(_ context.Context, id string) (*storyscout.Story, error) {
				return &storyscout.Story{ID: id, Title: "Untitled", URL: "https://www.wattpad.com/story/1"}, nil
			},
		}
		intelligence := &mock.Intelligence{
			AssessStoryFn: func(_ context.Context, _ *storyscout.Story) (*storyscout.Assessment, error) {
				return nil, storyscout.Errorf(storyscout.EUNAVAILABLE, "model overloaded")
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:          context.Background(),
			Stdout:       stdout,
			Stderr:       stderr,
			Stories:      stories,
			Intelligence: intelligence,
		}

		cmd := &main.ScoreCmd{ID: "story-1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "model overloaded")
		assert.Contains(t, stdout.String(), "5.0/10")
	})

	t.Run("returns error for missing story", func(t *testing.T) {
		t.Parallel()

		stories := &mock.StoryService{
			FindStoryByIDFn: func(_ context.Context, id string) (*storyscout.Story, error) {
				return nil, storyscout.Errorf(storyscout.ENOTFOUND, "story not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Stories: stories,
		}

		cmd := &main.ScoreCmd{ID: "missing"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, storyscout.ENOTFOUND, storyscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "story not found")
	})
}
