package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/storyscout"
	main "github.com/fwojciec/storyscout/cmd/storyscout"
	"github.com/fwojciec/storyscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows story details and pitches", func(t *testing.T) {
		t.Parallel()

		stories := &mock.StoryService{
			FindStoryByIDFn: func(_ context.Context, id string) (*storyscout.Story, error) {
				return &storyscout.Story{
					ID:          id,
					Source:      storyscout.SourceWattpad,
					Title:       "The House That Watches",
					Author:      "janedoe",
					URL:         "https://www.wattpad.com/story/1",
					Description: "A family moves into a house that studies them.",
					Reads:       17800000,
					Votes:       327000,
					Parts:       45,
					Tags:        []string{"horror", "paranormal"},
					Completed:   true,
					Mature:      true,
				}, nil
			},
		}
		pitches := &mock.PitchService{
			FindPitchesByStoryFn: func(_ context.Context, storyID string) ([]*storyscout.Pitch, error) {
				return []*storyscout.Pitch{
					{
						ID:             "pitch-1",
						StoryID:        storyID,
						AdaptationType: "Movie",
						Assessment:     &storyscout.Assessment{Score: 8.5},
						CreatedAt:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Stories: stories,
			Pitches: pitches,
		}

		cmd := &main.ShowCmd{ID: "story-1"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "The House That Watches")
		assert.Contains(t, output, "17800000 reads, 327000 votes, 45 parts")
		assert.Contains(t, output, "horror, paranormal")
		assert.Contains(t, output, "Completed")
		assert.Contains(t, output, "Mature")
		assert.Contains(t, output, "pitch-1")
		assert.Contains(t, output, "8.5/10")
	})

	t.Run("returns error for missing story", func(t *testing.T) {
		t.Parallel()

		stories := &mock.StoryService{
			FindStoryByIDFn: func(_ context.Context, id string) (*storyscout.Story, error) {
				return nil, storyscout.Errorf(storyscout.ENOTFOUND, "story not found")
			},
		}

		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  &bytes.Buffer{},
			Stories: stories,
		}

		cmd := &main.ShowCmd{ID: "missing"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, storyscout.ENOTFOUND, storyscout.ErrorCode(err))
	})
}
