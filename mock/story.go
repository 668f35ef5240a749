package mock

import (
	"context"

	"github.com/fwojciec/storyscout"
)

var _ storyscout.StorySource = (*StorySource)(nil)

// StorySource is a mock implementation of storyscout.StorySource.
type StorySource struct {
	DiscoverFn func(ctx context.Context, query storyscout.DiscoveryQuery) ([]*storyscout.Story, error)
}

func (s *StorySource) Discover(ctx context.Context, query storyscout.DiscoveryQuery) ([]*storyscout.Story, error) {
	return s.DiscoverFn(ctx, query)
}

var _ storyscout.StoryService = (*StoryService)(nil)

// StoryService is a mock implementation of storyscout.StoryService.
type StoryService struct {
	CreateStoryFn   func(ctx context.Context, story *storyscout.Story) error
	FindStoryByIDFn func(ctx context.Context, id string) (*storyscout.Story, error)
	FindStoriesFn   func(ctx context.Context, filter storyscout.StoryFilter) ([]*storyscout.Story, error)
	DeleteStoryFn   func(ctx context.Context, id string) error
}

func (s *StoryService) CreateStory(ctx context.Context, story *storyscout.Story) error {
	return s.CreateStoryFn(ctx, story)
}

func (s *StoryService) FindStoryByID(ctx context.Context, id string) (*storyscout.Story, error) {
	return s.FindStoryByIDFn(ctx, id)
}

func (s *StoryService) FindStories(ctx context.Context, filter storyscout.StoryFilter) ([]*storyscout.Story, error) {
	return s.FindStoriesFn(ctx, filter)
}

func (s *StoryService) DeleteStory(ctx context.Context, id string) error {
	return s.DeleteStoryFn(ctx, id)
}

var _ storyscout.PitchService = (*PitchService)(nil)

// PitchService is a mock implementation of storyscout.PitchService.
type PitchService struct {
	CreatePitchFn         func(ctx context.Context, pitch *storyscout.Pitch) error
	FindPitchByIDFn       func(ctx context.Context, id string) (*storyscout.Pitch, error)
	FindPitchesByStoryFn  func(ctx context.Context, storyID string) ([]*storyscout.Pitch, error)
	DeletePitchesByStoryFn func(ctx context.Context, storyID string) error
}

func (s *PitchService) CreatePitch(ctx context.Context, pitch *storyscout.Pitch) error {
	return s.CreatePitchFn(ctx, pitch)
}

func (s *PitchService) FindPitchByID(ctx context.Context, id string) (*storyscout.Pitch, error) {
	return s.FindPitchByIDFn(ctx, id)
}

func (s *PitchService) FindPitchesByStory(ctx context.Context, storyID string) ([]*storyscout.Pitch, error) {
	return s.FindPitchesByStoryFn(ctx, storyID)
}

func (s *PitchService) DeletePitchesByStory(ctx context.Context, storyID string) error {
	return s.DeletePitchesByStoryFn(ctx, storyID)
}
