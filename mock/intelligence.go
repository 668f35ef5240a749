package mock

import (
	"context"

	"github.com/fwojciec/storyscout"
)

var _ storyscout.Intelligence = (*Intelligence)(nil)

// Intelligence is a mock implementation of storyscout.Intelligence.
type Intelligence struct {
	AssessStoryFn              func(ctx context.Context, story *storyscout.Story) (*storyscout.Assessment, error)
	GenerateLoglineFn          func(ctx context.Context, story *storyscout.Story, adaptationType string) (string, error)
	GenerateSynopsisFn         func(ctx context.Context, story *storyscout.Story, adaptationType string) (string, error)
	GenerateCharactersFn       func(ctx context.Context, story *storyscout.Story, adaptationType string) ([]storyscout.CharacterProfile, error)
	GenerateAudienceFn         func(ctx context.Context, story *storyscout.Story, adaptationType, targetAudience string) (string, error)
	GenerateTrailerScriptFn    func(ctx context.Context, story *storyscout.Story, adaptationType, genre string) (string, error)
	GenerateAlternateEndingsFn func(ctx context.Context, story *storyscout.Story, synopsis, adaptationType string, n int) ([]string, error)
	GenerateCastSuggestionsFn  func(ctx context.Context, characters []storyscout.CharacterProfile, adaptationType, genre string) ([]storyscout.CastSuggestion, error)
}

func (i *Intelligence) AssessStory(ctx context.Context, story *storyscout.Story) (*storyscout.Assessment, error) {
	return i.AssessStoryFn(ctx, story)
}

func (i *Intelligence) GenerateLogline(ctx context.Context, story *storyscout.Story, adaptationType string) (string, error) {
	return i.GenerateLoglineFn(ctx, story, adaptationType)
}

func (i *Intelligence) GenerateSynopsis(ctx context.Context, story *storyscout.Story, adaptationType string) (string, error) {
	return i.GenerateSynopsisFn(ctx, story, adaptationType)
}

func (i *Intelligence) GenerateCharacters(ctx context.Context, story *storyscout.Story, adaptationType string) ([]storyscout.CharacterProfile, error) {
	return i.GenerateCharactersFn(ctx, story, adaptationType)
}

func (i *Intelligence) GenerateAudience(ctx context.Context, story *storyscout.Story, adaptationType, targetAudience string) (string, error) {
	return i.GenerateAudienceFn(ctx, story, adaptationType, targetAudience)
}

func (i *Intelligence) GenerateTrailerScript(ctx context.Context, story *storyscout.Story, adaptationType, genre string) (string, error) {
	return i.GenerateTrailerScriptFn(ctx, story, adaptationType, genre)
}

func (i *Intelligence) GenerateAlternateEndings(ctx context.Context, story *storyscout.Story, synopsis, adaptationType string, n int) ([]string, error) {
	return i.GenerateAlternateEndingsFn(ctx, story, synopsis, adaptationType, n)
}

func (i *Intelligence) GenerateCastSuggestions(ctx context.Context, characters []storyscout.CharacterProfile, adaptationType, genre string) ([]storyscout.CastSuggestion, error) {
	return i.GenerateCastSuggestionsFn(ctx, characters, adaptationType, genre)
}
