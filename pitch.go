package storyscout

import (
	"context"
	"time"
)

// Pitch bundles the generated creative materials for one story.
type Pitch struct {
	ID      string `json:"id"`
	StoryID string `json:"storyId"`

	Title          string `json:"title"`
	AdaptationType string `json:"adaptationType"`
	Genre          string `json:"genre"`

	Assessment       *Assessment        `json:"assessment"`
	Logline          string             `json:"logline"`
	Synopsis         string             `json:"synopsis"`
	Characters       []CharacterProfile `json:"characters"`
	AudienceAnalysis string             `json:"audienceAnalysis"`
	TrailerScript    string             `json:"trailerScript"`
	AlternateEndings []string           `json:"alternateEndings"`
	Cast             []CastSuggestion   `json:"cast"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the pitch contains invalid fields.
func (p *Pitch) Validate() error {
	if p.StoryID == "" {
		return Errorf(EINVALID, "pitch story ID required")
	}
	if p.Title == "" {
		return Errorf(EINVALID, "pitch title required")
	}
	return nil
}

// PitchService represents a service for persisting pitches.
type PitchService interface {
	// CreatePitch saves a pitch.
	CreatePitch(ctx context.Context, pitch *Pitch) error

	// FindPitchByID retrieves a pitch by ID.
	// Returns ENOTFOUND if the pitch does not exist.
	FindPitchByID(ctx context.Context, id string) (*Pitch, error)

	// FindPitchesByStory retrieves all pitches for a story, newest first.
	FindPitchesByStory(ctx context.Context, storyID string) ([]*Pitch, error)

	// DeletePitchesByStory removes all pitches for a story.
	DeletePitchesByStory(ctx context.Context, storyID string) error
}

// ReportRenderer turns a pitch and its source story into a shareable
// document.
type ReportRenderer interface {
	Render(pitch *Pitch, story *Story) ([]byte, error)
}

// ReportWriter persists a rendered report and returns the path it was
// written to.
type ReportWriter interface {
	WriteReport(ctx context.Context, story *Story, report []byte) (string, error)
}
