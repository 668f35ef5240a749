package storyscout

import "context"

// Assessment is the structured adaptation-potential verdict for a story.
type Assessment struct {
	Score          float64  `json:"score"` // 0-10
	Justification  string   `json:"justification"`
	Genres         []string `json:"genres"`
	SimilarWorks   []string `json:"similarWorks"`
	AdaptationType string   `json:"adaptationType"` // Movie, TV Series, Novel, Short Story
	KeyElements    []string `json:"keyElements"`
	TargetAudience string   `json:"targetAudience"`
}

// CharacterProfile describes one principal character in a proposed
// adaptation.
type CharacterProfile struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Motivation  string `json:"motivation"`
}

// CastSuggestion pairs a character with a casting idea.
type CastSuggestion struct {
	Character string `json:"character"`
	Actor     string `json:"actor"`
	Rationale string `json:"rationale"`
}

// Intelligence scores stories and generates pitch materials using a
// generative model. Discovery never depends on this service; callers are
// expected to degrade to FallbackAssessment when it is unavailable.
type Intelligence interface {
	// AssessStory scores the story's adaptation potential.
	AssessStory(ctx context.Context, story *Story) (*Assessment, error)

	// GenerateLogline produces a one-paragraph pitch logline.
	GenerateLogline(ctx context.Context, story *Story, adaptationType string) (string, error)

	// GenerateSynopsis produces a beginning/middle/end plot synopsis.
	GenerateSynopsis(ctx context.Context, story *Story, adaptationType string) (string, error)

	// GenerateCharacters produces profiles for the principal characters.
	GenerateCharacters(ctx context.Context, story *Story, adaptationType string) ([]CharacterProfile, error)

	// GenerateAudience produces an audience and market analysis.
	GenerateAudience(ctx context.Context, story *Story, adaptationType, targetAudience string) (string, error)

	// GenerateTrailerScript produces a teaser trailer script.
	GenerateTrailerScript(ctx context.Context, story *Story, adaptationType, genre string) (string, error)

	// GenerateAlternateEndings produces n alternate endings for the synopsis.
	GenerateAlternateEndings(ctx context.Context, story *Story, synopsis, adaptationType string, n int) ([]string, error)

	// GenerateCastSuggestions proposes casting for the given characters.
	GenerateCastSuggestions(ctx context.Context, characters []CharacterProfile, adaptationType, genre string) ([]CastSuggestion, error)
}

// FallbackAssessment returns the static payload used when the intelligence
// service is unavailable or misconfigured. The reason is surfaced in the
// justification so callers can tell a degraded verdict from a real one.
func FallbackAssessment(reason string) *Assessment {
	if reason == "" {
		reason = "Detailed analysis is unavailable."
	}
	return &Assessment{
		Score:          5.0,
		Justification:  reason,
		Genres:         []string{"Drama"},
		SimilarWorks:   []string{"No similar works identified"},
		AdaptationType: "Movie",
		KeyElements:    []string{"Character development", "Plot", "Setting"},
		TargetAudience: "General audience",
	}
}
