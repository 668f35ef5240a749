// Package gemini implements storyscout.Intelligence using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/storyscout"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// previewLimit caps how much story text is inlined into prompts.
const previewLimit = 4000

// Ensure Intelligence implements storyscout.Intelligence at compile time.
var _ storyscout.Intelligence = (*Intelligence)(nil)

// Intelligence scores stories and generates pitch materials through the
// Gemini API. Structured outputs use JSON response schemas so parsing
// never depends on prompt compliance.
type Intelligence struct {
	client *genai.Client
}

// NewIntelligence creates a new Intelligence.
func NewIntelligence(client *genai.Client) *Intelligence {
	return &Intelligence{client: client}
}

// AssessStory scores the story's adaptation potential.
func (g *Intelligence) AssessStory(ctx context.Context, story *storyscout.Story) (*storyscout.Assessment, error) {
	if err := validateStory(story); err != nil {
		return nil, err
	}

	var assessment storyscout.Assessment
	prompt := BuildAssessPrompt(story)
	if err := g.generateJSON(ctx, prompt, assessmentSchema(), &assessment); err != nil {
		return nil, err
	}
	fillAssessmentDefaults(&assessment)
	return &assessment, nil
}

// GenerateLogline produces a one-paragraph pitch logline.
func (g *Intelligence) GenerateLogline(ctx context.Context, story *storyscout.Story, adaptationType string) (string, error) {
	if err := validateStory(story); err != nil {
		return "", err
	}
	return g.generateText(ctx, BuildLoglinePrompt(story, adaptationType))
}

// GenerateSynopsis produces a beginning/middle/end plot synopsis.
func (g *Intelligence) GenerateSynopsis(ctx context.Context, story *storyscout.Story, adaptationType string) (string, error) {
	if err := validateStory(story); err != nil {
		return "", err
	}
	return g.generateText(ctx, BuildSynopsisPrompt(story, adaptationType))
}

// GenerateCharacters produces profiles for the principal characters.
func (g *Intelligence) GenerateCharacters(ctx context.Context, story *storyscout.Story, adaptationType string) ([]storyscout.CharacterProfile, error) {
	if err := validateStory(story); err != nil {
		return nil, err
	}

	var out struct {
		Characters []storyscout.CharacterProfile `json:"characters"`
	}
	prompt := BuildCharactersPrompt(story, adaptationType)
	if err := g.generateJSON(ctx, prompt, charactersSchema(), &out); err != nil {
		return nil, err
	}
	return out.Characters, nil
}

// GenerateAudience produces an audience and market analysis.
func (g *Intelligence) GenerateAudience(ctx context.Context, story *storyscout.Story, adaptationType, targetAudience string) (string, error) {
	if err := validateStory(story); err != nil {
		return "", err
	}
	return g.generateText(ctx, BuildAudiencePrompt(story, adaptationType, targetAudience))
}

// GenerateTrailerScript produces a teaser trailer script.
func (g *Intelligence) GenerateTrailerScript(ctx context.Context, story *storyscout.Story, adaptationType, genre string) (string, error) {
	if err := validateStory(story); err != nil {
		return "", err
	}
	return g.generateText(ctx, BuildTrailerPrompt(story, adaptationType, genre))
}

// GenerateAlternateEndings produces n alternate endings for the synopsis.
func (g *Intelligence) GenerateAlternateEndings(ctx context.Context, story *storyscout.Story, synopsis, adaptationType string, n int) ([]string, error) {
	if err := validateStory(story); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 2
	}

	var out struct {
		Endings []string `json:"endings"`
	}
	prompt := BuildEndingsPrompt(story, synopsis, adaptationType, n)
	if err := g.generateJSON(ctx, prompt, endingsSchema(), &out); err != nil {
		return nil, err
	}
	return out.Endings, nil
}

// GenerateCastSuggestions proposes casting for the given characters.
func (g *Intelligence) GenerateCastSuggestions(ctx context.Context, characters []storyscout.CharacterProfile, adaptationType, genre string) ([]storyscout.CastSuggestion, error) {
	if len(characters) == 0 {
		return nil, storyscout.Errorf(storyscout.EINVALID, "character profiles required")
	}

	var out struct {
		Cast []storyscout.CastSuggestion `json:"cast"`
	}
	prompt := BuildCastPrompt(characters, adaptationType, genre)
	if err := g.generateJSON(ctx, prompt, castSchema(), &out); err != nil {
		return nil, err
	}
	return out.Cast, nil
}

func (g *Intelligence) generateText(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildTextConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", storyscout.Errorf(storyscout.EINTERNAL, "gemini returned nil result")
	}
	return strings.TrimSpace(result.Text()), nil
}

func (g *Intelligence) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildJSONConfig(schema),
	)
	if err != nil {
		return err
	}
	if result == nil {
		return storyscout.Errorf(storyscout.EINTERNAL, "gemini returned nil result")
	}
	if err := json.Unmarshal([]byte(result.Text()), out); err != nil {
		return storyscout.Errorf(storyscout.EUNPROCESSABLE, "decoding gemini response: %v", err)
	}
	return nil
}

func validateStory(story *storyscout.Story) error {
	if story == nil || story.Title == "" {
		return storyscout.Errorf(storyscout.EINVALID, "a story with a title is required")
	}
	return nil
}

// fillAssessmentDefaults substitutes neutral values for fields the model
// left empty, so downstream rendering never deals with holes.
func fillAssessmentDefaults(a *storyscout.Assessment) {
	if a.Score == 0 {
		a.Score = 5.0
	}
	if a.Justification == "" {
		a.Justification = "No justification provided"
	}
	if len(a.Genres) == 0 {
		a.Genres = []string{"Drama"}
	}
	if len(a.SimilarWorks) == 0 {
		a.SimilarWorks = []string{"No similar works identified"}
	}
	if a.AdaptationType == "" {
		a.AdaptationType = "Movie"
	}
	if len(a.KeyElements) == 0 {
		a.KeyElements = []string{"Character development", "Plot", "Setting"}
	}
	if a.TargetAudience == "" {
		a.TargetAudience = "General audience"
	}
}

// BuildTextConfig returns the GenerateContentConfig for prose generation.
func BuildTextConfig() *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a development executive evaluating stories for screen and print adaptation. Write tight, specific, pitch-ready prose grounded in the story provided.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildJSONConfig returns the GenerateContentConfig for structured output
// constrained by the given response schema.
func BuildJSONConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	config := BuildTextConfig()
	config.ResponseMIMEType = "application/json"
	config.ResponseSchema = schema
	return config
}

// contentPreview returns the best available story text, length-capped for
// prompt inclusion.
func contentPreview(story *storyscout.Story) string {
	text := story.ContentSample
	if text == "" {
		text = story.Description
	}
	if text == "" {
		text = "(no story text available; judge from the title and metadata)"
	}
	return storyscout.TruncateText(text, previewLimit)
}

// BuildAssessPrompt builds the adaptation-potential scoring prompt.
func BuildAssessPrompt(story *storyscout.Story) string {
	var sb strings.Builder
	sb.WriteString("Analyze this story for its potential to be adapted into a movie, TV series, or book.\n\n")
	fmt.Fprintf(&sb, "TITLE: %s\n\n", story.Title)
	fmt.Fprintf(&sb, "CONTENT: %s\n\n", contentPreview(story))
	fmt.Fprintf(&sb, "ENGAGEMENT: %d reads, %d votes, %d parts\n\n", story.Reads, story.Votes, story.Parts)
	sb.WriteString("Score the adaptation potential on a scale of 1-10, where 1 is not adaptable at all and 10 is exceptional adaptation potential. ")
	sb.WriteString("Recommend 3-5 genres, 3-5 similar works sharing thematic elements, the best adaptation format (Movie, TV Series, Novel, or Short Story), 3-5 compelling narrative elements, and the ideal target audience.")
	return sb.String()
}

// BuildLoglinePrompt builds the logline prompt.
func BuildLoglinePrompt(story *storyscout.Story, adaptationType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a one-paragraph logline for a %s adaptation of %q.\n\n", adaptationType, story.Title)
	fmt.Fprintf(&sb, "ORIGINAL CONTENT: %s\n\n", contentPreview(story))
	sb.WriteString("The logline should name the protagonist, the central conflict, and the stakes in no more than three sentences.")
	return sb.String()
}

// BuildSynopsisPrompt builds the plot synopsis prompt.
func BuildSynopsisPrompt(story *storyscout.Story, adaptationType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a plot synopsis for a %s adaptation of %q.\n\n", adaptationType, story.Title)
	fmt.Fprintf(&sb, "ORIGINAL CONTENT: %s\n\n", contentPreview(story))
	sb.WriteString("Write 300-500 words covering the beginning, middle and end. ")
	sb.WriteString("For a movie use a standard 3-act structure; for a TV series describe the season arc; for other formats use an appropriate structure.")
	return sb.String()
}

// BuildCharactersPrompt builds the character profile prompt.
func BuildCharactersPrompt(story *storyscout.Story, adaptationType string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create character profiles for a %s adaptation of %q.\n\n", adaptationType, story.Title)
	fmt.Fprintf(&sb, "ORIGINAL CONTENT: %s\n\n", contentPreview(story))
	sb.WriteString("For each of the 3-5 main characters give their name, role in the story (protagonist, antagonist, ally), a brief description with background, and their central motivation.")
	return sb.String()
}

// BuildAudiencePrompt builds the audience analysis prompt.
func BuildAudiencePrompt(story *storyscout.Story, adaptationType, targetAudience string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write an audience and market analysis for a %s adaptation of %q.\n\n", adaptationType, story.Title)
	fmt.Fprintf(&sb, "ORIGINAL CONTENT: %s\n\n", contentPreview(story))
	if targetAudience != "" {
		fmt.Fprintf(&sb, "SUGGESTED TARGET AUDIENCE: %s\n\n", targetAudience)
	}
	sb.WriteString("Cover the primary demographic, comparable successes with that audience, and the marketing hooks this story offers.")
	return sb.String()
}

// BuildTrailerPrompt builds the teaser trailer script prompt.
func BuildTrailerPrompt(story *storyscout.Story, adaptationType, genre string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a teaser trailer script for a %s %s adaptation of %q.\n\n", genre, adaptationType, story.Title)
	fmt.Fprintf(&sb, "ORIGINAL CONTENT: %s\n\n", contentPreview(story))
	sb.WriteString("Use scene directions, voice-over lines and title cards. Keep it under 90 seconds of screen time and end on the title reveal.")
	return sb.String()
}

// BuildEndingsPrompt builds the alternate endings prompt.
func BuildEndingsPrompt(story *storyscout.Story, synopsis, adaptationType string, n int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Propose %d alternate endings for a %s adaptation of %q.\n\n", n, adaptationType, story.Title)
	if synopsis != "" {
		fmt.Fprintf(&sb, "CURRENT SYNOPSIS: %s\n\n", storyscout.TruncateText(synopsis, previewLimit))
	}
	fmt.Fprintf(&sb, "ORIGINAL CONTENT: %s\n\n", contentPreview(story))
	sb.WriteString("Each ending should be a self-contained paragraph that stays consistent with the established characters and tone.")
	return sb.String()
}

// BuildCastPrompt builds the cast suggestion prompt.
func BuildCastPrompt(characters []storyscout.CharacterProfile, adaptationType, genre string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Suggest casting for a %s %s adaptation.\n\n", genre, adaptationType)
	sb.WriteString("CHARACTERS:\n")
	for _, c := range characters {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", c.Name, c.Role, c.Description)
	}
	sb.WriteString("\nFor each character suggest one working actor and a short rationale grounded in their past roles.")
	return sb.String()
}

func assessmentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"score":          {Type: genai.TypeNumber},
			"justification":  {Type: genai.TypeString},
			"genres":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"similarWorks":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"adaptationType": {Type: genai.TypeString},
			"keyElements":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"targetAudience": {Type: genai.TypeString},
		},
		Required: []string{"score", "justification", "adaptationType"},
	}
}

func charactersSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"characters": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"role":        {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"motivation":  {Type: genai.TypeString},
					},
					Required: []string{"name", "role"},
				},
			},
		},
		Required: []string{"characters"},
	}
}

func endingsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"endings": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		Required: []string{"endings"},
	}
}

func castSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"cast": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"character": {Type: genai.TypeString},
						"actor":     {Type: genai.TypeString},
						"rationale": {Type: genai.TypeString},
					},
					Required: []string{"character", "actor"},
				},
			},
		},
		Required: []string{"cast"},
	}
}
