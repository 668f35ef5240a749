package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/storyscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ storyscout.PitchService = (*PitchService)(nil)

// PitchService implements storyscout.PitchService using SQLite.
type PitchService struct {
	db *DB
}

// NewPitchService creates a new PitchService.
func NewPitchService(db *DB) *PitchService {
	return &PitchService{db: db}
}

const pitchColumns = `id, story_id, title, adaptation_type, genre, assessment_json,
	logline, synopsis, characters_json, audience_analysis, trailer_script,
	endings_json, cast_json, created_at`

// CreatePitch saves a pitch. The referenced story must exist.
func (s *PitchService) CreatePitch(ctx context.Context, pitch *storyscout.Pitch) error {
	if err := pitch.Validate(); err != nil {
		return err
	}

	pitch.ID = uuid.New().String()
	pitch.CreatedAt = time.Now().UTC()

	assessment := ""
	if pitch.Assessment != nil {
		var err error
		assessment, err = marshalJSON(pitch.Assessment)
		if err != nil {
			return err
		}
	}
	characters, err := marshalJSON(pitch.Characters)
	if err != nil {
		return err
	}
	endings, err := marshalJSON(pitch.AlternateEndings)
	if err != nil {
		return err
	}
	cast, err := marshalJSON(pitch.Cast)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO pitches (`+pitchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, pitch.ID, pitch.StoryID, pitch.Title, pitch.AdaptationType, pitch.Genre,
		assessment, pitch.Logline, pitch.Synopsis, characters,
		pitch.AudienceAnalysis, pitch.TrailerScript, endings, cast,
		pitch.CreatedAt.Format(time.RFC3339))
	return err
}

// FindPitchByID retrieves a pitch by ID.
func (s *PitchService) FindPitchByID(ctx context.Context, id string) (*storyscout.Pitch, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+pitchColumns+` FROM pitches WHERE id = ?
	`, id)

	pitch, err := scanPitch(row)
	if err == sql.ErrNoRows {
		return nil, storyscout.Errorf(storyscout.ENOTFOUND, "pitch not found")
	}
	if err != nil {
		return nil, err
	}
	return pitch, nil
}

// FindPitchesByStory retrieves all pitches for a story, newest first.
func (s *PitchService) FindPitchesByStory(ctx context.Context, storyID string) ([]*storyscout.Pitch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pitchColumns+` FROM pitches
		WHERE story_id = ?
		ORDER BY created_at DESC, id
	`, storyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pitches []*storyscout.Pitch
	for rows.Next() {
		pitch, err := scanPitch(rows)
		if err != nil {
			return nil, err
		}
		pitches = append(pitches, pitch)
	}

	return pitches, rows.Err()
}

// DeletePitchesByStory removes all pitches for a story.
func (s *PitchService) DeletePitchesByStory(ctx context.Context, storyID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pitches WHERE story_id = ?`, storyID)
	return err
}

func scanPitch(row scanner) (*storyscout.Pitch, error) {
	var pitch storyscout.Pitch
	var assessment, characters, endings, cast, createdAt string

	err := row.Scan(&pitch.ID, &pitch.StoryID, &pitch.Title, &pitch.AdaptationType,
		&pitch.Genre, &assessment, &pitch.Logline, &pitch.Synopsis, &characters,
		&pitch.AudienceAnalysis, &pitch.TrailerScript, &endings, &cast, &createdAt)
	if err != nil {
		return nil, err
	}

	if assessment != "" {
		pitch.Assessment = &storyscout.Assessment{}
		if err := unmarshalJSON(assessment, pitch.Assessment); err != nil {
			return nil, err
		}
	}
	if err := unmarshalJSON(characters, &pitch.Characters); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(endings, &pitch.AlternateEndings); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(cast, &pitch.Cast); err != nil {
		return nil, err
	}
	pitch.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &pitch, nil
}
