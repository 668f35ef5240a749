package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/storyscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ storyscout.StoryService = (*StoryService)(nil)

// StoryService implements storyscout.StoryService using SQLite.
type StoryService struct {
	db *DB
}

// NewStoryService creates a new StoryService.
func NewStoryService(db *DB) *StoryService {
	return &StoryService{db: db}
}

const storyColumns = `id, source, source_id, title, author, url, cover_url, description,
	reads, votes, parts, tags, completed, mature, last_updated, first_published,
	content_sample, language, fingerprint, discovered_at`

// CreateStory saves a story. The URL is the natural key: re-saving a story
// with the same URL and fingerprint is a no-op, while a changed fingerprint
// refreshes the stored record in place, keeping its ID.
func (s *StoryService) CreateStory(ctx context.Context, story *storyscout.Story) error {
	if err := story.Validate(); err != nil {
		return err
	}

	var existingID, existingFingerprint string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, fingerprint FROM stories WHERE url = ?
	`, story.URL).Scan(&existingID, &existingFingerprint)

	switch {
	case err == sql.ErrNoRows:
		return s.insertStory(ctx, story)
	case err != nil:
		return err
	}

	story.ID = existingID
	if existingFingerprint == story.Fingerprint && story.Fingerprint != "" {
		return nil
	}
	return s.updateStory(ctx, story)
}

func (s *StoryService) insertStory(ctx context.Context, story *storyscout.Story) error {
	story.ID = uuid.New().String()
	if story.DiscoveredAt.IsZero() {
		story.DiscoveredAt = time.Now().UTC()
	}

	tags, err := marshalJSON(story.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO stories (`+storyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, story.ID, string(story.Source), story.SourceID, story.Title, story.Author,
		story.URL, story.CoverURL, story.Description,
		story.Reads, story.Votes, story.Parts, tags,
		story.Completed, story.Mature, story.LastUpdated, story.FirstPublished,
		story.ContentSample, story.Language, story.Fingerprint,
		story.DiscoveredAt.Format(time.RFC3339))
	return err
}

func (s *StoryService) updateStory(ctx context.Context, story *storyscout.Story) error {
	tags, err := marshalJSON(story.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE stories
		SET source = ?, source_id = ?, title = ?, author = ?, cover_url = ?,
			description = ?, reads = ?, votes = ?, parts = ?, tags = ?,
			completed = ?, mature = ?, last_updated = ?, first_published = ?,
			content_sample = ?, language = ?, fingerprint = ?
		WHERE id = ?
	`, string(story.Source), story.SourceID, story.Title, story.Author, story.CoverURL,
		story.Description, story.Reads, story.Votes, story.Parts, tags,
		story.Completed, story.Mature, story.LastUpdated, story.FirstPublished,
		story.ContentSample, story.Language, story.Fingerprint,
		story.ID)
	return err
}

// FindStoryByID retrieves a story by ID.
func (s *StoryService) FindStoryByID(ctx context.Context, id string) (*storyscout.Story, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storyColumns+` FROM stories WHERE id = ?
	`, id)

	story, err := scanStory(row)
	if err == sql.ErrNoRows {
		return nil, storyscout.Errorf(storyscout.ENOTFOUND, "story not found")
	}
	if err != nil {
		return nil, err
	}
	return story, nil
}

// FindStories retrieves stories matching the filter, newest first.
func (s *StoryService) FindStories(ctx context.Context, filter storyscout.StoryFilter) ([]*storyscout.Story, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + storyColumns + " FROM stories WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY discovered_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stories []*storyscout.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}

	return stories, rows.Err()
}

// DeleteStory permanently removes a story. Pitches cascade.
func (s *StoryService) DeleteStory(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storyscout.Errorf(storyscout.ENOTFOUND, "story not found")
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanStory.
type scanner interface {
	Scan(dest ...any) error
}

func scanStory(row scanner) (*storyscout.Story, error) {
	var story storyscout.Story
	var source, tags, discoveredAt string

	err := row.Scan(&story.ID, &source, &story.SourceID, &story.Title, &story.Author,
		&story.URL, &story.CoverURL, &story.Description,
		&story.Reads, &story.Votes, &story.Parts, &tags,
		&story.Completed, &story.Mature, &story.LastUpdated, &story.FirstPublished,
		&story.ContentSample, &story.Language, &story.Fingerprint, &discoveredAt)
	if err != nil {
		return nil, err
	}

	story.Source = storyscout.Source(source)
	if err := unmarshalJSON(tags, &story.Tags); err != nil {
		return nil, err
	}
	story.DiscoveredAt, err = parseRFC3339(discoveredAt, "discovered_at")
	if err != nil {
		return nil, err
	}

	return &story, nil
}
