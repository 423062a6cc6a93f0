package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

const createStoriesTables = `
CREATE TABLE IF NOT EXISTS stories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	image_url TEXT NOT NULL,
	title TEXT NOT NULL,
	caption TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS user_saved_stories (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	story_id INTEGER NOT NULL REFERENCES stories(id) ON DELETE CASCADE,
	UNIQUE(user_id, story_id)
);
`

const storyColumns = `id, user_id, image_url, title, caption, created_at`

type StoryRepository struct {
	db *sql.DB
}

func NewStoryRepository(db *sql.DB) repository.StoryRepository {
	return &StoryRepository{db: db}
}

func (r *StoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createStoriesTables); err != nil {
		return fmt.Errorf("create stories tables: %w", err)
	}
	return nil
}

func (r *StoryRepository) Create(ctx context.Context, story *domain.Story) (int64, error) {
	story.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO stories (user_id, image_url, title, caption, created_at)
VALUES (?, ?, ?, ?, ?)`,
		story.UserID, story.ImageURL, story.Title, story.Caption, story.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert story: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("story last insert id: %w", err)
	}
	story.ID = id
	return id, nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id int64) (*domain.Story, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+storyColumns+` FROM stories WHERE id = ?`, id)
	return scanStory(row)
}

func (r *StoryRepository) List(ctx context.Context) ([]domain.Story, error) {
	return r.queryStories(ctx, `SELECT `+storyColumns+` FROM stories ORDER BY created_at DESC`)
}

func (r *StoryRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Story, error) {
	return r.queryStories(ctx, `SELECT `+storyColumns+` FROM stories WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *StoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete story: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StoryRepository) Save(ctx context.Context, userID, storyID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_saved_stories (user_id, story_id) VALUES (?, ?)`,
		userID, storyID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil // already saved
		}
		return fmt.Errorf("save story: %w", err)
	}
	return nil
}

func (r *StoryRepository) ListSavedByUser(ctx context.Context, userID int64) ([]domain.Story, error) {
	return r.queryStories(ctx, `
SELECT s.id, s.user_id, s.image_url, s.title, s.caption, s.created_at
FROM stories s
JOIN user_saved_stories uss ON uss.story_id = s.id
WHERE uss.user_id = ?
ORDER BY s.created_at DESC`, userID)
}

func (r *StoryRepository) queryStories(ctx context.Context, query string, args ...any) ([]domain.Story, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stories: %w", err)
	}
	defer rows.Close()

	var stories []domain.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, *story)
	}
	return stories, rows.Err()
}

func scanStory(row interface {
	Scan(dest ...any) error
}) (*domain.Story, error) {
	var story domain.Story
	if err := row.Scan(
		&story.ID,
		&story.UserID,
		&story.ImageURL,
		&story.Title,
		&story.Caption,
		&story.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan story: %w", err)
	}
	return &story, nil
}
