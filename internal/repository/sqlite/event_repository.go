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

const createEventsTables = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	image_url TEXT NOT NULL,
	title TEXT NOT NULL,
	caption TEXT NOT NULL,
	number_going INTEGER NOT NULL DEFAULT 0,
	time DATETIME NOT NULL,
	location TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS user_saved_events (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	UNIQUE(user_id, event_id)
);
CREATE TABLE IF NOT EXISTS user_event_attendance (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	event_id INTEGER NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	UNIQUE(user_id, event_id)
);
`

const eventColumns = `id, user_id, image_url, title, caption, number_going, time, location, created_at`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEventsTables); err != nil {
		return fmt.Errorf("create events tables: %w", err)
	}
	return nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (int64, error) {
	event.CreatedAt = time.Now().UTC()
	event.NumberGoing = 0
	res, err := r.db.ExecContext(ctx, `
INSERT INTO events (user_id, image_url, title, caption, number_going, time, location, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.UserID, event.ImageURL, event.Title, event.Caption,
		event.NumberGoing, event.Time, event.Location, event.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("event last insert id: %w", err)
	}
	event.ID = id
	return id, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events ORDER BY time`)
}

func (r *EventRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	return r.queryEvents(ctx, `SELECT `+eventColumns+` FROM events WHERE user_id = ? ORDER BY time`, userID)
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Save(ctx context.Context, userID, eventID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_saved_events (user_id, event_id) VALUES (?, ?)`,
		userID, eventID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil
		}
		return fmt.Errorf("save event: %w", err)
	}
	return nil
}

func (r *EventRepository) ListSavedByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	return r.queryEvents(ctx, `
SELECT e.id, e.user_id, e.image_url, e.title, e.caption, e.number_going, e.time, e.location, e.created_at
FROM events e
JOIN user_saved_events use ON use.event_id = e.id
WHERE use.user_id = ?
ORDER BY e.time`, userID)
}

// Attend inserts the attendance row and bumps the counter inside one
// transaction; the unique constraint makes a second call for the same pair
// leave the counter alone.
func (r *EventRepository) Attend(ctx context.Context, userID, eventID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attend: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO user_event_attendance (user_id, event_id) VALUES (?, ?)`,
		userID, eventID,
	); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil // already attending
		}
		return fmt.Errorf("record attendance: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
UPDATE events SET number_going = number_going + 1 WHERE id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("bump attendance count: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit()
}

func (r *EventRepository) ListAttendingByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	return r.queryEvents(ctx, `
SELECT e.id, e.user_id, e.image_url, e.title, e.caption, e.number_going, e.time, e.location, e.created_at
FROM events e
JOIN user_event_attendance uea ON uea.event_id = e.id
WHERE uea.user_id = ?
ORDER BY e.time`, userID)
}

func (r *EventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

func scanEvent(row interface {
	Scan(dest ...any) error
}) (*domain.Event, error) {
	var event domain.Event
	if err := row.Scan(
		&event.ID,
		&event.UserID,
		&event.ImageURL,
		&event.Title,
		&event.Caption,
		&event.NumberGoing,
		&event.Time,
		&event.Location,
		&event.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &event, nil
}
