package repository

import (
	"context"

	"cookshare/internal/domain"
)

// EventRepository defines persistence operations for Event entities, the
// saved-event association, and attendance.
type EventRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, event *domain.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Event, error)
	Delete(ctx context.Context, id int64) error
	Save(ctx context.Context, userID, eventID int64) error
	ListSavedByUser(ctx context.Context, userID int64) ([]domain.Event, error)
	// Attend records attendance and bumps the event's going counter. A
	// repeat call for the same pair is a no-op.
	Attend(ctx context.Context, userID, eventID int64) error
	ListAttendingByUser(ctx context.Context, userID int64) ([]domain.Event, error)
}
