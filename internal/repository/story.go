package repository

import (
	"context"

	"cookshare/internal/domain"
)

// StoryRepository defines persistence operations for Story entities and the
// saved-story association.
type StoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, story *domain.Story) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Story, error)
	List(ctx context.Context) ([]domain.Story, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Story, error)
	Delete(ctx context.Context, id int64) error
	Save(ctx context.Context, userID, storyID int64) error
	ListSavedByUser(ctx context.Context, userID int64) ([]domain.Story, error)
}
