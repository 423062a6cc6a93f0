package service

import (
	"context"
	"errors"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

// StoryService coordinates story posting, browsing, and saving.
type StoryService interface {
	CreateStory(ctx context.Context, userID int64, imageURL, title, caption string) (*domain.Story, error)
	GetStory(ctx context.Context, id int64) (*domain.Story, error)
	ListStories(ctx context.Context) ([]domain.Story, error)
	DeleteStory(ctx context.Context, id int64) error
	SaveStory(ctx context.Context, userID, storyID int64) error
}

type storyService struct {
	stories repository.StoryRepository
	users   repository.UserRepository
}

func NewStoryService(stories repository.StoryRepository, users repository.UserRepository) StoryService {
	return &storyService{stories: stories, users: users}
}

func (s *storyService) CreateStory(ctx context.Context, userID int64, imageURL, title, caption string) (*domain.Story, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	story := &domain.Story{
		UserID:   userID,
		ImageURL: imageURL,
		Title:    title,
		Caption:  caption,
	}
	if _, err := s.stories.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *storyService) GetStory(ctx context.Context, id int64) (*domain.Story, error) {
	return s.stories.GetByID(ctx, id)
}

func (s *storyService) ListStories(ctx context.Context) ([]domain.Story, error) {
	return s.stories.List(ctx)
}

func (s *storyService) DeleteStory(ctx context.Context, id int64) error {
	return s.stories.Delete(ctx, id)
}

func (s *storyService) SaveStory(ctx context.Context, userID, storyID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.stories.GetByID(ctx, storyID); err != nil {
		return err
	}
	return s.stories.Save(ctx, userID, storyID)
}
