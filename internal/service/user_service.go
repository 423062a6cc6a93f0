package service

import (
	"context"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

// UserService exposes account reads and deletion to the HTTP layer. The
// profile aggregation mirrors the full user serialization: owned content,
// pantry, saved content, and attended events.
type UserService interface {
	GetProfile(ctx context.Context, id int64) (*domain.Profile, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	users       repository.UserRepository
	stories     repository.StoryRepository
	events      repository.EventRepository
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
}

func NewUserService(
	users repository.UserRepository,
	stories repository.StoryRepository,
	events repository.EventRepository,
	recipes repository.RecipeRepository,
	ingredients repository.IngredientRepository,
) UserService {
	return &userService{
		users:       users,
		stories:     stories,
		events:      events,
		recipes:     recipes,
		ingredients: ingredients,
	}
}

func (s *userService) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{User: sanitizeUser(user)}

	if profile.Stories, err = s.stories.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.Events, err = s.events.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.Recipes, err = s.recipes.ListByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.Pantry, err = s.ingredients.ListPantry(ctx, id); err != nil {
		return nil, err
	}
	if profile.SavedStories, err = s.stories.ListSavedByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.SavedEvents, err = s.events.ListSavedByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.SavedRecipes, err = s.recipes.ListSavedByUser(ctx, id); err != nil {
		return nil, err
	}
	if profile.EventsAttending, err = s.events.ListAttendingByUser(ctx, id); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// DeleteUser removes the account; dependent rows go with it through the
// store's cascading foreign keys.
func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
