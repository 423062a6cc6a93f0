package repository

import (
	"context"

	"cookshare/internal/domain"
)

// RecipeRepository defines persistence operations for Recipe entities, the
// recipe-ingredient association, and the saved-recipe association.
type RecipeRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, recipe *domain.Recipe) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Recipe, error)
	List(ctx context.Context) ([]domain.Recipe, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Recipe, error)
	Delete(ctx context.Context, id int64) error
	AttachIngredient(ctx context.Context, recipeID, ingredientID int64, quantity, unit string) error
	ListIngredients(ctx context.Context, recipeID int64) ([]domain.RecipeIngredient, error)
	Save(ctx context.Context, userID, recipeID int64) error
	ListSavedByUser(ctx context.Context, userID int64) ([]domain.Recipe, error)
}
