package repository

import (
	"context"

	"cookshare/internal/domain"
)

// IngredientRepository defines persistence operations for the shared
// ingredient catalog and user pantries.
type IngredientRepository interface {
	Init(ctx context.Context) error
	// GetOrCreate returns the ingredient with the given name, creating it
	// if the catalog has no entry yet.
	GetOrCreate(ctx context.Context, name, imageURL string) (*domain.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*domain.Ingredient, error)
	List(ctx context.Context) ([]domain.Ingredient, error)
	AddToPantry(ctx context.Context, userID, ingredientID int64) error
	ListPantry(ctx context.Context, userID int64) ([]domain.Ingredient, error)
}
