package service

import (
	"context"
	"errors"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

// RecipeInput carries the fields needed to create a recipe, including the
// ingredient list with per-recipe amounts.
type RecipeInput struct {
	Title        string
	Description  string
	Instructions string
	TimeMinutes  int
	Servings     int
	ImageURL     string
	Ingredients  []RecipeIngredientInput
}

// RecipeIngredientInput references an ingredient by name; unknown names are
// added to the shared catalog on the fly.
type RecipeIngredientInput struct {
	Name     string
	Quantity string
	Unit     string
}

// RecipeService coordinates recipes, the ingredient catalog, and pantries.
type RecipeService interface {
	CreateRecipe(ctx context.Context, userID int64, input RecipeInput) (*domain.Recipe, error)
	GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
	SaveRecipe(ctx context.Context, userID, recipeID int64) error
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	AddIngredient(ctx context.Context, name, imageURL string) (*domain.Ingredient, error)
	AddToPantry(ctx context.Context, userID, ingredientID int64) error
	ListPantry(ctx context.Context, userID int64) ([]domain.Ingredient, error)
}

type recipeService struct {
	recipes     repository.RecipeRepository
	ingredients repository.IngredientRepository
	users       repository.UserRepository
}

func NewRecipeService(recipes repository.RecipeRepository, ingredients repository.IngredientRepository, users repository.UserRepository) RecipeService {
	return &recipeService{
		recipes:     recipes,
		ingredients: ingredients,
		users:       users,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, userID int64, input RecipeInput) (*domain.Recipe, error) {
	if input.Title == "" {
		return nil, errors.New("title is required")
	}
	if input.Servings <= 0 {
		input.Servings = 1
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		TimeMinutes:  input.TimeMinutes,
		Servings:     input.Servings,
		ImageURL:     input.ImageURL,
	}
	if _, err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, err
	}

	for _, item := range input.Ingredients {
		ing, err := s.ingredients.GetOrCreate(ctx, item.Name, "")
		if err != nil {
			return nil, err
		}
		if err := s.recipes.AttachIngredient(ctx, recipe.ID, ing.ID, item.Quantity, item.Unit); err != nil {
			return nil, err
		}
	}

	return s.recipes.GetByID(ctx, recipe.ID)
}

func (s *recipeService) GetRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

func (s *recipeService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipes.List(ctx)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id int64) error {
	return s.recipes.Delete(ctx, id)
}

func (s *recipeService) SaveRecipe(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return err
	}
	return s.recipes.Save(ctx, userID, recipeID)
}

func (s *recipeService) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.ingredients.List(ctx)
}

func (s *recipeService) AddIngredient(ctx context.Context, name, imageURL string) (*domain.Ingredient, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	return s.ingredients.GetOrCreate(ctx, name, imageURL)
}

func (s *recipeService) AddToPantry(ctx context.Context, userID, ingredientID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.ingredients.GetByID(ctx, ingredientID); err != nil {
		return err
	}
	return s.ingredients.AddToPantry(ctx, userID, ingredientID)
}

func (s *recipeService) ListPantry(ctx context.Context, userID int64) ([]domain.Ingredient, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.ingredients.ListPantry(ctx, userID)
}
