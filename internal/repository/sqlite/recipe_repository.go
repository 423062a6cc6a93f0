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

const createRecipesTables = `
CREATE TABLE IF NOT EXISTS recipes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	instructions TEXT NOT NULL,
	time_minutes INTEGER NOT NULL,
	servings INTEGER NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS recipe_ingredients (
	recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	ingredient_id INTEGER NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
	quantity TEXT NOT NULL,
	unit TEXT NOT NULL,
	UNIQUE(recipe_id, ingredient_id)
);
CREATE TABLE IF NOT EXISTS user_saved_recipes (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	recipe_id INTEGER NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
	UNIQUE(user_id, recipe_id)
);
`

const recipeColumns = `id, user_id, title, description, instructions, time_minutes, servings, image_url, created_at`

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) repository.RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRecipesTables); err != nil {
		return fmt.Errorf("create recipes tables: %w", err)
	}
	return nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (int64, error) {
	recipe.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO recipes (user_id, title, description, instructions, time_minutes, servings, image_url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		recipe.UserID, recipe.Title, recipe.Description, recipe.Instructions,
		recipe.TimeMinutes, recipe.Servings, recipe.ImageURL, recipe.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("recipe last insert id: %w", err)
	}
	recipe.ID = id
	return id, nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id int64) (*domain.Recipe, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	recipe, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}
	recipe.Ingredients, err = r.ListIngredients(ctx, recipe.ID)
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

func (r *RecipeRepository) List(ctx context.Context) ([]domain.Recipe, error) {
	return r.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY created_at DESC`)
}

func (r *RecipeRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	return r.queryRecipes(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecipeRepository) AttachIngredient(ctx context.Context, recipeID, ingredientID int64, quantity, unit string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit)
VALUES (?, ?, ?, ?)
ON CONFLICT(recipe_id, ingredient_id) DO UPDATE SET quantity = excluded.quantity, unit = excluded.unit`,
		recipeID, ingredientID, quantity, unit,
	)
	if err != nil {
		return fmt.Errorf("attach ingredient: %w", err)
	}
	return nil
}

func (r *RecipeRepository) ListIngredients(ctx context.Context, recipeID int64) ([]domain.RecipeIngredient, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT i.id, i.name, i.image_url, ri.quantity, ri.unit
FROM recipe_ingredients ri
JOIN ingredients i ON i.id = ri.ingredient_id
WHERE ri.recipe_id = ?
ORDER BY i.name`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list recipe ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []domain.RecipeIngredient
	for rows.Next() {
		var ri domain.RecipeIngredient
		if err := rows.Scan(&ri.ID, &ri.Name, &ri.ImageURL, &ri.Quantity, &ri.Unit); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		ingredients = append(ingredients, ri)
	}
	return ingredients, rows.Err()
}

func (r *RecipeRepository) Save(ctx context.Context, userID, recipeID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_saved_recipes (user_id, recipe_id) VALUES (?, ?)`,
		userID, recipeID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil
		}
		return fmt.Errorf("save recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) ListSavedByUser(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	return r.queryRecipes(ctx, `
SELECT r.id, r.user_id, r.title, r.description, r.instructions, r.time_minutes, r.servings, r.image_url, r.created_at
FROM recipes r
JOIN user_saved_recipes usr ON usr.recipe_id = r.id
WHERE usr.user_id = ?
ORDER BY r.created_at DESC`, userID)
}

func (r *RecipeRepository) queryRecipes(ctx context.Context, query string, args ...any) ([]domain.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}

	var recipes []domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	// release the connection before the per-recipe ingredient queries;
	// the pool is capped at one connection
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("close recipe rows: %w", err)
	}

	for i := range recipes {
		ingredients, err := r.ListIngredients(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
		recipes[i].Ingredients = ingredients
	}
	return recipes, nil
}

func scanRecipe(row interface {
	Scan(dest ...any) error
}) (*domain.Recipe, error) {
	var recipe domain.Recipe
	if err := row.Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Title,
		&recipe.Description,
		&recipe.Instructions,
		&recipe.TimeMinutes,
		&recipe.Servings,
		&recipe.ImageURL,
		&recipe.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}
	return &recipe, nil
}
