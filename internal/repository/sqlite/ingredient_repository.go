package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cookshare/internal/domain"
	"cookshare/internal/repository"
)

const createIngredientsTables = `
CREATE TABLE IF NOT EXISTS ingredients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	image_url TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS user_ingredients (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	ingredient_id INTEGER NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
	UNIQUE(user_id, ingredient_id)
);
`

type IngredientRepository struct {
	db *sql.DB
}

func NewIngredientRepository(db *sql.DB) repository.IngredientRepository {
	return &IngredientRepository{db: db}
}

func (r *IngredientRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createIngredientsTables); err != nil {
		return fmt.Errorf("create ingredients tables: %w", err)
	}
	return nil
}

// GetOrCreate resolves an ingredient by name, inserting it on first sight.
// The name is canonicalized to lower case so "Salt" and "salt" share a row.
func (r *IngredientRepository) GetOrCreate(ctx context.Context, name, imageURL string) (*domain.Ingredient, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New("ingredient name is required")
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT INTO ingredients (name, image_url) VALUES (?, ?)
ON CONFLICT(name) DO NOTHING`,
		name, imageURL,
	); err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `SELECT id, name, image_url FROM ingredients WHERE name = ?`, name)
	return scanIngredient(row)
}

func (r *IngredientRepository) GetByID(ctx context.Context, id int64) (*domain.Ingredient, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, image_url FROM ingredients WHERE id = ?`, id)
	return scanIngredient(row)
}

func (r *IngredientRepository) List(ctx context.Context) ([]domain.Ingredient, error) {
	return r.queryIngredients(ctx, `SELECT id, name, image_url FROM ingredients ORDER BY name`)
}

func (r *IngredientRepository) AddToPantry(ctx context.Context, userID, ingredientID int64) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_ingredients (user_id, ingredient_id) VALUES (?, ?)`,
		userID, ingredientID,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil // already in pantry
		}
		return fmt.Errorf("add to pantry: %w", err)
	}
	return nil
}

func (r *IngredientRepository) ListPantry(ctx context.Context, userID int64) ([]domain.Ingredient, error) {
	return r.queryIngredients(ctx, `
SELECT i.id, i.name, i.image_url
FROM ingredients i
JOIN user_ingredients ui ON ui.ingredient_id = i.id
WHERE ui.user_id = ?
ORDER BY i.name`, userID)
}

func (r *IngredientRepository) queryIngredients(ctx context.Context, query string, args ...any) ([]domain.Ingredient, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, rows.Err()
}

func scanIngredient(row interface {
	Scan(dest ...any) error
}) (*domain.Ingredient, error) {
	var ing domain.Ingredient
	if err := row.Scan(&ing.ID, &ing.Name, &ing.ImageURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan ingredient: %w", err)
	}
	return &ing, nil
}
