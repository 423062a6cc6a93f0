package domain

import "time"

// Recipe is a cooking recipe owned by a user. TimeMinutes is the total
// preparation time.
type Recipe struct {
	ID           int64
	UserID       int64
	Title        string
	Description  string
	Instructions string
	TimeMinutes  int
	Servings     int
	ImageURL     string
	CreatedAt    time.Time
	Ingredients  []RecipeIngredient
}

// RecipeIngredient is an ingredient attached to a recipe together with the
// amount the recipe calls for.
type RecipeIngredient struct {
	Ingredient
	Quantity string
	Unit     string
}
