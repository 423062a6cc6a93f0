package domain

// Ingredient is a shared catalog entry, unique by name. Users reference
// ingredients from their pantry and recipes reference them with quantities.
type Ingredient struct {
	ID       int64
	Name     string
	ImageURL string
}
