package http

import (
	"time"

	"cookshare/internal/domain"
)

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type ProfileResponse struct {
	ID              int64                `json:"id"`
	Username        string               `json:"username"`
	Stories         []StoryResponse      `json:"stories"`
	Events          []EventResponse      `json:"events"`
	Recipes         []RecipeResponse     `json:"recipes"`
	Ingredients     []IngredientResponse `json:"ingredients"`
	SavedStories    []StoryResponse      `json:"saved_stories"`
	SavedEvents     []EventResponse      `json:"saved_events"`
	SavedRecipes    []RecipeResponse     `json:"saved_recipes"`
	EventsAttending []EventResponse      `json:"events_attending"`
}

type StoryResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	ImageURL  string `json:"image_url"`
	Title     string `json:"title"`
	Caption   string `json:"caption"`
	CreatedAt string `json:"created_at"`
}

type EventResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	Caption     string `json:"caption"`
	NumberGoing int    `json:"number_going"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	CreatedAt   string `json:"created_at"`
}

type RecipeResponse struct {
	ID           int64                      `json:"id"`
	UserID       int64                      `json:"user_id"`
	Title        string                     `json:"title"`
	Description  string                     `json:"description"`
	Instructions string                     `json:"instructions"`
	Time         int                        `json:"time"`
	Servings     int                        `json:"servings"`
	ImageURL     string                     `json:"image_url"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
	CreatedAt    string                     `json:"created_at"`
}

type IngredientResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type RecipeIngredientResponse struct {
	IngredientResponse
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username}
}

func profileToResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:              p.User.ID,
		Username:        p.User.Username,
		Stories:         storiesToResponse(p.Stories),
		Events:          eventsToResponse(p.Events),
		Recipes:         recipesToResponse(p.Recipes),
		Ingredients:     ingredientsToResponse(p.Pantry),
		SavedStories:    storiesToResponse(p.SavedStories),
		SavedEvents:     eventsToResponse(p.SavedEvents),
		SavedRecipes:    recipesToResponse(p.SavedRecipes),
		EventsAttending: eventsToResponse(p.EventsAttending),
	}
}

func storyToResponse(story domain.Story) StoryResponse {
	return StoryResponse{
		ID:        story.ID,
		UserID:    story.UserID,
		ImageURL:  story.ImageURL,
		Title:     story.Title,
		Caption:   story.Caption,
		CreatedAt: story.CreatedAt.Format(time.RFC3339),
	}
}

func storiesToResponse(stories []domain.Story) []StoryResponse {
	resp := make([]StoryResponse, len(stories))
	for i := range stories {
		resp[i] = storyToResponse(stories[i])
	}
	return resp
}

func eventToResponse(event domain.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		UserID:      event.UserID,
		ImageURL:    event.ImageURL,
		Title:       event.Title,
		Caption:     event.Caption,
		NumberGoing: event.NumberGoing,
		Time:        event.Time.Format(time.RFC3339),
		Location:    event.Location,
		CreatedAt:   event.CreatedAt.Format(time.RFC3339),
	}
}

func eventsToResponse(events []domain.Event) []EventResponse {
	resp := make([]EventResponse, len(events))
	for i := range events {
		resp[i] = eventToResponse(events[i])
	}
	return resp
}

func recipeToResponse(recipe domain.Recipe) RecipeResponse {
	resp := RecipeResponse{
		ID:           recipe.ID,
		UserID:       recipe.UserID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Instructions: recipe.Instructions,
		Time:         recipe.TimeMinutes,
		Servings:     recipe.Servings,
		ImageURL:     recipe.ImageURL,
		Ingredients:  make([]RecipeIngredientResponse, len(recipe.Ingredients)),
		CreatedAt:    recipe.CreatedAt.Format(time.RFC3339),
	}
	for i, ri := range recipe.Ingredients {
		resp.Ingredients[i] = RecipeIngredientResponse{
			IngredientResponse: IngredientResponse{ID: ri.ID, Name: ri.Name, ImageURL: ri.ImageURL},
			Quantity:           ri.Quantity,
			Unit:               ri.Unit,
		}
	}
	return resp
}

func recipesToResponse(recipes []domain.Recipe) []RecipeResponse {
	resp := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		resp[i] = recipeToResponse(recipes[i])
	}
	return resp
}

func ingredientToResponse(ing domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: ing.ID, Name: ing.Name, ImageURL: ing.ImageURL}
}

func ingredientsToResponse(ingredients []domain.Ingredient) []IngredientResponse {
	resp := make([]IngredientResponse, len(ingredients))
	for i := range ingredients {
		resp[i] = ingredientToResponse(ingredients[i])
	}
	return resp
}
