package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cookshare/internal/service"
)

type createRecipeRequest struct {
	Title        string                    `json:"title" binding:"required"`
	Description  string                    `json:"description"`
	Instructions string                    `json:"instructions"`
	Time         int                       `json:"time"`
	Servings     int                       `json:"servings"`
	ImageURL     string                    `json:"image_url"`
	Ingredients  []recipeIngredientRequest `json:"ingredients"`
}

type recipeIngredientRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

func (r createRecipeRequest) toInput() service.RecipeInput {
	input := service.RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		TimeMinutes:  r.Time,
		Servings:     r.Servings,
		ImageURL:     r.ImageURL,
	}
	for _, item := range r.Ingredients {
		input.Ingredients = append(input.Ingredients, service.RecipeIngredientInput{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
		})
	}
	return input
}

func (h *Handler) createRecipe(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	var req createRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusCreated, recipeToResponse(*recipe))
}

func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"recipes": recipesToResponse(recipes)})
}

func (h *Handler) getRecipe(c *gin.Context) {
	id, ok := pathID(c, "recipeID")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, recipeToResponse(*recipe))
}

func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := pathID(c, "recipeID")
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, recipeToResponse(*recipe))
}

func (h *Handler) saveRecipe(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	recipeID, ok := pathID(c, "recipeID")
	if !ok {
		return
	}

	if err := h.recipes.SaveRecipe(c.Request.Context(), userID, recipeID); err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"saved": recipeID})
}

func (h *Handler) listIngredients(c *gin.Context) {
	ingredients, err := h.recipes.ListIngredients(c.Request.Context())
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredients": ingredientsToResponse(ingredients)})
}

type addIngredientRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
}

func (h *Handler) addIngredient(c *gin.Context) {
	var req addIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	ing, err := h.recipes.AddIngredient(c.Request.Context(), req.Name, req.ImageURL)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusCreated, ingredientToResponse(*ing))
}

func (h *Handler) addToPantry(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	ingredientID, ok := pathID(c, "ingredientID")
	if !ok {
		return
	}

	if err := h.recipes.AddToPantry(c.Request.Context(), userID, ingredientID); err != nil {
		h.respondServiceErr(c, err)
		return
	}

	pantry, err := h.recipes.ListPantry(c.Request.Context(), userID)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"ingredients": ingredientsToResponse(pantry)})
}
