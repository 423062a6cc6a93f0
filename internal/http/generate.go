package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type generateRecipeRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	// UsePantry constrains generation to the requesting user's pantry.
	UsePantry bool `json:"use_pantry"`
}

type generatedRecipeResponse struct {
	Title        string                    `json:"title"`
	Description  string                    `json:"description"`
	Instructions string                    `json:"instructions"`
	Time         int                       `json:"time"`
	Servings     int                       `json:"servings"`
	Ingredients  []recipeIngredientRequest `json:"ingredients"`
}

// generateRecipe asks the completion API for a recipe draft. The draft is
// not persisted; clients review it and post it through the normal recipe
// create endpoint.
func (h *Handler) generateRecipe(c *gin.Context) {
	if h.generator == nil {
		respondErr(c, http.StatusInternalServerError, "recipe generation not configured")
		return
	}

	var req generateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "prompt is required")
		return
	}

	var pantry []string
	if req.UsePantry {
		userID := c.GetInt64("userID")
		ingredients, err := h.recipes.ListPantry(c.Request.Context(), userID)
		if err != nil {
			h.respondServiceErr(c, err)
			return
		}
		for _, ing := range ingredients {
			pantry = append(pantry, ing.Name)
		}
	}

	draft, err := h.generator.GenerateRecipe(c.Request.Context(), req.Prompt, pantry)
	if err != nil {
		h.logger.WithError(err).Warn("recipe generation failed")
		respondErr(c, http.StatusBadGateway, "recipe generation failed")
		return
	}

	resp := generatedRecipeResponse{
		Title:        draft.Title,
		Description:  draft.Description,
		Instructions: draft.Instructions,
		Time:         draft.TimeMinutes,
		Servings:     draft.Servings,
	}
	for _, ing := range draft.Ingredients {
		resp.Ingredients = append(resp.Ingredients, recipeIngredientRequest{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	respondOK(c, http.StatusOK, resp)
}
