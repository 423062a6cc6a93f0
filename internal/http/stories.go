package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createStoryRequest struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title" binding:"required"`
	Caption  string `json:"caption"`
}

func (h *Handler) createStory(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	var req createStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	story, err := h.stories.CreateStory(c.Request.Context(), userID, req.ImageURL, req.Title, req.Caption)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusCreated, storyToResponse(*story))
}

func (h *Handler) listStories(c *gin.Context) {
	stories, err := h.stories.ListStories(c.Request.Context())
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"stories": storiesToResponse(stories)})
}

func (h *Handler) getStory(c *gin.Context) {
	id, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	story, err := h.stories.GetStory(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, storyToResponse(*story))
}

func (h *Handler) deleteStory(c *gin.Context) {
	id, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	story, err := h.stories.GetStory(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	if err := h.stories.DeleteStory(c.Request.Context(), id); err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, storyToResponse(*story))
}

func (h *Handler) saveStory(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	storyID, ok := pathID(c, "storyID")
	if !ok {
		return
	}

	if err := h.stories.SaveStory(c.Request.Context(), userID, storyID); err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"saved": storyID})
}
