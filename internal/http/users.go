package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	respondOK(c, http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := pathID(c, "userID")
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusOK, profileToResponse(profile))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "userID")
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusOK, profileToResponse(profile))
}
