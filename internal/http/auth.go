package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cookshare/internal/domain"
	"cookshare/internal/service"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenTripleResponse is returned by every endpoint that issues a session.
type TokenTripleResponse struct {
	SessionToken      string `json:"session_token"`
	SessionExpiration string `json:"session_expiration"`
	RefreshToken      string `json:"refresh_token"`
}

func tokenTriple(user *domain.User) TokenTripleResponse {
	return TokenTripleResponse{
		SessionToken:      user.SessionToken,
		SessionExpiration: user.SessionExpiration.Format(time.RFC3339),
		RefreshToken:      user.RefreshToken,
	}
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			respondErr(c, http.StatusConflict, err.Error())
			return
		}
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusCreated, tokenTriple(user))
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondErr(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusOK, tokenTriple(user))
}

func (h *Handler) logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "missing or malformed authorization header")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			respondErr(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) renewSession(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "missing or malformed authorization header")
		return
	}

	user, err := h.auth.RenewSession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			respondErr(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusOK, tokenTriple(user))
}
