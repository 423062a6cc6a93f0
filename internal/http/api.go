package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cookshare/internal/ai"
	"cookshare/internal/repository"
	"cookshare/internal/service"
	"cookshare/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth      service.AuthService
	users     service.UserService
	stories   service.StoryService
	events    service.EventService
	recipes   service.RecipeService
	storage   storage.Service
	generator ai.Generator
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewHandler(
	auth service.AuthService,
	users service.UserService,
	stories service.StoryService,
	events service.EventService,
	recipes service.RecipeService,
	store storage.Service,
	generator ai.Generator,
	bucket, keyPrefix string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		users:     users,
		stories:   stories,
		events:    events,
		recipes:   recipes,
		storage:   store,
		generator: generator,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/register/", h.register)
	router.POST("/login/", h.login)
	router.POST("/logout/", h.logout)
	router.POST("/session/", h.renewSession)

	router.GET("/users/", h.listUsers)
	router.GET("/users/:userID/", h.getUser)

	router.GET("/stories/", h.listStories)
	router.GET("/stories/:storyID/", h.getStory)
	router.GET("/events/", h.listEvents)
	router.GET("/events/:eventID/", h.getEvent)
	router.GET("/recipes/", h.listRecipes)
	router.GET("/recipes/:recipeID/", h.getRecipe)
	router.GET("/ingredients/", h.listIngredients)

	router.GET("/health/", func(c *gin.Context) {
		respondOK(c, http.StatusOK, gin.H{"ok": "ok"})
	})

	authed := router.Group("/", h.requireSession)
	{
		authed.DELETE("/users/:userID/", h.deleteUser)

		authed.POST("/users/:userID/stories/", h.createStory)
		authed.DELETE("/stories/:storyID/", h.deleteStory)
		authed.POST("/users/:userID/stories/:storyID/save/", h.saveStory)

		authed.POST("/users/:userID/events/", h.createEvent)
		authed.DELETE("/events/:eventID/", h.deleteEvent)
		authed.POST("/users/:userID/events/:eventID/save/", h.saveEvent)
		authed.POST("/users/:userID/events/:eventID/attend/", h.attendEvent)

		authed.POST("/users/:userID/recipes/", h.createRecipe)
		authed.DELETE("/recipes/:recipeID/", h.deleteRecipe)
		authed.POST("/users/:userID/recipes/:recipeID/save/", h.saveRecipe)

		authed.POST("/ingredients/", h.addIngredient)
		authed.POST("/users/:userID/ingredients/:ingredientID/", h.addToPantry)

		authed.POST("/upload/", h.uploadImage)
		authed.GET("/images/", h.listImages)
		authed.POST("/recipes/generate/", h.generateRecipe)
	}
}

// respondOK writes the success envelope shared by every endpoint.
func respondOK(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

// respondErr writes the failure envelope. Callers pick the status code;
// anything without a more specific code uses 404.
func respondErr(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// respondServiceErr maps a service error onto the envelope: missing rows
// become 404, everything else is a 500.
func (h *Handler) respondServiceErr(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		respondErr(c, http.StatusNotFound, err.Error())
		return
	}
	h.logger.WithError(err).Error("request failed")
	respondErr(c, http.StatusInternalServerError, err.Error())
}

// bearerToken extracts the token from an Authorization: Bearer header.
// A missing header or an empty token is reported before any service runs.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == header || token == "" {
		return "", false
	}
	return token, true
}

// requireSession gates a route behind a valid session token.
func (h *Handler) requireSession(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondErr(c, http.StatusUnauthorized, "missing or malformed authorization header")
		c.Abort()
		return
	}

	user, err := h.auth.VerifySession(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSession) {
			respondErr(c, http.StatusUnauthorized, err.Error())
		} else {
			h.respondServiceErr(c, err)
		}
		c.Abort()
		return
	}

	c.Set("userID", user.ID)
	c.Next()
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondErr(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
