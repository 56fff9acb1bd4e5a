package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type UserHandler struct {
	authService *service.AuthService
	relations   *service.RelationService
	projection  *service.ProjectionService
}

func NewUserHandler(authService *service.AuthService, relations *service.RelationService, projection *service.ProjectionService) *UserHandler {
	return &UserHandler{
		authService: authService,
		relations:   relations,
		projection:  projection,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
	router.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.Subscriptions)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(id)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.projection.UserView(c.Request.Context(), user, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) Subscribe(c *gin.Context) {
	followerID, ok := mustViewerID(c)
	if !ok {
		return
	}
	authorID, ok := parseID(c)
	if !ok {
		return
	}

	author, err := h.authService.GetUser(authorID)
	if err != nil {
		respondError(c, err)
		return
	}

	_, created, err := h.relations.Follow(c.Request.Context(), followerID, authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "already subscribed to this author"})
		return
	}

	limit := parseRecipesLimit(c)
	view, err := h.projection.SubscriptionView(c.Request.Context(), author, &followerID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	followerID, ok := mustViewerID(c)
	if !ok {
		return
	}
	authorID, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.authService.GetUser(authorID); err != nil {
		respondError(c, err)
		return
	}

	removed, err := h.relations.Unfollow(c.Request.Context(), followerID, authorID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "not subscribed to this author"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c *gin.Context) {
	followerID, ok := mustViewerID(c)
	if !ok {
		return
	}

	authors, err := h.relations.Subscriptions(c.Request.Context(), followerID)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := parseRecipesLimit(c)
	views := make([]types.SubscriptionResponse, 0, len(authors))
	for i := range authors {
		view, err := h.projection.SubscriptionView(c.Request.Context(), &authors[i], &followerID, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"results": views})
}

// parseRecipesLimit reads the optional recipes_limit query param; 0 means
// no truncation of the recipe preview.
func parseRecipesLimit(c *gin.Context) int {
	raw := c.Query("recipes_limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
