package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/types"
)

type RecipeHandler struct {
	recipes     *service.RecipeService
	relations   *service.RelationService
	projection  *service.ProjectionService
	images      *service.ImageService
	authService *service.AuthService
	limiter     *middleware.RateLimiter
}

func NewRecipeHandler(recipes *service.RecipeService, relations *service.RelationService, projection *service.ProjectionService, images *service.ImageService, authService *service.AuthService, limiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipes:     recipes,
		relations:   relations,
		projection:  projection,
		images:      images,
		authService: authService,
		limiter:     limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListRecipes)
		recipes.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetRecipe)

		create := []gin.HandlerFunc{middleware.AuthMiddleware(h.authService)}
		if h.limiter != nil {
			create = append(create, h.limiter.RateLimitMiddleware())
		}
		recipes.POST("", append(create, h.CreateRecipe)...)

		recipes.PATCH("/:id", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.PUT("/:id", middleware.AuthMiddleware(h.authService), middleware.AdminOnly(), h.ReplaceRecipe)
		recipes.DELETE("/:id", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)

		recipes.POST("/:id/favorite", middleware.AuthMiddleware(h.authService), h.Favorite)
		recipes.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.Unfavorite)
		recipes.POST("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", middleware.AuthMiddleware(h.authService), h.RemoveFromCart)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filters := service.RecipeFilters{
		Favorited: c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true",
		InCart:    c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true",
		Viewer:    viewerID(c),
	}
	if tags := c.QueryArray("tags"); len(tags) > 0 {
		filters.TagSlugs = tags
	} else if tags := c.Query("tags"); tags != "" {
		filters.TagSlugs = strings.Split(tags, ",")
	}
	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid author id"})
			return
		}
		filters.AuthorID = &authorID
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	views, err := h.projection.RecipeViews(c.Request.Context(), recipes, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.projection.RecipeView(c.Request.Context(), recipe, viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL, err := h.images.StoreBase64(c.Request.Context(), req.Image)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, req, imageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.projection.RecipeView(c.Request.Context(), recipe, &userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canModify(recipe, userID, isAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"errors": "only the author or an administrator may modify this recipe"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.applyUpdate(c, id, req, userID)
}

// ReplaceRecipe is the full-update route: every field is required and the
// whole aggregate is rebuilt. Administrator-only.
func (h *RecipeHandler) ReplaceRecipe(c *gin.Context) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := types.UpdateRecipeRequest{
		Name:        &req.Name,
		Text:        &req.Text,
		CookingTime: &req.CookingTime,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
		Image:       &req.Image,
	}
	h.applyUpdate(c, id, update, userID)
}

func (h *RecipeHandler) applyUpdate(c *gin.Context, id uuid.UUID, req types.UpdateRecipeRequest, userID uuid.UUID) {
	var imageURL *string
	if req.Image != nil {
		stored, err := h.images.StoreBase64(c.Request.Context(), *req.Image)
		if err != nil {
			respondError(c, err)
			return
		}
		imageURL = &stored
	}

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), id, req, imageURL)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.projection.RecipeView(c.Request.Context(), recipe, &userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !canModify(recipe, userID, isAdmin(c)) {
		c.JSON(http.StatusForbidden, gin.H{"errors": "only the author or an administrator may delete this recipe"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.addEdge(c, "recipe already in favorites", func(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
		_, created, err := h.relations.AddFavorite(ctx, userID, recipeID)
		return created, err
	})
}

func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.removeEdge(c, "recipe was not in favorites", h.relations.RemoveFavorite)
}

func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.addEdge(c, "recipe already in shopping cart", func(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
		_, created, err := h.relations.AddToCart(ctx, userID, recipeID)
		return created, err
	})
}

func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.removeEdge(c, "recipe was not in shopping cart", h.relations.RemoveFromCart)
}

// addEdge is the shared create path for the favorite and cart routes:
// the target recipe must exist, a duplicate edge is a conflict, and the
// created edge answers with the compact recipe representation.
func (h *RecipeHandler) addEdge(c *gin.Context, conflictMsg string, add func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := add(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusBadRequest, gin.H{"errors": conflictMsg})
		return
	}

	c.JSON(http.StatusCreated, service.ShortRecipeView(recipe))
}

func (h *RecipeHandler) removeEdge(c *gin.Context, missingMsg string, remove func(context.Context, uuid.UUID, uuid.UUID) (bool, error)) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}
	recipeID, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.recipes.GetRecipe(c.Request.Context(), recipeID); err != nil {
		respondError(c, err)
		return
	}

	removed, err := remove(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusBadRequest, gin.H{"errors": missingMsg})
		return
	}

	c.Status(http.StatusNoContent)
}

func canModify(recipe *models.Recipe, userID uuid.UUID, admin bool) bool {
	return admin || recipe.AuthorID == userID
}
