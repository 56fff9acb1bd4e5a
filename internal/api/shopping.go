package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

// ShoppingHandler exposes the aggregated shopping list, both as
// structured JSON and as the downloadable text artifact.
type ShoppingHandler struct {
	shopping    *service.ShoppingListService
	authService *service.AuthService
}

func NewShoppingHandler(shopping *service.ShoppingListService, authService *service.AuthService) *ShoppingHandler {
	return &ShoppingHandler{
		shopping:    shopping,
		authService: authService,
	}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/shopping_cart", middleware.AuthMiddleware(h.authService))
	{
		cart.GET("", h.GetShoppingList)
		cart.GET("/download", h.DownloadShoppingList)
	}
}

func (h *ShoppingHandler) GetShoppingList(c *gin.Context) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}

	items, err := h.shopping.Build(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": items})
}

func (h *ShoppingHandler) DownloadShoppingList(c *gin.Context) {
	userID, ok := mustViewerID(c)
	if !ok {
		return
	}

	items, err := h.shopping.Build(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	body := service.RenderShoppingList(items)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", service.ShoppingListFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
