package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/service"
)

// viewerID returns the authenticated viewer's id, or nil for anonymous
// requests. Handlers pass it down so projections never read ambient state.
func viewerID(c *gin.Context) *uuid.UUID {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// mustViewerID returns the viewer id on routes behind AuthMiddleware
func mustViewerID(c *gin.Context) (uuid.UUID, bool) {
	id := viewerID(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return uuid.Nil, false
	}
	return *id, true
}

func isAdmin(c *gin.Context) bool {
	return c.GetBool("is_admin")
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

// respondError translates service errors into the JSON error bodies the
// API exposes: field-level validation messages and conflicts are 400,
// missing targets are 404.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{validationErr.Field: validationErr.Message}})
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"errors": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
