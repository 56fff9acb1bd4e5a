package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/middleware"
	"github.com/foodgram/backend/internal/service"
)

// SetupAPI wires services and handlers onto the /api/v1 route group.
// redisClient and s3Config may be nil; rate limiting and S3 image storage
// are then disabled.
func SetupAPI(router *gin.Engine, db *gorm.DB, cfg *config.Config, redisClient *redis.Client, s3Config *config.S3Config) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, cfg.JWTSecret)
		catalogService := service.NewCatalogService(db)
		recipeService := service.NewRecipeService(db)
		relationService := service.NewRelationService(db)
		projectionService := service.NewProjectionService(relationService, recipeService)
		shoppingService := service.NewShoppingListService(db)
		imageService := service.NewImageService(s3Config, cfg.MediaDir)

		var recipeLimiter *middleware.RateLimiter
		if redisClient != nil {
			recipeLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
		}

		authHandler := NewAuthHandler(authService, projectionService)
		userHandler := NewUserHandler(authService, relationService, projectionService)
		catalogHandler := NewCatalogHandler(catalogService, authService)
		recipeHandler := NewRecipeHandler(recipeService, relationService, projectionService, imageService, authService, recipeLimiter)
		shoppingHandler := NewShoppingHandler(shoppingService, authService)

		authHandler.RegisterRoutes(v1)
		userHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		shoppingHandler.RegisterRoutes(v1)
	}
}
