package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
	db     *gorm.DB
}

// New creates a new server instance. redisClient and s3Config may be nil;
// the affected features are then disabled.
func New(cfg *config.Config, db *gorm.DB, opts ...Option) *Server {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		router: router,
		cfg:    cfg,
		db:     db,
	}

	var settings options
	for _, opt := range opts {
		opt(&settings)
	}

	router.GET("/health", s.healthCheck)
	if cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	api.SetupAPI(router, db, cfg, settings.redisClient, settings.s3Config)

	return s
}

type options struct {
	redisClient *redis.Client
	s3Config    *config.S3Config
}

// Option configures optional server dependencies.
type Option func(*options)

// WithRedis enables the Redis-backed rate limiter.
func WithRedis(client *redis.Client) Option {
	return func(o *options) { o.redisClient = client }
}

// WithS3 enables S3 image storage instead of the local media directory.
func WithS3(s3Config *config.S3Config) Option {
	return func(o *options) { o.s3Config = s3Config }
}

func (s *Server) healthCheck(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
