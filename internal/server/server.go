package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "kanmind/docs"
	"kanmind/internal/auth"
	"kanmind/internal/cache"
	"kanmind/internal/config"
	"kanmind/internal/dto"
	"kanmind/internal/handler"
	"kanmind/internal/logger"
	"kanmind/internal/middleware"
	"kanmind/internal/repository"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Cache  cache.TokenCache
	Config *config.Config
}

// Init opens the database, migrates it and builds the router. A configured
// but unreachable Redis is logged and skipped.
func Init(cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	db, err := OpenDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}

	var tokenCache cache.TokenCache = cache.NopTokenCache{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisTokenCache(cfg.RedisURL, cfg.TokenCacheTTL)
		if err != nil {
			logger.Warn("Redis unavailable, token cache disabled", "error", err)
		} else {
			tokenCache = redisCache
		}
	}

	r, err := NewRouter(db, tokenCache, cfg)
	if err != nil {
		return nil, err
	}

	return &Server{
		Engine: r,
		DB:     db,
		Cache:  tokenCache,
		Config: cfg,
	}, nil
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(db *gorm.DB, tokenCache cache.TokenCache, cfg *config.Config) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidators(v); err != nil {
			return nil, err
		}
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware(), middleware.LoggerMiddleware())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := auth.NewService(userRepo, tokenRepo, tokenCache, auth.NewKeyIssuer(cfg.TokenSecret))

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService, userRepo)
	boardHandler := handler.NewBoardHandler(boardRepo, taskRepo, userRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, boardRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, taskRepo)
	healthHandler := handler.NewHealthHandler(db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Public routes
	api.GET("/healthz", healthHandler.Check)
	api.POST("/auth/registration/", userHandler.Register)
	api.POST("/auth/login/", userHandler.Login)

	// Protected routes - require a token
	authorized := api.Group("/")
	authorized.Use(middleware.TokenAuthMiddleware(authService))
	{
		authorized.POST("/auth/logout/", userHandler.Logout)
		authorized.GET("/email-check/", userHandler.EmailCheck)

		// Profile routes, read-only; both prefixes serve the same data
		authorized.GET("/users/", userHandler.ListProfiles)
		authorized.GET("/users/:id/", userHandler.GetProfile)
		authorized.GET("/auth/profiles/", userHandler.ListProfiles)
		authorized.GET("/auth/profiles/:id/", userHandler.GetProfile)

		// Board routes
		authorized.GET("/boards/", boardHandler.List)
		authorized.POST("/boards/", boardHandler.Create)
		authorized.GET("/boards/:id/", boardHandler.Get)
		authorized.PATCH("/boards/:id/", boardHandler.Update)
		authorized.DELETE("/boards/:id/", boardHandler.Delete)

		// Task routes
		authorized.GET("/tasks/", taskHandler.List)
		authorized.POST("/tasks/", taskHandler.Create)
		authorized.GET("/tasks/assigned-to-me/", taskHandler.AssignedToMe)
		authorized.GET("/tasks/reviewing/", taskHandler.Reviewing)
		authorized.GET("/tasks/:id/", taskHandler.Get)
		authorized.PATCH("/tasks/:id/", taskHandler.Update)
		authorized.DELETE("/tasks/:id/", taskHandler.Delete)

		// Comment routes
		authorized.GET("/tasks/:id/comments/", commentHandler.List)
		authorized.POST("/tasks/:id/comments/", commentHandler.Create)
		authorized.GET("/tasks/:id/comments/:comment_id/", commentHandler.GetInTask)
		authorized.PATCH("/tasks/:id/comments/:comment_id/", commentHandler.UpdateInTask)
		authorized.DELETE("/tasks/:id/comments/:comment_id/", commentHandler.DeleteInTask)
		authorized.GET("/comments/:id/", commentHandler.Get)
		authorized.PATCH("/comments/:id/", commentHandler.Update)
		authorized.DELETE("/comments/:id/", commentHandler.Delete)
	}

	return r, nil
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to listen: %w", err)
	case <-quit:
	}
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	if err := s.Cache.Close(); err != nil {
		logger.Warn("Closing token cache failed", "error", err)
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server exited properly")
	return nil
}
