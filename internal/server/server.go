package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sashafierce98/TGPTaskflow/internal/auth"
	"github.com/sashafierce98/TGPTaskflow/internal/config"
	"github.com/sashafierce98/TGPTaskflow/internal/handler"
	"github.com/sashafierce98/TGPTaskflow/internal/middleware"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
	"github.com/sashafierce98/TGPTaskflow/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const identityTimeout = 10 * time.Second

type Server struct {
	Engine    *gin.Engine
	DB        *gorm.DB
	Config    *config.Config
	scheduler *service.SchedulerService
}

// Init opens the configured database and builds the server on top of it.
func Init(cfg *config.Config) (*Server, error) {
	db, err := repository.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	slog.Info("✅ Connected to database", "driver", cfg.DBDriver)

	return New(cfg, db)
}

// New wires repositories, handlers and routes over an open database.
func New(cfg *config.Config, db *gorm.DB) (*Server, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	issuer := auth.NewTokenIssuer(cfg.JWTSecret)
	identity := auth.NewIdentityClient(cfg.IdentityURL, identityTimeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, sessionRepo, issuer, identity, cfg)
	boardHandler := handler.NewBoardHandler(boardRepo)
	columnHandler := handler.NewColumnHandler(columnRepo, boardRepo)
	cardHandler := handler.NewCardHandler(cardRepo, columnRepo, boardRepo, commentRepo, userRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, cardRepo, columnRepo)
	notificationHandler := handler.NewNotificationHandler(service.NewNotificationService(cardRepo))
	adminHandler := handler.NewAdminHandler(userRepo, boardRepo, cardRepo)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "TGP Taskflow API"})
	})

	// Public routes
	api.POST("/auth/session", authHandler.CreateSession)
	api.POST("/auth/logout", authHandler.Logout)

	// Signed-in routes, pending accounts included
	authenticated := api.Group("/")
	authenticated.Use(middleware.SessionAuth(issuer, sessionRepo, userRepo))
	authenticated.GET("/auth/me", authHandler.Me)

	approved := authenticated.Group("/")
	approved.Use(middleware.RequireApproved())
	{
		// Board routes
		approved.GET("/boards", boardHandler.GetAll)
		approved.POST("/boards", boardHandler.Create)
		approved.GET("/boards/:id", boardHandler.GetByID)
		approved.PUT("/boards/:id", boardHandler.Update)
		approved.DELETE("/boards/:id", boardHandler.Delete)

		// Column routes
		approved.GET("/boards/:id/columns", columnHandler.GetAll)
		approved.POST("/boards/:id/columns", columnHandler.Create)
		approved.PUT("/columns/:id", columnHandler.Update)
		approved.DELETE("/columns/:id", columnHandler.Delete)

		// Card routes
		approved.GET("/boards/:id/cards", cardHandler.GetAll)
		approved.POST("/boards/:id/columns/:column_id/cards", cardHandler.Create)
		approved.PUT("/cards/:id", cardHandler.Update)
		approved.DELETE("/cards/:id", cardHandler.Delete)

		// Answer threads
		approved.GET("/cards/:id/comments", commentHandler.GetAll)
		approved.POST("/cards/:id/comments", commentHandler.Create)

		approved.GET("/notifications", notificationHandler.GetAll)
	}

	admin := authenticated.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.PUT("/users/:id/role", adminHandler.UpdateRole)
		admin.PUT("/users/:id/approve", adminHandler.Approve)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/analytics", adminHandler.Analytics)
	}

	scheduler := service.NewSchedulerService()
	purger := service.NewSessionPurger(sessionRepo)
	if _, err := scheduler.ScheduleInterval(cfg.SessionPurgeInterval, purger.Run); err != nil {
		return nil, fmt.Errorf("schedule session purge: %w", err)
	}

	return &Server{
		Engine:    r,
		DB:        db,
		Config:    cfg,
		scheduler: scheduler,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	s.scheduler.Start()

	go func() {
		slog.Info("🚀 Server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to listen", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("🛑 Shutting down server...")

	s.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("❌ Server forced to shutdown", "err", err)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("✅ Server exited properly")
}
