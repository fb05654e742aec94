// Package main runs the event platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eventboard/backend/config"
	"github.com/eventboard/backend/internal/admin"
	"github.com/eventboard/backend/internal/auth"
	"github.com/eventboard/backend/internal/events"
	"github.com/eventboard/backend/internal/middleware"
	"github.com/eventboard/backend/internal/organizations"
	"github.com/eventboard/backend/pkg/database"
	"github.com/eventboard/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	orgRepo := organizations.NewRepository(pool)
	authRepo := auth.NewRepository(pool)
	eventRepo := events.NewRepository(pool)

	authHandler := auth.NewHandler(authRepo, orgRepo, logger)
	adminHandler := admin.NewHandler(orgRepo, eventRepo, logger)
	eventHandler := events.NewHandler(eventRepo, orgRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Liveness and store diagnostics
	router.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "Event Platform Backend Running"})
	})
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	router.GET("/test", func(c *gin.Context) {
		response.OK(c, database.Check(c.Request.Context(), pool))
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/admin/login", authHandler.AdminLogin)
		authGroup.POST("/org/register", authHandler.RegisterOrg)
		authGroup.POST("/org/login", authHandler.OrgLogin)
	}

	adminGroup := router.Group("/admin")
	{
		adminGroup.POST("/verify-organization", adminHandler.VerifyOrganization)
		adminGroup.POST("/approve-event", adminHandler.ApproveEvent)
	}

	router.POST("/events", eventHandler.Create)
	router.GET("/events", eventHandler.List)
	router.GET("/events/categories", eventHandler.Categories)

	router.POST("/seed-admin", authHandler.SeedAdmin)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
