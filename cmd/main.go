package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourism-service/internal/handler"
	"tourism-service/internal/middleware"
	"tourism-service/internal/validator"
	"tourism-service/pkg/config"
	"tourism-service/pkg/database"
	"tourism-service/pkg/logger"
	"tourism-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting tourism service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (runs migrations and creates the bootstrap admin)
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database ready", zap.String("path", cfg.Database.Path))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/", handler.Hello)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", prometheus.HandlerFunc())

	e.POST("/admin/login", handler.Login)

	// Tours: public reads, admin mutations
	e.GET("/tours", handler.ListTours)
	e.GET("/tours/:id", handler.GetTour)
	e.POST("/tours", handler.CreateTour, middleware.AdminTokenMiddleware)
	e.PUT("/tours/:id", handler.UpdateTour, middleware.AdminTokenMiddleware)
	e.DELETE("/tours/:id", handler.DeleteTour, middleware.AdminTokenMiddleware)

	// Registrations: public create, admin listing
	e.POST("/registrations", handler.CreateRegistration)
	e.GET("/registrations/tour/:id", handler.ListTourRegistrations, middleware.AdminTokenMiddleware)

	// Analytics - admin only
	analytics := e.Group("/analytics", middleware.AdminTokenMiddleware)
	analytics.GET("/tour/:id/registrations", handler.TourBookings)
	analytics.GET("/tour/:id/revenue", handler.TourRevenue)
	analytics.GET("/tour/history", handler.TourHistory)

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exiting")
}
