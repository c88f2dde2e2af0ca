package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/voxatlas/weather-location-backend/internal/config"
	"github.com/voxatlas/weather-location-backend/internal/handlers"
	"github.com/voxatlas/weather-location-backend/internal/middleware"
	"github.com/voxatlas/weather-location-backend/internal/providers/nominatim"
	"github.com/voxatlas/weather-location-backend/internal/scheduler"
	"github.com/voxatlas/weather-location-backend/internal/services"
	"github.com/voxatlas/weather-location-backend/pkg/logger"
	"github.com/voxatlas/weather-location-backend/pkg/metrics"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(cfg.Logger.Level, cfg.Logger.Format)

	m := metrics.NewMetrics()

	// Initialize services
	provider := nominatim.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
	tzService := services.NewTimezoneService(cfg.Location, m, appLogger)
	geoService := services.NewGeolocationService(provider, tzService, cfg.Geocoder.CacheTTL, m, appLogger)
	locationService := services.NewLocationService(geoService, appLogger)
	utteranceService := services.NewUtteranceTimeService(cfg.Location, appLogger)

	// Initialize scheduler
	cronScheduler := scheduler.NewCronScheduler(geoService, cfg.Geocoder.PruneInterval, m, appLogger)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// Initialize HTTP handlers
	locationHandler := handlers.NewLocationHandler(locationService, geoService, tzService, appLogger)
	utteranceHandler := handlers.NewUtteranceHandler(utteranceService, appLogger)
	healthHandler := handlers.NewHealthHandler(geoService, appLogger, version)

	// Setup Gin router
	if cfg.Logger.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Limits.RateLimitRequests, cfg.Limits.RateLimitWindow, m, appLogger)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(appLogger))
	router.Use(middleware.Metrics(m))
	router.Use(middleware.Recovery(appLogger))
	router.Use(middleware.Security())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(rateLimiter.Middleware())
	router.Use(middleware.Timeout(cfg.Limits.RequestTimeout, appLogger))

	// API routes
	api := router.Group("/api/v1")
	{
		api.GET("/geolocation", locationHandler.GetGeolocation)
		api.GET("/geolocation/reverse", locationHandler.GetReverseGeolocation)
		api.GET("/timezone", locationHandler.GetTimezone)
		api.GET("/utterance/datetime", utteranceHandler.GetDatetime)
		api.GET("/utterance/day-period", utteranceHandler.GetDayPeriod)
		api.GET("/utterance/day-of-week", utteranceHandler.GetDayOfWeek)
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Start server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		appLogger.WithField("addr", serverAddr).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
