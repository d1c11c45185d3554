package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salespulse/config"
	"github.com/guttosm/salespulse/internal/api"
	"github.com/guttosm/salespulse/internal/logger"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the dataset cache using InitCache() (no-op when REDIS_URL is empty).
//   - Initializes the service layer (task API client + dataset state).
//   - Creates the JSON and HTML handler layers.
//   - Configures the Gin router with all routes and middlewares.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., Redis connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Open the dataset cache
	datasets, err := InitCache(context.Background(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	// Initialize service layer (business logic)
	svc := NewDashboardService(cfg, datasets)

	// Initialize HTTP handler layers (business logic to HTTP mapping)
	handler := api.NewHandler(svc)
	dashboard := api.NewDashboard(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, dashboard, api.RouterOptions{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimit:      cfg.Server.RateLimit,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(svc.Ready)
	healthHandler.Register(router)

	// Cleanup resources on shutdown
	cleanup := func() {
		if err := datasets.Close(); err != nil {
			logger.L().Warn().Err(err).Msg("closing dataset cache")
		}
	}

	return router, cleanup, nil
}
