package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/salespulse/internal/middleware"
)

// RouterOptions tune the global middlewares.
type RouterOptions struct {
	CORSOrigins    []string      // "*" or an explicit allow list; empty disables CORS headers
	RateLimit      int           // requests per minute per client IP; 0 disables
	RequestTimeout time.Duration // per-request context deadline; 0 means 10s
}

// NewRouter creates a Gin engine with routes configured.
// It receives the JSON and HTML handlers with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, CORS).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the HTML dashboard (/, /tasks, /charts) and API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
//
// Parameters:
//   - handler (*Handler): The JSON API handlers.
//   - dash (*Dashboard): The HTML dashboard handlers.
//   - opts (RouterOptions): Middleware settings from config.
//
// Returns:
//   - *gin.Engine: Configured Gin router.
func NewRouter(handler *Handler, dash *Dashboard, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.NewRateLimiter(opts.RateLimit, time.Minute).Handler(),
	)
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}

	// ─── Timeout ──────────────────────────────────
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── HTML dashboard ───────────────────────────
	router.GET("/", dash.Index)
	router.POST("/tasks", dash.SubmitTask)
	router.POST("/tasks/:id/load", dash.LoadTask)
	router.GET("/charts/:name", dash.Chart)

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/tasks", handler.ListTasks)
		v1.POST("/tasks", handler.CreateTask)
		v1.POST("/tasks/:id/load", handler.LoadTask)
		v1.GET("/dashboard", handler.GetDashboard)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
