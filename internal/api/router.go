package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router. DB and Snapshots
// are nil when no database is configured.
type RouterDeps struct {
	Log         *logrus.Logger
	DB          HealthChecker
	Routes      RouteRepository
	Snapshots   SnapshotRepository
	Modes       []string
	CORSOrigins []string
	Version     string
	HSTS        bool
}

// Router-level limits.
const (
	maxBodySize = 64 << 10 // 64 KB
	rateLimit   = 20       // requests per second per IP
	rateBurst   = 40       // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(middleware.Logger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders(deps.HSTS))
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.DB, deps.Routes, log, deps.Version, deps.Modes)
	routes := NewRouteHandler(deps.Routes, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	api.GET("/countries", routes.Countries)
	api.GET("/routes", routes.Find)
	api.GET("/routes/stream", routes.streamHandler(ctx, deps.CORSOrigins))

	if deps.Snapshots != nil {
		snapshots := NewSnapshotHandler(deps.Snapshots, log)
		api.GET("/snapshot", snapshots.Stats)
	}
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	return r
}
