// Package api provides HTTP handlers for borderroute.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/db"
)

// ReadyChecker reports whether route searches can be served.
type ReadyChecker interface {
	Ready() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db        HealthChecker
	routes    ReadyChecker
	log       *logrus.Logger
	version   string
	modes     []string
	startTime time.Time
}

// NewHealthHandler creates a HealthHandler. database may be nil when store
// mode is not configured.
func NewHealthHandler(database HealthChecker, routes ReadyChecker, log *logrus.Logger, version string, modes []string) *HealthHandler {
	return &HealthHandler{
		db:        database,
		routes:    routes,
		log:       log,
		version:   version,
		modes:     modes,
		startTime: time.Now(),
	}
}

// readinessResponse is the JSON payload returned by the readiness endpoint.
type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthResponse is the JSON payload returned by the health/liveness endpoint.
type healthResponse struct {
	Status        string   `json:"status"`
	Version       string   `json:"version"`
	Database      string   `json:"database"`
	SchemaVersion int      `json:"schema_version"`
	Modes         []string `json:"modes"`
	UptimeSeconds float64  `json:"uptime_seconds"`
}

// Liveness handles GET /api/v1/health.
func (h *HealthHandler) Liveness(c *gin.Context) {
	resp := healthResponse{
		Status:        "ok",
		Version:       h.version,
		Database:      "not_configured",
		SchemaVersion: db.SchemaVersion(),
		Modes:         h.modes,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}

	// Best-effort database ping (non-fatal for liveness).
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp.Database = "connected"
		if err := h.db.HealthCheck(ctx); err != nil {
			resp.Database = "disconnected"
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Readiness handles GET /api/v1/ready. The service is ready once the country
// catalog has loaded and, when configured, the database answers.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := map[string]string{"catalog": "ok"}
	status := "ready"
	statusCode := http.StatusOK

	if h.routes == nil || !h.routes.Ready() {
		checks["catalog"] = "loading"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		checks["database"] = "ok"
		if err := h.db.HealthCheck(ctx); err != nil {
			h.log.WithError(err).Error("readiness: database health check failed")
			checks["database"] = "error"
			status = "not_ready"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, readinessResponse{Status: status, Checks: checks})
}
