package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/models"
)

// RouteHandler serves route search and country listing endpoints.
type RouteHandler struct {
	repo RouteRepository
	log  *logrus.Logger
}

// NewRouteHandler creates a RouteHandler with the given repository and logger.
func NewRouteHandler(repo RouteRepository, log *logrus.Logger) *RouteHandler {
	return &RouteHandler{repo: repo, log: log}
}

func routeRequest(c *gin.Context) models.RouteRequest {
	return models.RouteRequest{
		From: c.Query("from"),
		To:   c.Query("to"),
		Mode: c.Query("mode"),
	}
}

// Find handles GET /api/v1/routes. A failed lookup is reported with 200 and
// ok=false; only bad requests and an unavailable catalog are errors.
func (h *RouteHandler) Find(c *gin.Context) {
	report, err := h.repo.FindRoutes(c.Request.Context(), routeRequest(c))
	if err != nil {
		status, code, message := classify(err)
		if status >= http.StatusInternalServerError {
			h.log.WithError(err).Error("finding routes")
		}
		respondError(c, status, code, message)

		return
	}

	c.JSON(http.StatusOK, report)
}

// Countries handles GET /api/v1/countries. An optional limit keeps the
// largest countries only.
func (h *RouteHandler) Countries(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "limit must be a non-negative integer")

			return
		}
		limit = n
	}

	countries, err := h.repo.Countries(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("listing countries")
		respondError(c, http.StatusBadGateway, ErrCodeUpstream, "country data unavailable")

		return
	}

	if limit > 0 && limit < len(countries) {
		countries = countries[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"countries": countries, "total": len(countries)})
}
