package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/borderroute/internal/httputil"
	"github.com/persistorai/borderroute/internal/metrics"
	"github.com/persistorai/borderroute/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest = httputil.CodeInvalidRequest
	ErrCodeNotFound       = httputil.CodeNotFound
	ErrCodeInternalError  = httputil.CodeInternal
	ErrCodeRateLimited    = httputil.CodeRateLimited
	ErrCodeUpstream       = httputil.CodeUpstream
)

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// classify maps a service error to an HTTP status and error code.
func classify(err error) (status int, code, message string) {
	switch {
	case errors.Is(err, models.ErrInvalidEndpoints),
		errors.Is(err, models.ErrSameEndpoints),
		errors.Is(err, models.ErrUnsupportedMode):
		return http.StatusBadRequest, ErrCodeInvalidRequest, err.Error()
	default:
		return http.StatusBadGateway, ErrCodeUpstream, "country data unavailable"
	}
}
