package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/persistorai/borderroute/internal/httputil"
	"github.com/persistorai/borderroute/internal/metrics"
)

// respondError counts the error by code and writes the shared error body.
func respondError(c *gin.Context, status int, errCode, message string) {
	metrics.ErrorsTotal.WithLabelValues(errCode).Inc()
	httputil.RespondError(c, status, errCode, message)
}
