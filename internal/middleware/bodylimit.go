package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persistorai/borderroute/internal/httputil"
)

// MaxBodySize rejects requests whose declared length exceeds maxBytes and
// caps the body reader for the rest.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			respondError(c, http.StatusRequestEntityTooLarge, httputil.CodeTooLarge, "request body too large")

			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}
