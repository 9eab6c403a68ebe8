// Package httputil provides shared HTTP response helpers.
package httputil

import "github.com/gin-gonic/gin"

// Error codes returned in ErrorResponse.Code.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeRateLimited    = "rate_limited"
	CodeUpstream       = "upstream_error"
	CodeInternal       = "internal_error"
	CodeTooLarge       = "payload_too_large"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RequestID returns the request ID stored on the gin context, if any.
func RequestID(c *gin.Context) string {
	if rid, exists := c.Get("request_id"); exists {
		if s, ok := rid.(string); ok {
			return s
		}
	}

	return ""
}

// RespondError writes a standardized JSON error response and aborts the request.
func RespondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: RequestID(c),
	})
}
