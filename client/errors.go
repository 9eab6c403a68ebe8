package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the borderroute API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("borderroute: %d %s: %s (request_id=%s)", e.StatusCode, e.Code, e.Message, e.RequestID)
	}
	return fmt.Sprintf("borderroute: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

func statusIs(err error, status int) bool {
	var e *APIError
	if errors.As(err, &e) {
		return e.StatusCode == status
	}
	return false
}

// IsBadRequest returns true if the error is a 400, e.g. an unknown country.
func IsBadRequest(err error) bool {
	return statusIs(err, http.StatusBadRequest)
}

// IsNotFound returns true if the error is a 404 not found.
func IsNotFound(err error) bool {
	return statusIs(err, http.StatusNotFound)
}

// IsRateLimited returns true if the error is a 429 rate limit.
func IsRateLimited(err error) bool {
	return statusIs(err, http.StatusTooManyRequests)
}

// IsUpstream returns true if the server could not reach its country data source.
func IsUpstream(err error) bool {
	return statusIs(err, http.StatusBadGateway)
}

// statusForCode maps an error code carried outside an HTTP response, such as
// a stream error frame, back to the status the server uses for it.
func statusForCode(code string) int {
	switch code {
	case "invalid_request":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "rate_limited":
		return http.StatusTooManyRequests
	case "payload_too_large":
		return http.StatusRequestEntityTooLarge
	case "upstream_error":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseAPIError attempts to decode a JSON error body; falls back to raw text.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = "unknown"
		apiErr.Message = string(body)
	}
	return apiErr
}
