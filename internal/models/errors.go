package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation.
var (
	ErrInvalidEndpoints = errors.New("origin or destination is not a known country")
	ErrSameEndpoints    = errors.New("origin and destination must differ")
	ErrUnsupportedMode  = errors.New("unsupported lookup mode")
)

// Sentinel errors for adjacency lookups.
var (
	ErrResolution  = errors.New("adjacency lookup failed")
	ErrUnknownNode = errors.New("unknown node")
)

// ErrCountryNotFound is returned by catalog lookups for an unknown code or name.
var ErrCountryNotFound = errors.New("country not found")

// ResolutionError records which node's lookup failed.
type ResolutionError struct {
	Node NodeID
	Err  error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %s: %v", e.Node, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ResolutionError) Unwrap() error { return e.Err }

// Is reports ErrResolution as a match so callers can test the category.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// NewResolutionError wraps err with the node it was raised for. Errors that
// already carry a node are returned as-is.
func NewResolutionError(node NodeID, err error) error {
	var re *ResolutionError
	if errors.As(err, &re) {
		return err
	}

	return &ResolutionError{Node: node, Err: err}
}

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
