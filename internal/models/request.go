package models

import (
	"fmt"
	"strings"
)

// Lookup modes select the adjacency resolver used for a search.
const (
	ModeAPI   = "api"   // one remote request per expanded country
	ModeTable = "table" // one bulk request, then in-memory lookups
	ModeStore = "store" // border snapshot persisted in PostgreSQL
)

// maxEndpointLength caps the length of a country name or code in a request.
const maxEndpointLength = 128

// RouteRequest is the input to a route search. From and To may be country
// names or alpha-3 codes.
type RouteRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode,omitempty"`
}

// Validate checks required fields and normalizes whitespace and mode.
func (r *RouteRequest) Validate() error {
	r.From = strings.TrimSpace(r.From)
	r.To = strings.TrimSpace(r.To)
	r.Mode = strings.ToLower(strings.TrimSpace(r.Mode))

	if r.From == "" {
		return fmt.Errorf("from is required")
	}

	if r.To == "" {
		return fmt.Errorf("to is required")
	}

	if len(r.From) > maxEndpointLength {
		return ErrFieldTooLong("from", maxEndpointLength)
	}

	if len(r.To) > maxEndpointLength {
		return ErrFieldTooLong("to", maxEndpointLength)
	}

	if strings.EqualFold(r.From, r.To) {
		return ErrSameEndpoints
	}

	switch r.Mode {
	case "", ModeAPI, ModeTable, ModeStore:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMode, r.Mode)
	}

	return nil
}
