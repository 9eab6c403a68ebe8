package search

import (
	"slices"

	"github.com/persistorai/borderroute/internal/models"
)

// State is the lifecycle state of a search.
type State int

// Search states. Converged, Exhausted and Failed are terminal.
const (
	StateIdle State = iota
	StateExpanding
	StateConverged
	StateExhausted
	StateFailed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateExpanding:
		return "expanding"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateExhausted || s == StateFailed
}

// Side names the direction a round expanded.
type Side int

// Search sides.
const (
	Forward Side = iota
	Backward
)

// String implements fmt.Stringer.
func (s Side) String() string {
	if s == Forward {
		return "forward"
	}

	return "backward"
}

// Round describes one completed expansion step.
type Round struct {
	Index        int             // 1-based round number
	Side         Side            // side that expanded
	Expanded     []models.NodeID // distinct tails resolved this round
	FrontierSize int             // routes in the new frontier of that side
	QueryCount   int             // cumulative lookups issued
}

// Result is the outcome of a search. OK is false only when a lookup failed;
// an unreachable destination is OK with no routes.
type Result struct {
	OK         bool
	QueryCount int
	Routes     []models.Route
	State      State
	Rounds     int
	Err        error
}

// Hops returns the length of the shortest routes, or -1 when none were found.
func (r *Result) Hops() int {
	if len(r.Routes) == 0 {
		return -1
	}

	return r.Routes[0].Hops()
}

// Sort orders routes lexicographically. The engine itself makes no ordering
// promise; this is for stable presentation.
func (r *Result) Sort() {
	slices.SortFunc(r.Routes, func(a, b models.Route) int { return a.Compare(b) })
}
