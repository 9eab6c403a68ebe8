// Package models defines data types shared by the route finder.
package models

import (
	"fmt"
	"slices"
	"strings"
)

// NodeID identifies a node in the border graph (an ISO 3166-1 alpha-3 code).
// The search engine treats it as an opaque token.
type NodeID string

// String implements fmt.Stringer.
func (id NodeID) String() string { return string(id) }

// NormalizeCode upper-cases and trims a user-supplied country code.
func NormalizeCode(s string) NodeID {
	return NodeID(strings.ToUpper(strings.TrimSpace(s)))
}

// RouteSeparator joins node names when a route is rendered as text.
const RouteSeparator = " → "

// Route is an ordered, non-repeating sequence of nodes where each consecutive
// pair is adjacent. Routes are shared between frontiers, so methods that
// derive a new route copy instead of appending in place.
type Route []NodeID

// NewRoute returns a single-node route.
func NewRoute(id NodeID) Route {
	return Route{id}
}

// Tail returns the last node of the route, or "" for an empty route.
func (r Route) Tail() NodeID {
	if len(r) == 0 {
		return ""
	}

	return r[len(r)-1]
}

// Hops returns the number of edges in the route.
func (r Route) Hops() int {
	if len(r) == 0 {
		return 0
	}

	return len(r) - 1
}

// Extend returns a new route with id appended.
func (r Route) Extend(id NodeID) Route {
	out := make(Route, len(r), len(r)+1)
	copy(out, r)

	return append(out, id)
}

// Reversed returns a reversed copy of the route.
func (r Route) Reversed() Route {
	out := slices.Clone(r)
	slices.Reverse(out)

	return out
}

// Join concatenates a forward route and a backward route that share a tail.
// The shared node appears once: forward without its tail, then backward reversed.
func Join(forward, backward Route) (Route, error) {
	if len(forward) == 0 || len(backward) == 0 {
		return nil, fmt.Errorf("joining routes: empty route")
	}

	if forward.Tail() != backward.Tail() {
		return nil, fmt.Errorf("joining routes: tails differ (%s, %s)", forward.Tail(), backward.Tail())
	}

	out := make(Route, 0, len(forward)+len(backward)-1)
	out = append(out, forward[:len(forward)-1]...)

	return append(out, backward.Reversed()...), nil
}

// Codes returns the route as plain strings.
func (r Route) Codes() []string {
	out := make([]string, len(r))
	for i, id := range r {
		out[i] = string(id)
	}

	return out
}

// String renders the route as arrow-joined codes.
func (r Route) String() string {
	return strings.Join(r.Codes(), RouteSeparator)
}

// Key returns a comparable representation of the route, usable as a map key.
func (r Route) Key() string {
	return strings.Join(r.Codes(), "\x00")
}

// Compare orders routes lexicographically by node, shorter first on a common prefix.
func (r Route) Compare(other Route) int {
	return slices.Compare(r, other)
}

// IsSimple reports whether no node repeats in the route.
func (r Route) IsSimple() bool {
	seen := make(map[NodeID]struct{}, len(r))
	for _, id := range r {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}

	return true
}
