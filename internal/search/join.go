package search

import "github.com/persistorai/borderroute/internal/models"

// meeting groups the partial routes of both sides that end at one node.
type meeting struct {
	forward  []models.Route
	backward []models.Route
}

// join indexes both frontiers by tail, keeping only tails present on both sides.
type join struct {
	byTail map[models.NodeID]*meeting
	order  []models.NodeID
}

// joinFrontiers builds the meeting index in O(len(fwd)+len(bwd)).
func joinFrontiers(fwd, bwd []models.Route) join {
	byTail := make(map[models.NodeID]*meeting, len(fwd))
	for _, route := range fwd {
		m, ok := byTail[route.Tail()]
		if !ok {
			m = &meeting{}
			byTail[route.Tail()] = m
		}
		m.forward = append(m.forward, route)
	}

	j := join{byTail: make(map[models.NodeID]*meeting)}

	for _, route := range bwd {
		m, ok := byTail[route.Tail()]
		if !ok {
			continue
		}

		if len(m.backward) == 0 {
			j.order = append(j.order, route.Tail())
			j.byTail[route.Tail()] = m
		}
		m.backward = append(m.backward, route)
	}

	return j
}

// routes emits the cross product of forward and backward routes for every
// meeting node: the forward route without its tail, then the backward route
// reversed.
func (j join) routes() []models.Route {
	var out []models.Route

	for _, tail := range j.order {
		m := j.byTail[tail]
		for _, f := range m.forward {
			for _, b := range m.backward {
				out = append(out, meet(f, b))
			}
		}
	}

	return out
}

// meet joins two non-empty routes ending at the same node. Callers group by
// tail, so the shared node is dropped from f and kept once from b.
func meet(f, b models.Route) models.Route {
	out := make(models.Route, 0, len(f)+len(b)-1)
	out = append(out, f[:len(f)-1]...)

	return append(out, b.Reversed()...)
}
