// Package search implements bidirectional, layer-synchronous breadth-first
// search for all shortest routes in a graph whose adjacency is discovered
// through a Resolver.
//
// The forward frontier grows from the origin and the backward frontier from
// the destination, one side per round. Every round resolves the distinct
// tails of the active frontier in a single batch, so the number of lookups is
// bounded by the number of distinct nodes expanded rather than by the number
// of partial routes. The search stops after the first round in which both
// frontiers share a tail; at that point every route in either frontier that
// ends at a shared tail lies on a shortest path, and joining them yields all
// shortest routes.
package search

import (
	"context"

	"github.com/persistorai/borderroute/internal/models"
	"github.com/persistorai/borderroute/internal/resolver"
)

// Engine runs searches. It holds only configuration; every call to Search
// owns its own frontiers and visited sets, so an Engine is safe for
// concurrent use.
type Engine struct {
	observer    func(Round)
	maxRounds   int
	concurrency int
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, o := range opts {
		o(e)
	}

	return e
}

// Search finds all shortest routes from origin to destination using the
// default engine configuration.
func Search(ctx context.Context, origin, destination models.NodeID, r resolver.Resolver, opts ...Option) *Result {
	return New(opts...).Search(ctx, origin, destination, r)
}

// side is the per-direction state threaded through rounds.
type side struct {
	frontier []models.Route
	visited  map[models.NodeID]struct{}
}

func newSide(start models.NodeID) *side {
	return &side{
		frontier: []models.Route{models.NewRoute(start)},
		visited:  map[models.NodeID]struct{}{start: {}},
	}
}

// Search finds all shortest routes from origin to destination.
//
// A lookup failure aborts the search: the result has OK false, no routes and
// the number of lookups issued up to and including the failing round. If the
// two sides never meet the result is OK with no routes. Equal endpoints do no
// work and return an empty OK result.
func (e *Engine) Search(ctx context.Context, origin, destination models.NodeID, r resolver.Resolver) *Result {
	res := &Result{State: StateIdle}

	if origin == destination {
		res.OK = true
		res.State = StateExhausted

		return res
	}

	fwd, bwd := newSide(origin), newSide(destination)
	active := Forward
	res.State = StateExpanding

	for len(fwd.frontier) > 0 && len(bwd.frontier) > 0 {
		if e.maxRounds > 0 && res.Rounds >= e.maxRounds {
			break
		}

		if err := ctx.Err(); err != nil {
			return failed(res, err)
		}

		cur := fwd
		if active == Backward {
			cur = bwd
		}

		tails := distinctTails(cur.frontier)

		// Marked before resolving so a tail reached again in this round is pruned.
		for _, id := range tails {
			cur.visited[id] = struct{}{}
		}

		res.QueryCount += len(tails)

		neighbours, err := resolver.ResolveBatch(ctx, r, tails, e.concurrency)
		if err != nil {
			return failed(res, err)
		}

		cur.frontier = expand(cur.frontier, cur.visited, neighbours)
		res.Rounds++

		if e.observer != nil {
			e.observer(Round{
				Index:        res.Rounds,
				Side:         active,
				Expanded:     tails,
				FrontierSize: len(cur.frontier),
				QueryCount:   res.QueryCount,
			})
		}

		if j := joinFrontiers(fwd.frontier, bwd.frontier); len(j.order) > 0 {
			res.Routes = j.routes()
			res.OK = true
			res.State = StateConverged

			return res
		}

		active = 1 - active
	}

	res.OK = true
	res.State = StateExhausted

	return res
}

func failed(res *Result, err error) *Result {
	res.OK = false
	res.State = StateFailed
	res.Routes = nil
	res.Err = err

	return res
}

// distinctTails returns the tails of frontier without duplicates, in order of
// first appearance.
func distinctTails(frontier []models.Route) []models.NodeID {
	seen := make(map[models.NodeID]struct{}, len(frontier))
	tails := make([]models.NodeID, 0, len(frontier))

	for _, route := range frontier {
		tail := route.Tail()
		if _, ok := seen[tail]; ok {
			continue
		}
		seen[tail] = struct{}{}
		tails = append(tails, tail)
	}

	return tails
}

// expand produces the next frontier: every route extended by every neighbour
// of its tail that has not been visited on this side.
func expand(frontier []models.Route, visited map[models.NodeID]struct{}, neighbours map[models.NodeID][]models.NodeID) []models.Route {
	next := make([]models.Route, 0, len(frontier))

	for _, route := range frontier {
		for _, n := range neighbours[route.Tail()] {
			if _, ok := visited[n]; ok {
				continue
			}
			next = append(next, route.Extend(n))
		}
	}

	return next
}
