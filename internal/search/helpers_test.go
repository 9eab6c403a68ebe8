package search_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/persistorai/borderroute/internal/models"
)

// graphResolver answers lookups from an adjacency map and records every call.
type graphResolver struct {
	adj  map[models.NodeID][]models.NodeID
	fail map[models.NodeID]error

	mu    sync.Mutex
	calls []models.NodeID
}

func newGraph(adj map[string][]string) *graphResolver {
	g := &graphResolver{adj: make(map[models.NodeID][]models.NodeID, len(adj))}
	for k, vs := range adj {
		ids := make([]models.NodeID, len(vs))
		for i, v := range vs {
			ids[i] = models.NodeID(v)
		}
		g.adj[models.NodeID(k)] = ids
	}

	return g
}

func (g *graphResolver) failOn(id string, err error) *graphResolver {
	if g.fail == nil {
		g.fail = make(map[models.NodeID]error)
	}
	g.fail[models.NodeID(id)] = err

	return g
}

func (g *graphResolver) Resolve(_ context.Context, id models.NodeID) ([]models.NodeID, error) {
	g.mu.Lock()
	g.calls = append(g.calls, id)
	g.mu.Unlock()

	if err, ok := g.fail[id]; ok {
		return nil, err
	}

	n, ok := g.adj[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownNode, id)
	}

	return n, nil
}

func (g *graphResolver) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	return len(g.calls)
}

func (g *graphResolver) callsPerNode() map[models.NodeID]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make(map[models.NodeID]int)
	for _, id := range g.calls {
		out[id]++
	}

	return out
}

var errBoom = errors.New("boom")

func route(ids ...string) models.Route {
	r := make(models.Route, len(ids))
	for i, id := range ids {
		r[i] = models.NodeID(id)
	}

	return r
}

func routeKeys(routes []models.Route) []string {
	keys := make([]string, len(routes))
	for i, r := range routes {
		keys[i] = r.String()
	}
	sort.Strings(keys)

	return keys
}

// allShortestPaths enumerates every shortest simple path by plain BFS layering.
func allShortestPaths(adj map[models.NodeID][]models.NodeID, from, to models.NodeID) []models.Route {
	dist := map[models.NodeID]int{from: 0}
	queue := []models.NodeID{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if _, ok := dist[n]; !ok {
				dist[n] = dist[cur] + 1
				queue = append(queue, n)
			}
		}
	}

	if _, ok := dist[to]; !ok {
		return nil
	}

	var out []models.Route
	var walk func(r models.Route)
	walk = func(r models.Route) {
		tail := r.Tail()
		if tail == to {
			out = append(out, r)
			return
		}
		for _, n := range adj[tail] {
			if d, ok := dist[n]; ok && d == dist[tail]+1 && d <= dist[to] {
				walk(r.Extend(n))
			}
		}
	}
	walk(models.NewRoute(from))

	return out
}

func gridGraph(w, h int) map[string][]string {
	name := func(x, y int) string { return fmt.Sprintf("G%d_%d", x, y) }
	adj := make(map[string][]string)
	for x := range w {
		for y := range h {
			var n []string
			if x > 0 {
				n = append(n, name(x-1, y))
			}
			if x < w-1 {
				n = append(n, name(x+1, y))
			}
			if y > 0 {
				n = append(n, name(x, y-1))
			}
			if y < h-1 {
				n = append(n, name(x, y+1))
			}
			adj[name(x, y)] = n
		}
	}

	return adj
}

func cycleGraph(n int) map[string][]string {
	name := func(i int) string { return fmt.Sprintf("C%d", (i+n)%n) }
	adj := make(map[string][]string, n)
	for i := range n {
		adj[name(i)] = []string{name(i - 1), name(i + 1)}
	}

	return adj
}

func bipartiteGraph(a, b int) map[string][]string {
	adj := make(map[string][]string)
	for i := range a {
		for j := range b {
			l, r := fmt.Sprintf("L%d", i), fmt.Sprintf("R%d", j)
			adj[l] = append(adj[l], r)
			adj[r] = append(adj[r], l)
		}
	}

	return adj
}

// randomGraph builds an undirected graph with n nodes and roughly n*degree/2 edges.
func randomGraph(seed uint64, n, degree int) map[string][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	name := func(i int) string { return fmt.Sprintf("N%d", i) }

	edges := make(map[[2]int]bool)
	adj := make(map[string][]string, n)
	for i := range n {
		adj[name(i)] = nil
	}

	for range n * degree / 2 {
		a, b := rng.IntN(n), rng.IntN(n)
		if a == b {
			continue
		}
		if a > b {
			a, b = b, a
		}
		if edges[[2]int{a, b}] {
			continue
		}
		edges[[2]int{a, b}] = true
		adj[name(a)] = append(adj[name(a)], name(b))
		adj[name(b)] = append(adj[name(b)], name(a))
	}

	return adj
}
