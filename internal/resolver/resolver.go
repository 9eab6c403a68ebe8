// Package resolver provides adjacency resolvers: pluggable sources that return
// the neighbours of a node, and the batch join the search engine uses to
// resolve one round of frontier nodes concurrently.
package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/persistorai/borderroute/internal/models"
)

// Resolver returns the set of nodes directly adjacent to id. Implementations
// must return a failure (never a silent empty set) for unknown ids and
// transport errors, and must return stable results for a given id within one
// search. The slice is treated as a set: ResolveBatch drops repeated entries.
type Resolver interface {
	Resolve(ctx context.Context, id models.NodeID) ([]models.NodeID, error)
}

// Func adapts a plain function to the Resolver interface.
type Func func(ctx context.Context, id models.NodeID) ([]models.NodeID, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, id models.NodeID) ([]models.NodeID, error) {
	return f(ctx, id)
}

// ResolveBatch resolves every id concurrently and joins the results keyed by
// the requesting id. Each neighbour list is deduplicated, keeping first
// occurrences in order. If any lookup fails the whole batch fails with a
// *models.ResolutionError and no partial results are returned; the remaining
// in-flight lookups are cancelled through the group context. A limit > 0
// bounds the number of concurrent lookups.
func ResolveBatch(ctx context.Context, r Resolver, ids []models.NodeID, limit int) (map[models.NodeID][]models.NodeID, error) {
	results := make([][]models.NodeID, len(ids))

	g, gCtx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, id := range ids {
		g.Go(func() error {
			neighbours, err := r.Resolve(gCtx, id)
			if err != nil {
				return models.NewResolutionError(id, err)
			}
			results[i] = unique(neighbours)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[models.NodeID][]models.NodeID, len(ids))
	for i, id := range ids {
		out[id] = results[i]
	}

	return out, nil
}

// unique returns ids without repeats. The input is returned as-is when it is
// already duplicate-free.
func unique(ids []models.NodeID) []models.NodeID {
	seen := make(map[models.NodeID]struct{}, len(ids))
	for i, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			continue
		}

		out := make([]models.NodeID, i, len(ids))
		copy(out, ids[:i])

		for _, rest := range ids[i+1:] {
			if _, ok := seen[rest]; ok {
				continue
			}
			seen[rest] = struct{}{}
			out = append(out, rest)
		}

		return out
	}

	return ids
}
