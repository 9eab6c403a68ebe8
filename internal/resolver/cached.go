package resolver

import (
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/persistorai/borderroute/internal/models"
)

// CachedResolver memoizes successful lookups of an inner resolver across
// searches in a bounded LRU. Failures are never cached.
type CachedResolver struct {
	inner Resolver
	cache *lru.Cache[models.NodeID, []models.NodeID]
	hits  func()
}

// NewCachedResolver wraps inner with an LRU of the given size.
func NewCachedResolver(inner Resolver, size int) (*CachedResolver, error) {
	cache, err := lru.New[models.NodeID, []models.NodeID](size)
	if err != nil {
		return nil, err
	}

	return &CachedResolver{inner: inner, cache: cache}, nil
}

// OnHit registers a callback invoked on every cache hit (used for metrics).
func (r *CachedResolver) OnHit(fn func()) {
	r.hits = fn
}

// Resolve returns the cached neighbours of id, or resolves and caches them.
func (r *CachedResolver) Resolve(ctx context.Context, id models.NodeID) ([]models.NodeID, error) {
	if neighbours, ok := r.cache.Get(id); ok {
		if r.hits != nil {
			r.hits()
		}

		return slices.Clone(neighbours), nil
	}

	neighbours, err := r.inner.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	r.cache.Add(id, slices.Clone(neighbours))

	return neighbours, nil
}

// Len returns the number of cached entries.
func (r *CachedResolver) Len() int {
	return r.cache.Len()
}

// Purge drops every cached entry.
func (r *CachedResolver) Purge() {
	r.cache.Purge()
}
