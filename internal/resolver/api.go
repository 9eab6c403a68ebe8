package resolver

import (
	"context"

	"github.com/persistorai/borderroute/internal/models"
)

// BorderFetcher fetches the borders of a single country from a remote source.
type BorderFetcher interface {
	Borders(ctx context.Context, code models.NodeID) ([]models.NodeID, error)
}

// APIResolver issues one remote request per lookup.
type APIResolver struct {
	fetcher BorderFetcher
}

// NewAPIResolver creates an APIResolver backed by fetcher.
func NewAPIResolver(fetcher BorderFetcher) *APIResolver {
	return &APIResolver{fetcher: fetcher}
}

// Resolve fetches the borders of id.
func (r *APIResolver) Resolve(ctx context.Context, id models.NodeID) ([]models.NodeID, error) {
	return r.fetcher.Borders(ctx, id)
}

// NewStoreResolver creates a resolver that reads one node per lookup from a
// persisted border snapshot.
func NewStoreResolver(store BorderFetcher) *APIResolver {
	return NewAPIResolver(store)
}
