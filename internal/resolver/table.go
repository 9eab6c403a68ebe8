package resolver

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/persistorai/borderroute/internal/models"
)

// TableFetcher fetches the complete adjacency table in one request.
type TableFetcher interface {
	AllBorders(ctx context.Context) (map[models.NodeID][]models.NodeID, error)
}

// tableLoadTimeout bounds the shared bulk fetch.
const tableLoadTimeout = time.Minute

// TableResolver answers lookups from an in-memory table populated by one bulk
// fetch. The table is loaded lazily on first use; concurrent first lookups
// share a single fetch. A failed load is not cached, so the next search retries it.
type TableResolver struct {
	fetcher TableFetcher
	group   singleflight.Group

	mu    sync.RWMutex
	table map[models.NodeID][]models.NodeID
}

// NewTableResolver creates a TableResolver backed by fetcher.
func NewTableResolver(fetcher TableFetcher) *TableResolver {
	return &TableResolver{fetcher: fetcher}
}

// NewStaticTable creates a TableResolver over a fixed table. Useful for tests
// and for border snapshots loaded from disk or a database.
func NewStaticTable(table map[models.NodeID][]models.NodeID) *TableResolver {
	return &TableResolver{table: table}
}

// Load populates the table if it has not been loaded yet.
func (r *TableResolver) Load(ctx context.Context) error {
	_, err := r.snapshot(ctx)
	return err
}

// Loaded reports whether the table is populated.
func (r *TableResolver) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.table != nil
}

// Len returns the number of nodes in the loaded table.
func (r *TableResolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.table)
}

// Resolve returns the neighbours of id from the table. Ids absent from the
// table are reported as models.ErrUnknownNode.
func (r *TableResolver) Resolve(ctx context.Context, id models.NodeID) ([]models.NodeID, error) {
	table, err := r.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	neighbours, ok := table[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownNode, id)
	}

	// Callers must not be able to mutate the shared table.
	return slices.Clone(neighbours), nil
}

func (r *TableResolver) snapshot(ctx context.Context) (map[models.NodeID][]models.NodeID, error) {
	r.mu.RLock()
	table := r.table
	r.mu.RUnlock()

	if table != nil {
		return table, nil
	}

	if r.fetcher == nil {
		return nil, fmt.Errorf("loading border table: no fetcher configured")
	}

	// The shared fetch outlives any single caller; each caller still stops
	// waiting when its own context ends.
	ch := r.group.DoChan("table", func() (any, error) {
		r.mu.RLock()
		loaded := r.table
		r.mu.RUnlock()
		if loaded != nil {
			return loaded, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tableLoadTimeout)
		defer cancel()

		fetched, err := r.fetcher.AllBorders(loadCtx)
		if err != nil {
			return nil, fmt.Errorf("loading border table: %w", err)
		}

		r.mu.Lock()
		r.table = fetched
		r.mu.Unlock()

		return fetched, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("loading border table: %w", ctx.Err())
	}

	if res.Err != nil {
		return nil, res.Err
	}

	return res.Val.(map[models.NodeID][]models.NodeID), nil //nolint:forcetypeassert // singleflight returns what the closure stored.
}
