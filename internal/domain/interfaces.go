// Package domain defines the canonical service interfaces shared across API
// layers (REST, websocket stream, client). Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/persistorai/borderroute/internal/models"
)

// RouteService defines route search operations.
type RouteService interface {
	FindRoutes(ctx context.Context, req models.RouteRequest) (*models.RouteReport, error)
	StreamRoutes(ctx context.Context, req models.RouteRequest, emit func(models.RoundEvent)) (*models.RouteReport, error)
	Countries(ctx context.Context) ([]models.Country, error)
	Ready() bool
}

// SnapshotService defines border snapshot operations. It is only available
// when a database is configured.
type SnapshotService interface {
	Import(ctx context.Context) (*models.Snapshot, error)
	Stats(ctx context.Context) (*models.Snapshot, error)
}
