package api

import (
	"context"

	"github.com/persistorai/borderroute/internal/domain"
)

// RouteRepository defines the route operations used by RouteHandler.
type RouteRepository = domain.RouteService

// SnapshotRepository defines the snapshot operations used by SnapshotHandler.
type SnapshotRepository = domain.SnapshotService

// HealthChecker reports database connectivity. *dbpool.Pool satisfies it.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
