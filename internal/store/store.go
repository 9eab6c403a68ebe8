// Package store persists border snapshots in PostgreSQL so that searches in
// "store" mode read adjacency from the database instead of the upstream API.
package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/dbpool"
)

const defaultQueryTimeout = 15 * time.Second

// Base contains shared dependencies for stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
