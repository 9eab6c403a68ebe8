package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/domain"
	"github.com/persistorai/borderroute/internal/metrics"
	"github.com/persistorai/borderroute/internal/models"
)

// SnapshotSource provides the upstream data copied into the store.
type SnapshotSource interface {
	AllBorders(ctx context.Context) (map[models.NodeID][]models.NodeID, error)
	Countries(ctx context.Context) ([]models.Country, error)
}

// snapshotStore is the minimal store interface consumed by SnapshotService.
type snapshotStore interface {
	ReplaceSnapshot(ctx context.Context, countries []models.Country, table map[models.NodeID][]models.NodeID) (*models.Snapshot, error)
	Stats(ctx context.Context) (*models.Snapshot, error)
}

// Compile-time check: *SnapshotService must satisfy domain.SnapshotService.
var _ domain.SnapshotService = (*SnapshotService)(nil)

// SnapshotService copies the upstream border data into PostgreSQL for store mode.
type SnapshotService struct {
	source SnapshotSource
	store  snapshotStore
	log    *logrus.Logger
}

// NewSnapshotService creates a SnapshotService.
func NewSnapshotService(source SnapshotSource, store snapshotStore, log *logrus.Logger) *SnapshotService {
	return &SnapshotService{source: source, store: store, log: log}
}

// Import fetches the full border table and country list and replaces the
// stored snapshot. The stored snapshot is left untouched if either fetch fails.
func (s *SnapshotService) Import(ctx context.Context) (*models.Snapshot, error) {
	table, err := s.source.AllBorders(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching border table: %w", err)
	}

	countries, err := s.source.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching countries: %w", err)
	}

	snap, err := s.store.ReplaceSnapshot(ctx, countries, table)
	if err != nil {
		return nil, fmt.Errorf("storing snapshot: %w", err)
	}

	metrics.SnapshotCountries.Set(float64(snap.Countries))

	s.log.WithFields(logrus.Fields{
		"countries": snap.Countries,
		"borders":   snap.Borders,
	}).Debug("snapshot.import")

	return snap, nil
}

// Stats reports the size and age of the stored snapshot.
func (s *SnapshotService) Stats(ctx context.Context) (*models.Snapshot, error) {
	snap, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot stats: %w", err)
	}

	metrics.SnapshotCountries.Set(float64(snap.Countries))

	return snap, nil
}
