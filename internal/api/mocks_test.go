package api_test

import (
	"context"
	"errors"
	"sync"

	"github.com/persistorai/borderroute/internal/models"
)

// mockRouteService records calls and returns configured responses.
type mockRouteService struct {
	mu    sync.Mutex
	calls []string
	ready bool

	findRoutes   func(ctx context.Context, req models.RouteRequest) (*models.RouteReport, error)
	streamRoutes func(ctx context.Context, req models.RouteRequest, emit func(models.RoundEvent)) (*models.RouteReport, error)
	countries    func(ctx context.Context) ([]models.Country, error)
}

func (m *mockRouteService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockRouteService) FindRoutes(ctx context.Context, req models.RouteRequest) (*models.RouteReport, error) {
	m.record("FindRoutes")
	return m.findRoutes(ctx, req)
}

func (m *mockRouteService) StreamRoutes(ctx context.Context, req models.RouteRequest, emit func(models.RoundEvent)) (*models.RouteReport, error) {
	m.record("StreamRoutes")
	return m.streamRoutes(ctx, req, emit)
}

func (m *mockRouteService) Countries(ctx context.Context) ([]models.Country, error) {
	m.record("Countries")
	return m.countries(ctx)
}

func (m *mockRouteService) Ready() bool {
	return m.ready
}

// mockSnapshotService returns a fixed snapshot.
type mockSnapshotService struct {
	snap *models.Snapshot
	err  error
}

func (m *mockSnapshotService) Import(_ context.Context) (*models.Snapshot, error) {
	return m.snap, m.err
}

func (m *mockSnapshotService) Stats(_ context.Context) (*models.Snapshot, error) {
	return m.snap, m.err
}

// mockDB implements HealthChecker.
type mockDB struct {
	err error
}

func (m *mockDB) HealthCheck(_ context.Context) error {
	return m.err
}

var errDBDown = errors.New("connection refused")

func sampleReport() *models.RouteReport {
	return &models.RouteReport{
		From:       models.Country{Code: "FRA", Name: "France"},
		To:         models.Country{Code: "POL", Name: "Poland"},
		Mode:       models.ModeAPI,
		OK:         true,
		State:      "converged",
		QueryCount: 3,
		Routes: []models.RouteView{{
			Codes: []string{"FRA", "DEU", "POL"},
			Names: []string{"France", "Germany", "Poland"},
			Hops:  2,
			Text:  "France → Germany → Poland",
		}},
	}
}
