package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/persistorai/borderroute/internal/models"
)

// mockDirectory is an in-memory catalog that records load calls.
type mockDirectory struct {
	mu        sync.Mutex
	loads     int
	loadErr   error
	countries map[models.NodeID]models.Country
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{countries: map[models.NodeID]models.Country{
		"DEU": {Code: "DEU", Name: "Germany", Area: 357114},
		"POL": {Code: "POL", Name: "Poland", Area: 312679},
		"FRA": {Code: "FRA", Name: "France", Area: 551695},
		"CZE": {Code: "CZE", Name: "Czechia", Area: 78865},
		"AUT": {Code: "AUT", Name: "Austria", Area: 83871},
		"ISL": {Code: "ISL", Name: "Iceland", Area: 103000},
	}}
}

func (m *mockDirectory) Load(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	return m.loadErr
}

func (m *mockDirectory) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads > 0 && m.loadErr == nil
}

func (m *mockDirectory) CodeByName(name string) (models.NodeID, error) {
	name = strings.TrimSpace(name)
	for code, c := range m.countries {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(string(code), name) {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", models.ErrCountryNotFound, name)
}

func (m *mockDirectory) Lookup(code models.NodeID) (models.Country, bool) {
	c, ok := m.countries[code]
	return c, ok
}

func (m *mockDirectory) Names(route models.Route) []string {
	out := make([]string, len(route))
	for i, id := range route {
		out[i] = m.countries[id].Name
	}
	return out
}

func (m *mockDirectory) Sorted() []models.Country {
	return []models.Country{m.countries["FRA"], m.countries["DEU"], m.countries["POL"]}
}

// mockSnapshotSource returns configured upstream data.
type mockSnapshotSource struct {
	table     map[models.NodeID][]models.NodeID
	countries []models.Country
	tableErr  error
}

func (m *mockSnapshotSource) AllBorders(_ context.Context) (map[models.NodeID][]models.NodeID, error) {
	return m.table, m.tableErr
}

func (m *mockSnapshotSource) Countries(_ context.Context) ([]models.Country, error) {
	return m.countries, nil
}

// mockSnapshotStore records calls and returns configured responses.
type mockSnapshotStore struct {
	mu    sync.Mutex
	calls []string

	replaceSnapshot func(ctx context.Context, countries []models.Country, table map[models.NodeID][]models.NodeID) (*models.Snapshot, error)
	stats           func(ctx context.Context) (*models.Snapshot, error)
}

func (m *mockSnapshotStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockSnapshotStore) ReplaceSnapshot(ctx context.Context, countries []models.Country, table map[models.NodeID][]models.NodeID) (*models.Snapshot, error) {
	m.record("ReplaceSnapshot")
	return m.replaceSnapshot(ctx, countries, table)
}

func (m *mockSnapshotStore) Stats(ctx context.Context) (*models.Snapshot, error) {
	m.record("Stats")
	return m.stats(ctx)
}
