package store_test

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/db"
	"github.com/persistorai/borderroute/internal/db/migrations"
	"github.com/persistorai/borderroute/internal/dbpool"
	"github.com/persistorai/borderroute/internal/models"
	"github.com/persistorai/borderroute/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

func newBorderStore(t *testing.T) *store.BorderStore {
	t.Helper()

	env := getTestEnv(t)

	return store.NewBorderStore(store.Base{Pool: env.pool, Log: env.log})
}

func seed(t *testing.T, s *store.BorderStore) {
	t.Helper()

	countries := []models.Country{
		{Code: "DEU", Name: "Germany", Area: 357114},
		{Code: "POL", Name: "Poland", Area: 312679},
		{Code: "FRA", Name: "France", Area: 551695},
		{Code: "ISL", Name: "Iceland", Area: 103000},
	}
	table := map[models.NodeID][]models.NodeID{
		"DEU": {"FRA", "POL"},
		"POL": {"DEU"},
		"FRA": {"DEU"},
		"ISL": {},
	}

	if _, err := s.ReplaceSnapshot(context.Background(), countries, table); err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}
}

func TestBorderStore_Borders(t *testing.T) {
	s := newBorderStore(t)
	seed(t, s)

	ctx := context.Background()

	got, err := s.Borders(ctx, "DEU")
	if err != nil {
		t.Fatalf("Borders(DEU): %v", err)
	}

	if !slices.Equal(got, []models.NodeID{"FRA", "POL"}) {
		t.Errorf("Borders(DEU) = %v, want [FRA POL]", got)
	}

	island, err := s.Borders(ctx, "ISL")
	if err != nil {
		t.Fatalf("Borders(ISL): %v", err)
	}

	if island == nil || len(island) != 0 {
		t.Errorf("Borders(ISL) = %#v, want empty non-nil", island)
	}

	_, err = s.Borders(ctx, "XXX")
	if !errors.Is(err, models.ErrUnknownNode) {
		t.Errorf("Borders(XXX) error = %v, want ErrUnknownNode", err)
	}
}

func TestBorderStore_AllBordersAndCountries(t *testing.T) {
	s := newBorderStore(t)
	seed(t, s)

	ctx := context.Background()

	table, err := s.AllBorders(ctx)
	if err != nil {
		t.Fatalf("AllBorders: %v", err)
	}

	if len(table) != 4 {
		t.Fatalf("len(table) = %d, want 4", len(table))
	}

	if got := table["ISL"]; got == nil || len(got) != 0 {
		t.Errorf("table[ISL] = %#v, want empty non-nil", got)
	}

	countries, err := s.Countries(ctx)
	if err != nil {
		t.Fatalf("Countries: %v", err)
	}

	if len(countries) != 4 || countries[0].Code != "FRA" {
		t.Errorf("Countries() first = %+v, want FRA by area", countries)
	}
}

func TestBorderStore_ReplaceSnapshot(t *testing.T) {
	s := newBorderStore(t)
	seed(t, s)

	ctx := context.Background()

	snap, err := s.ReplaceSnapshot(ctx, nil, map[models.NodeID][]models.NodeID{
		"AAA": {"BBB", "BBB"},
		"BBB": {"AAA"},
	})
	if err != nil {
		t.Fatalf("ReplaceSnapshot: %v", err)
	}

	if snap.Countries != 2 || snap.Borders != 2 {
		t.Errorf("snapshot = %+v, want 2 countries and 2 borders", snap)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Countries != 2 || stats.ImportedAt.IsZero() {
		t.Errorf("stats = %+v", stats)
	}

	if _, err := s.Borders(ctx, "DEU"); !errors.Is(err, models.ErrUnknownNode) {
		t.Errorf("old snapshot still visible: %v", err)
	}
}
