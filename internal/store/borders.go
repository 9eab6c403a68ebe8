package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/borderroute/internal/models"
)

// BorderStore reads and replaces the persisted border snapshot.
type BorderStore struct {
	Base
}

// NewBorderStore creates a BorderStore with the given shared base.
func NewBorderStore(base Base) *BorderStore {
	return &BorderStore{Base: base}
}

// Borders returns the neighbours of code. Unknown codes yield
// models.ErrUnknownNode; a country with no land borders yields an empty set.
func (s *BorderStore) Borders(ctx context.Context, code models.NodeID) ([]models.NodeID, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT b.neighbor
		FROM countries c
		LEFT JOIN borders b ON b.code = c.code
		WHERE c.code = $1
		ORDER BY b.neighbor`, string(code))
	if err != nil {
		return nil, fmt.Errorf("querying borders of %s: %w", code, err)
	}
	defer rows.Close()

	found := false
	neighbours := make([]models.NodeID, 0, 8)

	for rows.Next() {
		found = true

		var neighbor *string
		if err := rows.Scan(&neighbor); err != nil {
			return nil, fmt.Errorf("scanning border row: %w", err)
		}

		if neighbor != nil {
			neighbours = append(neighbours, models.NodeID(*neighbor))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating border rows: %w", err)
	}

	if !found {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownNode, code)
	}

	return neighbours, nil
}

// AllBorders returns the whole snapshot as an adjacency table.
func (s *BorderStore) AllBorders(ctx context.Context) (map[models.NodeID][]models.NodeID, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT c.code, b.neighbor
		FROM countries c
		LEFT JOIN borders b ON b.code = c.code
		ORDER BY c.code, b.neighbor`)
	if err != nil {
		return nil, fmt.Errorf("querying border table: %w", err)
	}
	defer rows.Close()

	table := make(map[models.NodeID][]models.NodeID, 256)

	for rows.Next() {
		var (
			code     string
			neighbor *string
		)
		if err := rows.Scan(&code, &neighbor); err != nil {
			return nil, fmt.Errorf("scanning border row: %w", err)
		}

		id := models.NodeID(code)
		if _, ok := table[id]; !ok {
			table[id] = []models.NodeID{}
		}

		if neighbor != nil {
			table[id] = append(table[id], models.NodeID(*neighbor))
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating border rows: %w", err)
	}

	return table, nil
}

// Countries returns the persisted country metadata ordered by area, largest first.
func (s *BorderStore) Countries(ctx context.Context) ([]models.Country, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, `SELECT code, name, area FROM countries ORDER BY area DESC, code`)
	if err != nil {
		return nil, fmt.Errorf("querying countries: %w", err)
	}
	defer rows.Close()

	out := make([]models.Country, 0, 256)

	for rows.Next() {
		var c models.Country
		var code string
		if err := rows.Scan(&code, &c.Name, &c.Area); err != nil {
			return nil, fmt.Errorf("scanning country row: %w", err)
		}

		c.Code = models.NodeID(code)
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating country rows: %w", err)
	}

	return out, nil
}

// ReplaceSnapshot atomically replaces the stored snapshot with the given
// countries and adjacency table. Countries present in the table but missing
// from the metadata are stored under their code.
func (s *BorderStore) ReplaceSnapshot(
	ctx context.Context,
	countries []models.Country,
	table map[models.NodeID][]models.NodeID,
) (*models.Snapshot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot import: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	if _, err := tx.Exec(ctx, "DELETE FROM countries"); err != nil {
		return nil, fmt.Errorf("clearing countries: %w", err)
	}

	now := time.Now().UTC()
	byCode := make(map[models.NodeID]models.Country, len(countries))
	for _, c := range countries {
		byCode[c.Code] = c
	}
	for code := range table {
		if _, ok := byCode[code]; !ok {
			byCode[code] = models.Country{Code: code, Name: string(code)}
		}
	}

	countryRows := make([][]any, 0, len(byCode))
	for _, c := range byCode {
		countryRows = append(countryRows, []any{string(c.Code), c.Name, c.Area, now})
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"countries"},
		[]string{"code", "name", "area", "imported_at"}, pgx.CopyFromRows(countryRows)); err != nil {
		return nil, fmt.Errorf("copying countries: %w", err)
	}

	borderRows := make([][]any, 0, len(table)*4)
	for code, neighbours := range table {
		seen := make(map[models.NodeID]struct{}, len(neighbours))
		for _, n := range neighbours {
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			borderRows = append(borderRows, []any{string(code), string(n)})
		}
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"borders"},
		[]string{"code", "neighbor"}, pgx.CopyFromRows(borderRows)); err != nil {
		return nil, fmt.Errorf("copying borders: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing snapshot import: %w", err)
	}

	s.Log.WithFields(logrus.Fields{
		"countries": len(countryRows),
		"borders":   len(borderRows),
	}).Info("border snapshot imported")

	return &models.Snapshot{Countries: len(countryRows), Borders: len(borderRows), ImportedAt: now}, nil
}

// Stats reports the size and age of the stored snapshot. ImportedAt is zero
// when the store is empty.
func (s *BorderStore) Stats(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var (
		snap       models.Snapshot
		importedAt *time.Time
	)

	err := s.Pool.QueryRow(ctx, `SELECT
		(SELECT COUNT(*) FROM countries),
		(SELECT COUNT(*) FROM borders),
		(SELECT MAX(imported_at) FROM countries)`).Scan(&snap.Countries, &snap.Borders, &importedAt)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot stats: %w", err)
	}

	if importedAt != nil {
		snap.ImportedAt = *importedAt
	}

	return &snap, nil
}
