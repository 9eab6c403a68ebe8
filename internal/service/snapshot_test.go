package service

import (
	"context"
	"errors"
	"testing"

	"github.com/persistorai/borderroute/internal/models"
)

func TestSnapshotService_Import(t *testing.T) {
	tests := []struct {
		name      string
		tableErr  error
		storeErr  error
		wantErr   bool
		wantCalls int
	}{
		{name: "success", wantCalls: 1},
		{name: "upstream error", tableErr: errors.New("503"), wantErr: true, wantCalls: 0},
		{name: "store error", storeErr: errors.New("db down"), wantErr: true, wantCalls: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			source := &mockSnapshotSource{
				table:     borders,
				countries: []models.Country{{Code: "DEU", Name: "Germany"}},
				tableErr:  tc.tableErr,
			}
			store := &mockSnapshotStore{
				replaceSnapshot: func(_ context.Context, countries []models.Country, table map[models.NodeID][]models.NodeID) (*models.Snapshot, error) {
					if tc.storeErr != nil {
						return nil, tc.storeErr
					}
					return &models.Snapshot{Countries: len(table), Borders: 12}, nil
				},
			}

			svc := NewSnapshotService(source, store, quietLogger())

			snap, err := svc.Import(context.Background())
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}

			if len(store.calls) != tc.wantCalls {
				t.Errorf("store calls = %v, want %d", store.calls, tc.wantCalls)
			}

			if !tc.wantErr && snap.Countries != len(borders) {
				t.Errorf("snapshot = %+v", snap)
			}
		})
	}
}

func TestSnapshotService_Stats(t *testing.T) {
	store := &mockSnapshotStore{
		stats: func(_ context.Context) (*models.Snapshot, error) {
			return &models.Snapshot{Countries: 250, Borders: 640}, nil
		},
	}

	svc := NewSnapshotService(&mockSnapshotSource{}, store, quietLogger())

	snap, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Countries != 250 || store.calls[0] != "Stats" {
		t.Errorf("snapshot = %+v, calls = %v", snap, store.calls)
	}
}
