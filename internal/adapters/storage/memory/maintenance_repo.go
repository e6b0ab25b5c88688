package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-care-log/internal/domain/maintenance"
)

type maintenanceRepo struct {
	mu   sync.RWMutex
	byID map[string]maintenance.Record
}

func NewMaintenanceRepo() maintenance.Repository {
	return &maintenanceRepo{byID: make(map[string]maintenance.Record)}
}

func (r *maintenanceRepo) Create(ctx context.Context, rec maintenance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("maintenance record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *maintenanceRepo) Update(ctx context.Context, rec maintenance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rec.ID]; !exists {
		return maintenance.ErrNotFound
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *maintenanceRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return maintenance.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *maintenanceRepo) GetByID(ctx context.Context, id string) (maintenance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return maintenance.Record{}, maintenance.ErrNotFound
	}
	return rec, nil
}

func (r *maintenanceRepo) List(ctx context.Context, typ maintenance.Type) ([]maintenance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]maintenance.Record, 0, len(r.byID))
	for _, rec := range r.byID {
		if typ != "" && rec.Type != typ {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PerformedAt.Equal(out[j].PerformedAt) {
			return out[i].PerformedAt.After(out[j].PerformedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
