package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-care-log/internal/domain/pets"
)

type petRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	weights map[string]pets.WeightRecord
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:    make(map[string]pets.Pet),
		weights: make(map[string]pets.WeightRecord),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

// Delete quita la mascota y sus pesos en la misma sección crítica.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	for wid, w := range r.weights {
		if w.PetID == id {
			delete(r.weights, wid)
		}
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *petRepo) CreateWeight(ctx context.Context, w pets.WeightRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[w.PetID]; !ok {
		return pets.ErrNotFound
	}
	if _, exists := r.weights[w.ID]; exists {
		return errors.New("weight record already exists")
	}
	r.weights[w.ID] = w
	return nil
}

func (r *petRepo) ListWeights(ctx context.Context, f pets.WeightFilter) ([]pets.WeightRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.WeightRecord, 0)
	for _, w := range r.weights {
		if f.PetID != "" && w.PetID != f.PetID {
			continue
		}
		if f.From != nil && w.MeasuredDate.Before(*f.From) {
			continue
		}
		if f.To != nil && w.MeasuredDate.After(*f.To) {
			continue
		}
		out = append(out, w)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].MeasuredDate.Equal(out[j].MeasuredDate) {
			return out[i].MeasuredDate.After(out[j].MeasuredDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
