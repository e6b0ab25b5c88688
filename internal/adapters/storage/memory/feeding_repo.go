package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pet-care-log/internal/domain/feeding"
)

type feedingRepo struct {
	mu        sync.RWMutex
	types     map[string]feeding.FeedType
	schedules map[string]feeding.Schedule
	records   map[string]feeding.Record
}

func NewFeedingRepo() feeding.Repository {
	return &feedingRepo{
		types:     make(map[string]feeding.FeedType),
		schedules: make(map[string]feeding.Schedule),
		records:   make(map[string]feeding.Record),
	}
}

func (r *feedingRepo) CreateFeedType(ctx context.Context, f feeding.FeedType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[f.ID]; exists {
		return errors.New("feed type already exists")
	}
	r.types[f.ID] = f
	return nil
}

func (r *feedingRepo) GetFeedType(ctx context.Context, id string) (feeding.FeedType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.types[id]
	if !ok {
		return feeding.FeedType{}, feeding.ErrFeedTypeNotFound
	}
	return f, nil
}

func (r *feedingRepo) ListFeedTypes(ctx context.Context) ([]feeding.FeedType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feeding.FeedType, 0, len(r.types))
	for _, f := range r.types {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Manufacturer != out[j].Manufacturer {
			return out[i].Manufacturer < out[j].Manufacturer
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out, nil
}

func (r *feedingRepo) CreateSchedule(ctx context.Context, s feeding.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[s.ID]; exists {
		return errors.New("schedule already exists")
	}
	r.schedules[s.ID] = s
	return nil
}

func (r *feedingRepo) UpdateSchedule(ctx context.Context, s feeding.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[s.ID]; !exists {
		return feeding.ErrScheduleNotFound
	}
	r.schedules[s.ID] = s
	return nil
}

func (r *feedingRepo) DeleteSchedule(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[id]; !exists {
		return feeding.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

func (r *feedingRepo) GetSchedule(ctx context.Context, id string) (feeding.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[id]
	if !ok {
		return feeding.Schedule{}, feeding.ErrScheduleNotFound
	}
	return s, nil
}

func (r *feedingRepo) ListSchedules(ctx context.Context) ([]feeding.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feeding.Schedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *feedingRepo) CreateRecord(ctx context.Context, rec feeding.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; exists {
		return errors.New("feeding record already exists")
	}
	rec.FeedType = nil
	r.records[rec.ID] = rec
	return nil
}

func (r *feedingRepo) UpdateRecord(ctx context.Context, rec feeding.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[rec.ID]; !exists {
		return feeding.ErrNotFound
	}
	rec.FeedType = nil
	r.records[rec.ID] = rec
	return nil
}

func (r *feedingRepo) DeleteRecord(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return feeding.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *feedingRepo) GetRecord(ctx context.Context, id string) (feeding.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return feeding.Record{}, feeding.ErrNotFound
	}
	return rec, nil
}

func (r *feedingRepo) ListRecords(ctx context.Context, f feeding.RecordFilter) ([]feeding.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]feeding.Record, 0)
	for _, rec := range r.records {
		if f.From != nil && rec.FeedingTime.Before(*f.From) {
			continue
		}
		if f.To != nil && rec.FeedingTime.After(*f.To) {
			continue
		}
		if f.UnrecordedOnly && rec.Consumed != nil {
			continue
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.FeedingTime.Equal(b.FeedingTime) {
			return a.FeedingTime.After(b.FeedingTime)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
