// Package local implementa calendar.Store llamando a los services en el mismo proceso.
// Lo usan el endpoint /calendar del server y el CLI con --db.
package local

import (
	"context"
	"errors"
	"time"

	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

type Store struct {
	feeding     *feeding.Service
	pets        *pets.Service
	maintenance *maintenance.Service
}

var _ calendar.Store = (*Store)(nil)

func New(f *feeding.Service, p *pets.Service, m *maintenance.Service) *Store {
	return &Store{feeding: f, pets: p, maintenance: m}
}

// -------------------------
// Feeding
// -------------------------

func (s *Store) FeedingRecordsInRange(ctx context.Context, start, end time.Time) ([]feeding.Record, error) {
	return s.feeding.ListRecords(ctx, &start, &end)
}

func (s *Store) LatestUnconsumedFeedingRecord(ctx context.Context) (*feeding.Record, error) {
	r, ok, err := s.feeding.LatestUnrecorded(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateFeedingRecord(ctx context.Context, feedTypeID string, at time.Time) (feeding.Record, error) {
	return s.feeding.CreateRecord(ctx, feeding.RecordInput{FeedTypeID: feedTypeID, FeedingTime: at})
}

func (s *Store) UpdateFeedingConsumption(ctx context.Context, id string, consumed *bool) (feeding.Record, error) {
	return s.feeding.SetConsumption(ctx, id, consumed)
}

func (s *Store) UpdateFeedingRecord(ctx context.Context, id, feedTypeID string, at time.Time) (feeding.Record, error) {
	return s.feeding.UpdateRecord(ctx, id, feeding.RecordInput{FeedTypeID: feedTypeID, FeedingTime: at})
}

func (s *Store) DeleteFeedingRecord(ctx context.Context, id string) error {
	return s.feeding.DeleteRecord(ctx, id)
}

func (s *Store) AllFeedTypes(ctx context.Context) ([]feeding.FeedType, error) {
	return s.feeding.ListFeedTypes(ctx)
}

func (s *Store) CreateFeedType(ctx context.Context, manufacturer, productName string) (feeding.FeedType, error) {
	return s.feeding.CreateFeedType(ctx, feeding.CreateFeedTypeInput{Manufacturer: manufacturer, ProductName: productName})
}

// -------------------------
// Schedules
// -------------------------

func (s *Store) ListSchedules(ctx context.Context) ([]feeding.Schedule, error) {
	return s.feeding.ListSchedules(ctx, false)
}

func (s *Store) CreateSchedule(ctx context.Context, hhmm string) (feeding.Schedule, error) {
	return s.feeding.CreateSchedule(ctx, hhmm)
}

func (s *Store) UpdateSchedule(ctx context.Context, id, hhmm string) (feeding.Schedule, error) {
	return s.feeding.UpdateSchedule(ctx, id, hhmm)
}

func (s *Store) ToggleSchedule(ctx context.Context, id string) (feeding.Schedule, error) {
	return s.feeding.ToggleSchedule(ctx, id)
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	return s.feeding.DeleteSchedule(ctx, id)
}

func (s *Store) NextUnrecordedScheduleTime(ctx context.Context) (string, bool, error) {
	hhmm, err := s.feeding.NextUnrecordedTime(ctx)
	if errors.Is(err, feeding.ErrNoActiveSchedules) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return hhmm, true, nil
}

// -------------------------
// Maintenance
// -------------------------

func (s *Store) AllMaintenanceRecords(ctx context.Context) ([]maintenance.Record, error) {
	return s.maintenance.List(ctx, "")
}

func (s *Store) CreateMaintenanceRecord(ctx context.Context, typ maintenance.Type, at time.Time, notes string) (maintenance.Record, error) {
	return s.maintenance.Create(ctx, maintenance.Input{Type: typ, PerformedAt: at, Notes: notes})
}

func (s *Store) UpdateMaintenanceRecord(ctx context.Context, id string, typ maintenance.Type, at time.Time, notes string) (maintenance.Record, error) {
	return s.maintenance.Update(ctx, id, maintenance.Input{Type: typ, PerformedAt: at, Notes: notes})
}

func (s *Store) DeleteMaintenanceRecord(ctx context.Context, id string) error {
	return s.maintenance.Delete(ctx, id)
}

// -------------------------
// Pets & weights
// -------------------------

func (s *Store) ListPets(ctx context.Context) ([]pets.Pet, error) {
	return s.pets.List(ctx)
}

func (s *Store) CreatePet(ctx context.Context, name string) (pets.Pet, error) {
	return s.pets.Create(ctx, name)
}

func (s *Store) UpdatePet(ctx context.Context, id, name string) (pets.Pet, error) {
	return s.pets.Rename(ctx, id, name)
}

func (s *Store) DeletePet(ctx context.Context, id string) error {
	return s.pets.Delete(ctx, id)
}

func (s *Store) WeightRecordsInRange(ctx context.Context, start, end time.Time) ([]pets.WeightRecord, error) {
	return s.pets.WeightsInRange(ctx, &start, &end)
}

func (s *Store) CreateWeightRecord(ctx context.Context, petID string, weight float64, measured time.Time) (pets.WeightRecord, error) {
	return s.pets.RecordWeight(ctx, pets.WeightInput{PetID: petID, Weight: weight, MeasuredDate: measured})
}
