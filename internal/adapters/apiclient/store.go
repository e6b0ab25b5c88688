// Package apiclient implementa calendar.Store contra la API HTTP del server.
package apiclient

import (
	"context"
	"net/url"
	"time"

	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/platform/httpclient"
)

type Store struct {
	http *httpclient.Client
}

var _ calendar.Store = (*Store)(nil)

func New(c *httpclient.Client) *Store {
	return &Store{http: c}
}

func rangeQuery(start, end time.Time) url.Values {
	return url.Values{
		"start": {start.UTC().Format(time.RFC3339Nano)},
		"end":   {end.UTC().Format(time.RFC3339Nano)},
	}
}

func escape(id string) string { return url.PathEscape(id) }

// -------------------------
// Feeding
// -------------------------

func (s *Store) FeedingRecordsInRange(ctx context.Context, start, end time.Time) ([]feeding.Record, error) {
	var out []recordDTO
	if err := s.http.Get(ctx, "/feeding-records", rangeQuery(start, end), &out); err != nil {
		return nil, err
	}
	return mapAll(out, recordDTO.model), nil
}

func (s *Store) LatestUnconsumedFeedingRecord(ctx context.Context) (*feeding.Record, error) {
	var out *recordDTO
	if err := s.http.Get(ctx, "/feeding-records/latest-unconsumed", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	r := out.model()
	return &r, nil
}

func (s *Store) CreateFeedingRecord(ctx context.Context, feedTypeID string, at time.Time) (feeding.Record, error) {
	var out recordDTO
	in := recordRequest{FeedTypeID: feedTypeID, FeedingTime: at.UTC().Format(time.RFC3339)}
	if err := s.http.Post(ctx, "/feeding-records", in, &out); err != nil {
		return feeding.Record{}, err
	}
	return out.model(), nil
}

func (s *Store) UpdateFeedingConsumption(ctx context.Context, id string, consumed *bool) (feeding.Record, error) {
	var out recordDTO
	if err := s.http.Put(ctx, "/feeding-records/"+escape(id)+"/consumption", consumptionRequest{Consumed: consumed}, &out); err != nil {
		return feeding.Record{}, err
	}
	return out.model(), nil
}

func (s *Store) UpdateFeedingRecord(ctx context.Context, id, feedTypeID string, at time.Time) (feeding.Record, error) {
	var out recordDTO
	in := recordRequest{FeedTypeID: feedTypeID, FeedingTime: at.UTC().Format(time.RFC3339)}
	if err := s.http.Put(ctx, "/feeding-records/"+escape(id), in, &out); err != nil {
		return feeding.Record{}, err
	}
	return out.model(), nil
}

func (s *Store) DeleteFeedingRecord(ctx context.Context, id string) error {
	return s.http.Delete(ctx, "/feeding-records/"+escape(id))
}

func (s *Store) AllFeedTypes(ctx context.Context) ([]feeding.FeedType, error) {
	var out []feedTypeDTO
	if err := s.http.Get(ctx, "/feed-types", nil, &out); err != nil {
		return nil, err
	}
	return mapAll(out, feedTypeDTO.model), nil
}

func (s *Store) CreateFeedType(ctx context.Context, manufacturer, productName string) (feeding.FeedType, error) {
	var out feedTypeDTO
	in := feedTypeRequest{Manufacturer: manufacturer, ProductName: productName}
	if err := s.http.Post(ctx, "/feed-types", in, &out); err != nil {
		return feeding.FeedType{}, err
	}
	return out.model(), nil
}

// -------------------------
// Schedules
// -------------------------

func (s *Store) ListSchedules(ctx context.Context) ([]feeding.Schedule, error) {
	var out []scheduleDTO
	if err := s.http.Get(ctx, "/feeding-schedules", nil, &out); err != nil {
		return nil, err
	}
	return mapAll(out, scheduleDTO.model), nil
}

func (s *Store) CreateSchedule(ctx context.Context, hhmm string) (feeding.Schedule, error) {
	var out scheduleDTO
	if err := s.http.Post(ctx, "/feeding-schedules", scheduleRequest{Time: hhmm}, &out); err != nil {
		return feeding.Schedule{}, err
	}
	return out.model(), nil
}

func (s *Store) UpdateSchedule(ctx context.Context, id, hhmm string) (feeding.Schedule, error) {
	var out scheduleDTO
	if err := s.http.Put(ctx, "/feeding-schedules/"+escape(id), scheduleRequest{Time: hhmm}, &out); err != nil {
		return feeding.Schedule{}, err
	}
	return out.model(), nil
}

func (s *Store) ToggleSchedule(ctx context.Context, id string) (feeding.Schedule, error) {
	var out scheduleDTO
	if err := s.http.Patch(ctx, "/feeding-schedules/"+escape(id)+"/toggle", nil, &out); err != nil {
		return feeding.Schedule{}, err
	}
	return out.model(), nil
}

func (s *Store) DeleteSchedule(ctx context.Context, id string) error {
	return s.http.Delete(ctx, "/feeding-schedules/"+escape(id))
}

func (s *Store) NextUnrecordedScheduleTime(ctx context.Context) (string, bool, error) {
	var out nextTimeDTO
	if err := s.http.Get(ctx, "/feeding-schedules/next-unrecorded", nil, &out); err != nil {
		return "", false, err
	}
	if out.NextTime == nil {
		return "", false, nil
	}
	return *out.NextTime, true, nil
}

// -------------------------
// Maintenance
// -------------------------

func (s *Store) AllMaintenanceRecords(ctx context.Context) ([]maintenance.Record, error) {
	var out []maintenanceDTO
	if err := s.http.Get(ctx, "/maintenance-records", nil, &out); err != nil {
		return nil, err
	}
	return mapAll(out, maintenanceDTO.model), nil
}

func (s *Store) CreateMaintenanceRecord(ctx context.Context, typ maintenance.Type, at time.Time, notes string) (maintenance.Record, error) {
	var out maintenanceDTO
	in := maintenanceRequest{Type: string(typ), PerformedAt: at.UTC().Format(time.RFC3339), Notes: notes}
	if err := s.http.Post(ctx, "/maintenance-records", in, &out); err != nil {
		return maintenance.Record{}, err
	}
	return out.model(), nil
}

func (s *Store) UpdateMaintenanceRecord(ctx context.Context, id string, typ maintenance.Type, at time.Time, notes string) (maintenance.Record, error) {
	var out maintenanceDTO
	in := maintenanceRequest{Type: string(typ), PerformedAt: at.UTC().Format(time.RFC3339), Notes: notes}
	if err := s.http.Put(ctx, "/maintenance-records/"+escape(id), in, &out); err != nil {
		return maintenance.Record{}, err
	}
	return out.model(), nil
}

func (s *Store) DeleteMaintenanceRecord(ctx context.Context, id string) error {
	return s.http.Delete(ctx, "/maintenance-records/"+escape(id))
}

// -------------------------
// Pets & weights
// -------------------------

func (s *Store) ListPets(ctx context.Context) ([]pets.Pet, error) {
	var out []petDTO
	if err := s.http.Get(ctx, "/pets", nil, &out); err != nil {
		return nil, err
	}
	return mapAll(out, petDTO.model), nil
}

func (s *Store) CreatePet(ctx context.Context, name string) (pets.Pet, error) {
	var out petDTO
	if err := s.http.Post(ctx, "/pets", petRequest{Name: name}, &out); err != nil {
		return pets.Pet{}, err
	}
	return out.model(), nil
}

func (s *Store) UpdatePet(ctx context.Context, id, name string) (pets.Pet, error) {
	var out petDTO
	if err := s.http.Put(ctx, "/pets/"+escape(id), petRequest{Name: name}, &out); err != nil {
		return pets.Pet{}, err
	}
	return out.model(), nil
}

func (s *Store) DeletePet(ctx context.Context, id string) error {
	return s.http.Delete(ctx, "/pets/"+escape(id))
}

func (s *Store) WeightRecordsInRange(ctx context.Context, start, end time.Time) ([]pets.WeightRecord, error) {
	var out []weightDTO
	if err := s.http.Get(ctx, "/weight-records", rangeQuery(start, end), &out); err != nil {
		return nil, err
	}

	items := make([]pets.WeightRecord, 0, len(out))
	for _, d := range out {
		w, err := d.model()
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, nil
}

func (s *Store) CreateWeightRecord(ctx context.Context, petID string, weight float64, measured time.Time) (pets.WeightRecord, error) {
	var out weightDTO
	in := weightRequest{Weight: weight, MeasuredDate: measured.Format("2006-01-02")}
	if err := s.http.Post(ctx, "/pets/"+escape(petID)+"/weight-records", in, &out); err != nil {
		return pets.WeightRecord{}, err
	}
	return out.model()
}
