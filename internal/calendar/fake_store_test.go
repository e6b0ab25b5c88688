package calendar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

var errBoom = errors.New("boom")

// fakeStore es un Store en memoria con fallos inyectables y conteo de llamadas.
type fakeStore struct {
	mu sync.Mutex

	feeding     []feeding.Record
	feedTypes   []feeding.FeedType
	schedules   []feeding.Schedule
	maintenance []maintenance.Record
	pets        []pets.Pet
	weights     []pets.WeightRecord

	nextUnrecorded string

	fail  map[string]error
	calls map[string]int
	// block, si está, se llama al inicio de FeedingRecordsInRange.
	block func(start time.Time)

	seq int
}

func newFakeStore() *fakeStore {
	return &fakeStore{fail: map[string]error{}, calls: map[string]int{}}
}

func (f *fakeStore) enter(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeStore) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) newID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeStore) FeedingRecordsInRange(ctx context.Context, start, end time.Time) ([]feeding.Record, error) {
	if f.block != nil {
		f.block(start)
	}
	if err := f.enter("FeedingRecordsInRange"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []feeding.Record{}
	for _, r := range f.feeding {
		if !r.FeedingTime.Before(start) && !r.FeedingTime.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) LatestUnconsumedFeedingRecord(ctx context.Context) (*feeding.Record, error) {
	if err := f.enter("LatestUnconsumedFeedingRecord"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := FindLatestUnconsumed(f.feeding)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeStore) CreateFeedingRecord(ctx context.Context, feedTypeID string, at time.Time) (feeding.Record, error) {
	if err := f.enter("CreateFeedingRecord"); err != nil {
		return feeding.Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r := feeding.Record{ID: f.newID("feed"), FeedTypeID: feedTypeID, FeedingTime: at, CreatedAt: at}
	f.feeding = append(f.feeding, r)
	return r, nil
}

func (f *fakeStore) UpdateFeedingConsumption(ctx context.Context, id string, consumed *bool) (feeding.Record, error) {
	if err := f.enter("UpdateFeedingConsumption"); err != nil {
		return feeding.Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.feeding {
		if r.ID == id {
			f.feeding[i].Consumed = consumed
			return f.feeding[i], nil
		}
	}
	return feeding.Record{}, feeding.ErrNotFound
}

func (f *fakeStore) UpdateFeedingRecord(ctx context.Context, id, feedTypeID string, at time.Time) (feeding.Record, error) {
	if err := f.enter("UpdateFeedingRecord"); err != nil {
		return feeding.Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.feeding {
		if r.ID == id {
			f.feeding[i].FeedTypeID = feedTypeID
			f.feeding[i].FeedingTime = at
			return f.feeding[i], nil
		}
	}
	return feeding.Record{}, feeding.ErrNotFound
}

func (f *fakeStore) DeleteFeedingRecord(ctx context.Context, id string) error {
	if err := f.enter("DeleteFeedingRecord"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeding = applyDelete(f.feeding, id, feedingID)
	return nil
}

func (f *fakeStore) AllFeedTypes(ctx context.Context) ([]feeding.FeedType, error) {
	if err := f.enter("AllFeedTypes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]feeding.FeedType(nil), f.feedTypes...), nil
}

func (f *fakeStore) CreateFeedType(ctx context.Context, manufacturer, productName string) (feeding.FeedType, error) {
	if err := f.enter("CreateFeedType"); err != nil {
		return feeding.FeedType{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ft := feeding.FeedType{ID: f.newID("type"), Manufacturer: manufacturer, ProductName: productName}
	f.feedTypes = append(f.feedTypes, ft)
	return ft, nil
}

func (f *fakeStore) ListSchedules(ctx context.Context) ([]feeding.Schedule, error) {
	if err := f.enter("ListSchedules"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]feeding.Schedule(nil), f.schedules...)
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (f *fakeStore) CreateSchedule(ctx context.Context, hhmm string) (feeding.Schedule, error) {
	if err := f.enter("CreateSchedule"); err != nil {
		return feeding.Schedule{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sc := feeding.Schedule{ID: f.newID("sched"), Time: hhmm, IsActive: true}
	f.schedules = append(f.schedules, sc)
	return sc, nil
}

func (f *fakeStore) UpdateSchedule(ctx context.Context, id, hhmm string) (feeding.Schedule, error) {
	if err := f.enter("UpdateSchedule"); err != nil {
		return feeding.Schedule{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, sc := range f.schedules {
		if sc.ID == id {
			f.schedules[i].Time = hhmm
			return f.schedules[i], nil
		}
	}
	return feeding.Schedule{}, feeding.ErrScheduleNotFound
}

func (f *fakeStore) ToggleSchedule(ctx context.Context, id string) (feeding.Schedule, error) {
	if err := f.enter("ToggleSchedule"); err != nil {
		return feeding.Schedule{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, sc := range f.schedules {
		if sc.ID == id {
			f.schedules[i].IsActive = !sc.IsActive
			return f.schedules[i], nil
		}
	}
	return feeding.Schedule{}, feeding.ErrScheduleNotFound
}

func (f *fakeStore) DeleteSchedule(ctx context.Context, id string) error {
	if err := f.enter("DeleteSchedule"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedules = applyDelete(f.schedules, id, scheduleID)
	return nil
}

func (f *fakeStore) NextUnrecordedScheduleTime(ctx context.Context) (string, bool, error) {
	if err := f.enter("NextUnrecordedScheduleTime"); err != nil {
		return "", false, err
	}
	return f.nextUnrecorded, f.nextUnrecorded != "", nil
}

func (f *fakeStore) AllMaintenanceRecords(ctx context.Context) ([]maintenance.Record, error) {
	if err := f.enter("AllMaintenanceRecords"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]maintenance.Record(nil), f.maintenance...), nil
}

func (f *fakeStore) CreateMaintenanceRecord(ctx context.Context, typ maintenance.Type, at time.Time, notes string) (maintenance.Record, error) {
	if err := f.enter("CreateMaintenanceRecord"); err != nil {
		return maintenance.Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := maintenance.Record{ID: f.newID("maint"), Type: typ, PerformedAt: at, Notes: notes}
	f.maintenance = append(f.maintenance, m)
	return m, nil
}

func (f *fakeStore) UpdateMaintenanceRecord(ctx context.Context, id string, typ maintenance.Type, at time.Time, notes string) (maintenance.Record, error) {
	if err := f.enter("UpdateMaintenanceRecord"); err != nil {
		return maintenance.Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.maintenance {
		if m.ID == id {
			f.maintenance[i] = maintenance.Record{ID: id, Type: typ, PerformedAt: at, Notes: notes, CreatedAt: m.CreatedAt}
			return f.maintenance[i], nil
		}
	}
	return maintenance.Record{}, maintenance.ErrNotFound
}

func (f *fakeStore) DeleteMaintenanceRecord(ctx context.Context, id string) error {
	if err := f.enter("DeleteMaintenanceRecord"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maintenance = applyDelete(f.maintenance, id, maintenanceID)
	return nil
}

func (f *fakeStore) ListPets(ctx context.Context) ([]pets.Pet, error) {
	if err := f.enter("ListPets"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pets.Pet(nil), f.pets...), nil
}

func (f *fakeStore) CreatePet(ctx context.Context, name string) (pets.Pet, error) {
	if err := f.enter("CreatePet"); err != nil {
		return pets.Pet{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := pets.Pet{ID: f.newID("pet"), Name: name}
	f.pets = append(f.pets, p)
	return p, nil
}

func (f *fakeStore) UpdatePet(ctx context.Context, id, name string) (pets.Pet, error) {
	if err := f.enter("UpdatePet"); err != nil {
		return pets.Pet{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.pets {
		if p.ID == id {
			f.pets[i].Name = name
			return f.pets[i], nil
		}
	}
	return pets.Pet{}, pets.ErrNotFound
}

func (f *fakeStore) DeletePet(ctx context.Context, id string) error {
	if err := f.enter("DeletePet"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pets = applyDelete(f.pets, id, petID)
	f.weights = applyDeleteWhere(f.weights, func(w pets.WeightRecord) bool { return w.PetID == id })
	return nil
}

func (f *fakeStore) WeightRecordsInRange(ctx context.Context, start, end time.Time) ([]pets.WeightRecord, error) {
	if err := f.enter("WeightRecordsInRange"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	from, to := pets.DateOf(start), pets.DateOf(end)
	out := []pets.WeightRecord{}
	for _, w := range f.weights {
		if !w.MeasuredDate.Before(from) && !w.MeasuredDate.After(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateWeightRecord(ctx context.Context, petID string, weight float64, measured time.Time) (pets.WeightRecord, error) {
	if err := f.enter("CreateWeightRecord"); err != nil {
		return pets.WeightRecord{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	w := pets.WeightRecord{ID: f.newID("weight"), PetID: petID, Weight: weight, MeasuredDate: measured}
	f.weights = append(f.weights, w)
	return w, nil
}
