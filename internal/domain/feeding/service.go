package feeding

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService recibe la zona local del usuario; los horarios HH:mm se interpretan en ella.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// -------------------------
// Feed types
// -------------------------

type CreateFeedTypeInput struct {
	Manufacturer string
	ProductName  string
}

func (s *Service) CreateFeedType(ctx context.Context, in CreateFeedTypeInput) (FeedType, error) {
	if err := ValidateFeedTypeInput(in.Manufacturer, in.ProductName); err != nil {
		return FeedType{}, err
	}

	f := FeedType{
		ID:           uuid.NewString(),
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		ProductName:  strings.TrimSpace(in.ProductName),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateFeedType(ctx, f); err != nil {
		return FeedType{}, err
	}
	return f, nil
}

func (s *Service) ListFeedTypes(ctx context.Context) ([]FeedType, error) {
	return s.repo.ListFeedTypes(ctx)
}

// -------------------------
// Schedules
// -------------------------

func (s *Service) CreateSchedule(ctx context.Context, hhmm string) (Schedule, error) {
	if err := ValidateScheduleTime(hhmm); err != nil {
		return Schedule{}, err
	}

	sc := Schedule{
		ID:        uuid.NewString(),
		Time:      hhmm,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateSchedule(ctx, sc); err != nil {
		return Schedule{}, err
	}
	return sc, nil
}

func (s *Service) UpdateSchedule(ctx context.Context, id, hhmm string) (Schedule, error) {
	if err := ValidateScheduleTime(hhmm); err != nil {
		return Schedule{}, err
	}

	sc, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	sc.Time = hhmm
	if err := s.repo.UpdateSchedule(ctx, sc); err != nil {
		return Schedule{}, err
	}
	return sc, nil
}

// ToggleSchedule invierte IsActive.
func (s *Service) ToggleSchedule(ctx context.Context, id string) (Schedule, error) {
	sc, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return Schedule{}, err
	}
	sc.IsActive = !sc.IsActive
	if err := s.repo.UpdateSchedule(ctx, sc); err != nil {
		return Schedule{}, err
	}
	return sc, nil
}

func (s *Service) DeleteSchedule(ctx context.Context, id string) error {
	if _, err := s.repo.GetSchedule(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteSchedule(ctx, id)
}

func (s *Service) ListSchedules(ctx context.Context, activeOnly bool) ([]Schedule, error) {
	all, err := s.repo.ListSchedules(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return all, nil
	}

	out := make([]Schedule, 0, len(all))
	for _, sc := range all {
		if sc.IsActive {
			out = append(out, sc)
		}
	}
	return out, nil
}

// NextScheduledTime: primer horario activo estrictamente posterior a la hora local actual;
// si ya pasaron todos, el primero (mañana). ErrNoActiveSchedules si no hay activos.
func (s *Service) NextScheduledTime(ctx context.Context) (string, error) {
	active, err := s.ListSchedules(ctx, true)
	if err != nil {
		return "", err
	}
	if len(active) == 0 {
		return "", ErrNoActiveSchedules
	}
	sortByTime(active)

	current := s.now().In(s.loc).Format("15:04")
	for _, sc := range active {
		if sc.Time > current {
			return sc.Time, nil
		}
	}
	return active[0].Time, nil
}

// NextUnrecordedTime: primer horario activo de hoy (local) sin registro a esa hora exacta.
// ErrNoActiveSchedules si no hay activos o si todos los de hoy ya tienen registro.
func (s *Service) NextUnrecordedTime(ctx context.Context) (string, error) {
	active, err := s.ListSchedules(ctx, true)
	if err != nil {
		return "", err
	}
	if len(active) == 0 {
		return "", ErrNoActiveSchedules
	}
	sortByTime(active)

	local := s.now().In(s.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	from, to := dayStart.UTC(), dayEnd.UTC()
	today, err := s.repo.ListRecords(ctx, RecordFilter{From: &from, To: &to})
	if err != nil {
		return "", err
	}

	recorded := make(map[string]struct{}, len(today))
	for _, r := range today {
		recorded[r.FeedingTime.In(s.loc).Format("15:04")] = struct{}{}
	}

	for _, sc := range active {
		if _, ok := recorded[sc.Time]; !ok {
			return sc.Time, nil
		}
	}
	return "", ErrNoActiveSchedules
}

func sortByTime(items []Schedule) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Time < items[j].Time })
}

// -------------------------
// Records
// -------------------------

type RecordInput struct {
	FeedTypeID  string
	FeedingTime time.Time
}

func (s *Service) CreateRecord(ctx context.Context, in RecordInput) (Record, error) {
	if err := ValidateRecordInput(in.FeedTypeID, in.FeedingTime); err != nil {
		return Record{}, err
	}
	ft, err := s.repo.GetFeedType(ctx, in.FeedTypeID)
	if err != nil {
		return Record{}, err
	}

	r := Record{
		ID:          uuid.NewString(),
		FeedTypeID:  ft.ID,
		FeedingTime: in.FeedingTime.UTC(),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.CreateRecord(ctx, r); err != nil {
		return Record{}, err
	}
	r.FeedType = &ft
	return r, nil
}

// UpdateRecord reemplaza tipo y hora; el consumo no se toca.
func (s *Service) UpdateRecord(ctx context.Context, id string, in RecordInput) (Record, error) {
	if err := ValidateRecordInput(in.FeedTypeID, in.FeedingTime); err != nil {
		return Record{}, err
	}
	ft, err := s.repo.GetFeedType(ctx, in.FeedTypeID)
	if err != nil {
		return Record{}, err
	}
	r, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return Record{}, err
	}

	r.FeedTypeID = ft.ID
	r.FeedingTime = in.FeedingTime.UTC()
	if err := s.repo.UpdateRecord(ctx, r); err != nil {
		return Record{}, err
	}
	r.FeedType = &ft
	return r, nil
}

// SetConsumption acepta nil para volver a "sin registrar" (ciclo manual false -> nil).
func (s *Service) SetConsumption(ctx context.Context, id string, consumed *bool) (Record, error) {
	r, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if consumed != nil {
		v := *consumed
		consumed = &v
	}
	r.Consumed = consumed
	if err := s.repo.UpdateRecord(ctx, r); err != nil {
		return Record{}, err
	}
	return s.withFeedType(ctx, r), nil
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	if _, err := s.repo.GetRecord(ctx, id); err != nil {
		return err
	}
	return s.repo.DeleteRecord(ctx, id)
}

func (s *Service) GetRecord(ctx context.Context, id string) (Record, error) {
	r, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return s.withFeedType(ctx, r), nil
}

// ListRecords con rango inclusivo; nil = sin límite de ese lado. Más reciente primero.
func (s *Service) ListRecords(ctx context.Context, from, to *time.Time) ([]Record, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, ErrInvalidInput
	}
	items, err := s.repo.ListRecords(ctx, RecordFilter{From: from, To: to})
	if err != nil {
		return nil, err
	}
	return s.withFeedTypes(ctx, items)
}

// LatestUnrecorded devuelve el registro sin consumo con FeedingTime máximo.
// Se deriva siempre de la consulta; nunca se persiste.
func (s *Service) LatestUnrecorded(ctx context.Context) (Record, bool, error) {
	items, err := s.repo.ListRecords(ctx, RecordFilter{UnrecordedOnly: true, Limit: 1})
	if err != nil {
		return Record{}, false, err
	}
	if len(items) == 0 {
		return Record{}, false, nil
	}
	return s.withFeedType(ctx, items[0]), true, nil
}

func (s *Service) withFeedType(ctx context.Context, r Record) Record {
	ft, err := s.repo.GetFeedType(ctx, r.FeedTypeID)
	if err == nil {
		r.FeedType = &ft
	}
	return r
}

func (s *Service) withFeedTypes(ctx context.Context, items []Record) ([]Record, error) {
	types, err := s.repo.ListFeedTypes(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]FeedType, len(types))
	for _, ft := range types {
		byID[ft.ID] = ft
	}

	for i := range items {
		if ft, ok := byID[items[i].FeedTypeID]; ok {
			items[i].FeedType = &ft
		}
	}
	return items, nil
}

// IsNotFound agrupa los not-found del módulo (registro, tipo, horario).
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrFeedTypeNotFound) || errors.Is(err, ErrScheduleNotFound)
}
