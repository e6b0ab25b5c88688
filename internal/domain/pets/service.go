package pets

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService recibe la zona local: "hoy" para validar fechas de medición se calcula en ella.
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

func (s *Service) Create(ctx context.Context, name string) (Pet, error) {
	if err := ValidateName(name); err != nil {
		return Pet{}, err
	}

	now := s.now().UTC()
	p := Pet{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Rename(ctx context.Context, id, name string) (Pet, error) {
	if err := ValidateName(name); err != nil {
		return Pet{}, err
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	p.Name = strings.TrimSpace(name)
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota y sus pesos.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

type WeightInput struct {
	PetID        string
	Weight       float64
	MeasuredDate time.Time
}

func (s *Service) RecordWeight(ctx context.Context, in WeightInput) (WeightRecord, error) {
	if err := ValidateWeight(in.Weight, in.MeasuredDate, s.Today()); err != nil {
		return WeightRecord{}, err
	}
	if _, err := s.repo.GetByID(ctx, in.PetID); err != nil {
		return WeightRecord{}, err
	}

	w := WeightRecord{
		ID:           uuid.NewString(),
		PetID:        in.PetID,
		Weight:       in.Weight,
		MeasuredDate: DateOf(in.MeasuredDate),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateWeight(ctx, w); err != nil {
		return WeightRecord{}, err
	}
	return w, nil
}

// ListWeights de una mascota, más reciente primero, filtrado por período.
func (s *Service) ListWeights(ctx context.Context, petID string, period Period) ([]WeightRecord, error) {
	if period != "" && !period.Valid() {
		return nil, ErrInvalidInput
	}
	if _, err := s.repo.GetByID(ctx, petID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListWeights(ctx, WeightFilter{PetID: petID})
	if err != nil {
		return nil, err
	}
	return FilterByPeriod(items, period, s.Today()), nil
}

func (s *Service) LatestWeight(ctx context.Context, petID string) (WeightRecord, error) {
	if _, err := s.repo.GetByID(ctx, petID); err != nil {
		return WeightRecord{}, err
	}

	items, err := s.repo.ListWeights(ctx, WeightFilter{PetID: petID, Limit: 1})
	if err != nil {
		return WeightRecord{}, err
	}
	if len(items) == 0 {
		return WeightRecord{}, ErrNoWeight
	}
	return items[0], nil
}

// WeightsInRange de todas las mascotas, por MeasuredDate. Los límites se truncan a fecha civil UTC.
func (s *Service) WeightsInRange(ctx context.Context, from, to *time.Time) ([]WeightRecord, error) {
	f := WeightFilter{}
	if from != nil {
		d := DateOf(from.UTC())
		f.From = &d
	}
	if to != nil {
		d := DateOf(to.UTC())
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListWeights(ctx, f)
}

// Today es la fecha civil de hoy en la zona local del servicio.
func (s *Service) Today() time.Time {
	return DateOf(s.now().In(s.loc))
}
