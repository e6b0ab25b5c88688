package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Type        Type
	PerformedAt time.Time
	Notes       string
}

func (s *Service) Create(ctx context.Context, in Input) (Record, error) {
	if err := ValidateInput(in.Type, in.PerformedAt, s.now()); err != nil {
		return Record{}, err
	}

	r := Record{
		ID:          uuid.NewString(),
		Type:        in.Type,
		PerformedAt: in.PerformedAt.UTC(),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) Update(ctx context.Context, id string, in Input) (Record, error) {
	if err := ValidateInput(in.Type, in.PerformedAt, s.now()); err != nil {
		return Record{}, err
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	r.Type = in.Type
	r.PerformedAt = in.PerformedAt.UTC()
	r.Notes = strings.TrimSpace(in.Notes)

	if err := s.repo.Update(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.repo.GetByID(ctx, id)
}

// List devuelve todo el historial (el cliente filtra por rango). typ vacío = todos.
func (s *Service) List(ctx context.Context, typ Type) ([]Record, error) {
	if typ != "" && !typ.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, typ)
}
