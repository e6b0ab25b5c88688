package maintenance

import "context"

type Repository interface {
	Create(ctx context.Context, r Record) error
	Update(ctx context.Context, r Record) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Record, error)
	// List ordena por PerformedAt desc. typ vacío = todos.
	List(ctx context.Context, typ Type) ([]Record, error)
}
