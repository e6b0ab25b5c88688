package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	// Delete elimina la mascota y en cascada sus WeightRecord.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// List ordena por CreatedAt asc.
	List(ctx context.Context) ([]Pet, error)

	CreateWeight(ctx context.Context, w WeightRecord) error
	// ListWeights ordena por MeasuredDate desc, CreatedAt desc.
	ListWeights(ctx context.Context, filter WeightFilter) ([]WeightRecord, error)
}
