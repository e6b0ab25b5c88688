package calendar

import (
	"context"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

// Store es el conjunto de operaciones remotas que consume la session.
// Las implementaciones (HTTP, in-process) devuelven instantes en UTC.
type Store interface {
	FeedingStore
	ScheduleStore
	MaintenanceStore
	PetStore
}

type FeedingStore interface {
	FeedingRecordsInRange(ctx context.Context, start, end time.Time) ([]feeding.Record, error)
	// LatestUnconsumedFeedingRecord devuelve nil si no hay ninguno.
	LatestUnconsumedFeedingRecord(ctx context.Context) (*feeding.Record, error)
	CreateFeedingRecord(ctx context.Context, feedTypeID string, feedingTime time.Time) (feeding.Record, error)
	// UpdateFeedingConsumption acepta nil para volver a "sin registrar".
	UpdateFeedingConsumption(ctx context.Context, id string, consumed *bool) (feeding.Record, error)
	UpdateFeedingRecord(ctx context.Context, id, feedTypeID string, feedingTime time.Time) (feeding.Record, error)
	DeleteFeedingRecord(ctx context.Context, id string) error

	AllFeedTypes(ctx context.Context) ([]feeding.FeedType, error)
	CreateFeedType(ctx context.Context, manufacturer, productName string) (feeding.FeedType, error)
}

type ScheduleStore interface {
	ListSchedules(ctx context.Context) ([]feeding.Schedule, error)
	CreateSchedule(ctx context.Context, hhmm string) (feeding.Schedule, error)
	UpdateSchedule(ctx context.Context, id, hhmm string) (feeding.Schedule, error)
	ToggleSchedule(ctx context.Context, id string) (feeding.Schedule, error)
	DeleteSchedule(ctx context.Context, id string) error
	// NextUnrecordedScheduleTime devuelve ("", false, nil) si no hay horario pendiente hoy.
	NextUnrecordedScheduleTime(ctx context.Context) (string, bool, error)
}

type MaintenanceStore interface {
	// AllMaintenanceRecords devuelve el historial completo; la session filtra por rango.
	AllMaintenanceRecords(ctx context.Context) ([]maintenance.Record, error)
	CreateMaintenanceRecord(ctx context.Context, typ maintenance.Type, performedAt time.Time, notes string) (maintenance.Record, error)
	UpdateMaintenanceRecord(ctx context.Context, id string, typ maintenance.Type, performedAt time.Time, notes string) (maintenance.Record, error)
	DeleteMaintenanceRecord(ctx context.Context, id string) error
}

type PetStore interface {
	ListPets(ctx context.Context) ([]pets.Pet, error)
	CreatePet(ctx context.Context, name string) (pets.Pet, error)
	UpdatePet(ctx context.Context, id, name string) (pets.Pet, error)
	// DeletePet borra también los pesos de la mascota.
	DeletePet(ctx context.Context, id string) error

	WeightRecordsInRange(ctx context.Context, start, end time.Time) ([]pets.WeightRecord, error)
	CreateWeightRecord(ctx context.Context, petID string, weight float64, measuredDate time.Time) (pets.WeightRecord, error)
}

// Confirmer pide confirmación antes de una acción destructiva.
// Devolver false es un no-op completo: no se llama al store.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AutoConfirm acepta siempre (modo no interactivo).
var AutoConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
