package calendar

import (
	"context"
	"sort"
	"strings"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/platform/validate"
)

func feedingID(r feeding.Record) string         { return r.ID }
func weightID(w pets.WeightRecord) string       { return w.ID }
func maintenanceID(m maintenance.Record) string { return m.ID }
func petID(p pets.Pet) string                   { return p.ID }
func scheduleID(s feeding.Schedule) string      { return s.ID }
func feedTypeID(f feeding.FeedType) string      { return f.ID }

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

// applyUpdate reemplaza el elemento con ese id. Si no está, devuelve items sin cambios.
// Nunca modifica el slice recibido.
func applyUpdate[T any](items []T, id string, idOf func(T) string, v T) []T {
	i := indexOf(items, id, idOf)
	if i < 0 {
		return items
	}
	out := append([]T(nil), items...)
	out[i] = v
	return out
}

// applyDelete quita el elemento con ese id. Si no está, devuelve items sin cambios.
func applyDelete[T any](items []T, id string, idOf func(T) string) []T {
	return applyDeleteWhere(items, func(it T) bool { return idOf(it) == id })
}

func applyDeleteWhere[T any](items []T, drop func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	if len(out) == len(items) {
		return items
	}
	return out
}

// applyCreate agrega v; si el id ya estaba lo reemplaza (nunca duplica).
func applyCreate[T any](items []T, idOf func(T) string, v T) []T {
	if indexOf(items, idOf(v), idOf) >= 0 {
		return applyUpdate(items, idOf(v), idOf, v)
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}

// begin limpia el mensaje: cada acción nueva empieza sin notificación previa.
func (s *Session) begin() {
	s.mu.Lock()
	s.msg = Message{}
	s.mu.Unlock()
}

func (s *Session) reject(op Op, err error) error {
	ve := &ValidationError{Op: op, Err: err}
	s.log.Debug("validation failed", map[string]any{"op": string(op), "field": validate.FieldOf(err)})
	s.mu.Lock()
	s.msg = Message{Kind: MessageError, Text: ve.Error()}
	s.mu.Unlock()
	return ve
}

// mutate: llamada remota, luego (solo si tuvo éxito) apply bajo lock y mensaje de éxito.
// Si falla, el estado local queda intacto y se publica el mensaje de fallo. Sin reintentos.
func (s *Session) mutate(op Op, id string, call func() error, apply func()) error {
	if err := call(); err != nil {
		s.log.Warn("mutation failed", map[string]any{"op": string(op), "id": id, "err": err})
		s.mu.Lock()
		s.msg = failureMessage(op)
		s.mu.Unlock()
		return &RemoteError{Op: op, Err: err}
	}

	s.mu.Lock()
	if apply != nil {
		apply()
	}
	s.msg = successMessage(op)
	s.mu.Unlock()
	return nil
}

// confirmed pregunta antes de borrar. false = no-op completo.
// Si la pregunta falla se publica el mensaje de fallo de op.
func (s *Session) confirmed(ctx context.Context, op Op, id, prompt string) (bool, error) {
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		s.log.Warn("confirmation failed", map[string]any{"op": string(op), "id": id, "err": err})
		s.mu.Lock()
		s.msg = failureMessage(op)
		s.mu.Unlock()
		return false, err
	}
	return ok, nil
}

// -------------------------
// Feeding
// -------------------------

// ToggleConsumption avanza el ciclo nil -> true -> false -> nil del registro id.
// El valor local se reemplaza con el que confirma el store. Si id no está cargado es un no-op.
func (s *Session) ToggleConsumption(ctx context.Context, id string) (feeding.Record, error) {
	s.begin()

	s.mu.Lock()
	i := indexOf(s.records.Feeding, id, feedingID)
	var current feeding.Record
	if i >= 0 {
		current = s.records.Feeding[i]
	}
	s.mu.Unlock()
	if i < 0 {
		return feeding.Record{}, nil
	}

	next := NextConsumption(current.Consumed)
	var updated feeding.Record
	err := s.mutate(OpToggleConsumption, id, func() (err error) {
		updated, err = s.store.UpdateFeedingConsumption(ctx, id, next)
		return err
	}, func() {
		s.records.Feeding = applyUpdate(s.records.Feeding, id, feedingID, updated)
	})
	if err != nil {
		return current, err
	}
	s.rec.observe(updated)
	return updated, nil
}

// ResolveReconciliation responde el aviso pendiente (true = comió todo, false = dejó).
func (s *Session) ResolveReconciliation(ctx context.Context, consumed bool) (feeding.Record, error) {
	s.begin()

	pending, ok := s.rec.Pending()
	if !ok {
		return feeding.Record{}, ErrNothingToReconcile
	}

	var updated feeding.Record
	err := s.mutate(OpReconcile, pending.ID, func() (err error) {
		updated, err = s.rec.Resolve(ctx, consumed)
		return err
	}, func() {
		s.records.Feeding = applyUpdate(s.records.Feeding, updated.ID, feedingID, updated)
	})
	return updated, err
}

func (s *Session) CreateFeedingRecord(ctx context.Context, feedTypeID string, at time.Time) (feeding.Record, error) {
	s.begin()
	if err := feeding.ValidateRecordInput(feedTypeID, at); err != nil {
		return feeding.Record{}, s.reject(OpCreateFeeding, err)
	}

	var created feeding.Record
	err := s.mutate(OpCreateFeeding, "", func() (err error) {
		created, err = s.store.CreateFeedingRecord(ctx, feedTypeID, at.UTC())
		return err
	}, func() {
		s.records.Feeding = applyCreate(s.records.Feeding, feedingID, created)
	})
	return created, err
}

func (s *Session) UpdateFeedingRecord(ctx context.Context, id, feedTypeID string, at time.Time) (feeding.Record, error) {
	s.begin()
	if err := feeding.ValidateRecordInput(feedTypeID, at); err != nil {
		return feeding.Record{}, s.reject(OpUpdateFeeding, err)
	}

	var updated feeding.Record
	err := s.mutate(OpUpdateFeeding, id, func() (err error) {
		updated, err = s.store.UpdateFeedingRecord(ctx, id, feedTypeID, at.UTC())
		return err
	}, func() {
		s.records.Feeding = applyUpdate(s.records.Feeding, id, feedingID, updated)
	})
	return updated, err
}

// DeleteFeedingRecord pide confirmación; devuelve false si el usuario declinó.
func (s *Session) DeleteFeedingRecord(ctx context.Context, id string) (bool, error) {
	s.begin()
	if ok, err := s.confirmed(ctx, OpDeleteFeeding, id, "Delete this feeding record?"); err != nil || !ok {
		return false, err
	}

	err := s.mutate(OpDeleteFeeding, id, func() error {
		return s.store.DeleteFeedingRecord(ctx, id)
	}, func() {
		s.records.Feeding = applyDelete(s.records.Feeding, id, feedingID)
	})
	if err != nil {
		return false, err
	}
	s.rec.forget(id)
	return true, nil
}

func (s *Session) CreateFeedType(ctx context.Context, manufacturer, productName string) (feeding.FeedType, error) {
	s.begin()
	if err := feeding.ValidateFeedTypeInput(manufacturer, productName); err != nil {
		return feeding.FeedType{}, s.reject(OpCreateFeedType, err)
	}

	var created feeding.FeedType
	err := s.mutate(OpCreateFeedType, "", func() (err error) {
		created, err = s.store.CreateFeedType(ctx, strings.TrimSpace(manufacturer), strings.TrimSpace(productName))
		return err
	}, func() {
		s.feedTypes = applyCreate(s.feedTypes, feedTypeID, created)
	})
	return created, err
}

// SuggestFeedingTime propone la hora para un registro nuevo: el próximo horario
// de hoy sin registrar o, si no hay, ahora (al minuto).
func (s *Session) SuggestFeedingTime(ctx context.Context) time.Time {
	now := s.now()
	fallback := now.Truncate(time.Minute).UTC()

	hhmm, ok, err := s.store.NextUnrecordedScheduleTime(ctx)
	if err != nil {
		s.log.Debug("next unrecorded schedule unavailable", map[string]any{"err": err})
		return fallback
	}
	if !ok {
		return fallback
	}
	at, err := s.norm.At(s.norm.Today(now), hhmm)
	if err != nil {
		return fallback
	}
	return at
}

// -------------------------
// Maintenance
// -------------------------

type MaintenanceInput struct {
	Type        maintenance.Type
	PerformedAt time.Time
	Notes       string
}

func (s *Session) CreateMaintenanceRecord(ctx context.Context, in MaintenanceInput) (maintenance.Record, error) {
	s.begin()
	if err := maintenance.ValidateInput(in.Type, in.PerformedAt, s.now()); err != nil {
		return maintenance.Record{}, s.reject(OpCreateMaintenance, err)
	}

	var created maintenance.Record
	err := s.mutate(OpCreateMaintenance, "", func() (err error) {
		created, err = s.store.CreateMaintenanceRecord(ctx, in.Type, in.PerformedAt.UTC(), in.Notes)
		return err
	}, func() {
		s.records.Maintenance = applyCreate(s.records.Maintenance, maintenanceID, created)
	})
	return created, err
}

func (s *Session) UpdateMaintenanceRecord(ctx context.Context, id string, in MaintenanceInput) (maintenance.Record, error) {
	s.begin()
	if err := maintenance.ValidateInput(in.Type, in.PerformedAt, s.now()); err != nil {
		return maintenance.Record{}, s.reject(OpUpdateMaintenance, err)
	}

	var updated maintenance.Record
	err := s.mutate(OpUpdateMaintenance, id, func() (err error) {
		updated, err = s.store.UpdateMaintenanceRecord(ctx, id, in.Type, in.PerformedAt.UTC(), in.Notes)
		return err
	}, func() {
		s.records.Maintenance = applyUpdate(s.records.Maintenance, id, maintenanceID, updated)
	})
	return updated, err
}

func (s *Session) DeleteMaintenanceRecord(ctx context.Context, id string) (bool, error) {
	s.begin()
	if ok, err := s.confirmed(ctx, OpDeleteMaintenance, id, "Delete this maintenance record?"); err != nil || !ok {
		return false, err
	}

	err := s.mutate(OpDeleteMaintenance, id, func() error {
		return s.store.DeleteMaintenanceRecord(ctx, id)
	}, func() {
		s.records.Maintenance = applyDelete(s.records.Maintenance, id, maintenanceID)
	})
	return err == nil, err
}

// -------------------------
// Pets & weights
// -------------------------

// CreatePet agrega la mascota; si no había selección, queda seleccionada.
func (s *Session) CreatePet(ctx context.Context, name string) (pets.Pet, error) {
	s.begin()
	if err := pets.ValidateName(name); err != nil {
		return pets.Pet{}, s.reject(OpCreatePet, err)
	}

	var created pets.Pet
	err := s.mutate(OpCreatePet, "", func() (err error) {
		created, err = s.store.CreatePet(ctx, strings.TrimSpace(name))
		return err
	}, func() {
		s.pets = applyCreate(s.pets, petID, created)
		if s.selected == "" {
			s.selected = created.ID
		}
	})
	return created, err
}

func (s *Session) UpdatePet(ctx context.Context, id, name string) (pets.Pet, error) {
	s.begin()
	if err := pets.ValidateName(name); err != nil {
		return pets.Pet{}, s.reject(OpUpdatePet, err)
	}

	var updated pets.Pet
	err := s.mutate(OpUpdatePet, id, func() (err error) {
		updated, err = s.store.UpdatePet(ctx, id, strings.TrimSpace(name))
		return err
	}, func() {
		s.pets = applyUpdate(s.pets, id, petID, updated)
	})
	return updated, err
}

// DeletePet borra la mascota y en memoria sus pesos. Si era la seleccionada,
// pasa a la primera restante o a ninguna.
func (s *Session) DeletePet(ctx context.Context, id string) (bool, error) {
	s.begin()
	if ok, err := s.confirmed(ctx, OpDeletePet, id, "Delete this pet and all of its weight records?"); err != nil || !ok {
		return false, err
	}

	err := s.mutate(OpDeletePet, id, func() error {
		return s.store.DeletePet(ctx, id)
	}, func() {
		s.pets = applyDelete(s.pets, id, petID)
		s.records.Weights = applyDeleteWhere(s.records.Weights, func(w pets.WeightRecord) bool {
			return w.PetID == id
		})
		if s.selected == id {
			s.selected = ""
			if len(s.pets) > 0 {
				s.selected = s.pets[0].ID
			}
		}
	})
	return err == nil, err
}

func (s *Session) CreateWeightRecord(ctx context.Context, petID string, weight float64, measured time.Time) (pets.WeightRecord, error) {
	s.begin()
	if err := validate.Required("pet_id", petID); err != nil {
		return pets.WeightRecord{}, s.reject(OpCreateWeight, err)
	}
	today := s.norm.Today(s.now()).Date()
	if err := pets.ValidateWeight(weight, measured, today); err != nil {
		return pets.WeightRecord{}, s.reject(OpCreateWeight, err)
	}

	var created pets.WeightRecord
	err := s.mutate(OpCreateWeight, "", func() (err error) {
		created, err = s.store.CreateWeightRecord(ctx, petID, weight, pets.DateOf(measured))
		return err
	}, func() {
		s.records.Weights = applyCreate(s.records.Weights, weightID, created)
	})
	return created, err
}

// -------------------------
// Schedules
// -------------------------

func (s *Session) CreateSchedule(ctx context.Context, hhmm string) (feeding.Schedule, error) {
	s.begin()
	if err := feeding.ValidateScheduleTime(hhmm); err != nil {
		return feeding.Schedule{}, s.reject(OpCreateSchedule, err)
	}

	var created feeding.Schedule
	err := s.mutate(OpCreateSchedule, "", func() (err error) {
		created, err = s.store.CreateSchedule(ctx, hhmm)
		return err
	}, func() {
		s.schedules = sortSchedules(applyCreate(s.schedules, scheduleID, created))
	})
	return created, err
}

func (s *Session) UpdateSchedule(ctx context.Context, id, hhmm string) (feeding.Schedule, error) {
	s.begin()
	if err := feeding.ValidateScheduleTime(hhmm); err != nil {
		return feeding.Schedule{}, s.reject(OpUpdateSchedule, err)
	}

	var updated feeding.Schedule
	err := s.mutate(OpUpdateSchedule, id, func() (err error) {
		updated, err = s.store.UpdateSchedule(ctx, id, hhmm)
		return err
	}, func() {
		s.schedules = sortSchedules(applyUpdate(s.schedules, id, scheduleID, updated))
	})
	return updated, err
}

func (s *Session) ToggleSchedule(ctx context.Context, id string) (feeding.Schedule, error) {
	s.begin()

	var updated feeding.Schedule
	err := s.mutate(OpToggleSchedule, id, func() (err error) {
		updated, err = s.store.ToggleSchedule(ctx, id)
		return err
	}, func() {
		s.schedules = applyUpdate(s.schedules, id, scheduleID, updated)
	})
	return updated, err
}

func (s *Session) DeleteSchedule(ctx context.Context, id string) (bool, error) {
	s.begin()
	if ok, err := s.confirmed(ctx, OpDeleteSchedule, id, "Delete this feeding schedule?"); err != nil || !ok {
		return false, err
	}

	err := s.mutate(OpDeleteSchedule, id, func() error {
		return s.store.DeleteSchedule(ctx, id)
	}, func() {
		s.schedules = applyDelete(s.schedules, id, scheduleID)
	})
	return err == nil, err
}

func sortSchedules(items []feeding.Schedule) []feeding.Schedule {
	out := append([]feeding.Schedule(nil), items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}
