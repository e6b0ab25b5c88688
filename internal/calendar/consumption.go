package calendar

import (
	"context"
	"sync"

	"pet-care-log/internal/domain/feeding"
)

// NextConsumption es el ciclo del toggle manual: nil -> true -> false -> nil.
func NextConsumption(current *bool) *bool {
	switch {
	case current == nil:
		return feeding.Bool(true)
	case *current:
		return feeding.Bool(false)
	default:
		return nil
	}
}

// FindLatestUnconsumed devuelve el registro sin consumo con FeedingTime máximo.
// Empates: el creado más tarde, luego el ID mayor. Se recalcula siempre, no se cachea.
func FindLatestUnconsumed(items []feeding.Record) (feeding.Record, bool) {
	var (
		best  feeding.Record
		found bool
	)
	for _, r := range items {
		if r.Consumed != nil {
			continue
		}
		if !found || later(r, best) {
			best, found = r, true
		}
	}
	return best, found
}

func later(a, b feeding.Record) bool {
	if !a.FeedingTime.Equal(b.FeedingTime) {
		return a.FeedingTime.After(b.FeedingTime)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// Reconciler maneja el aviso único "¿comió?" para el último registro sin consumo.
// El candidato se pide al store (no a la colección en memoria, que puede estar vacía).
// Una vez resuelto, ese registro no vuelve a avisarse; solo uno nuevo reabre el aviso.
type Reconciler struct {
	store FeedingStore

	mu       sync.Mutex
	pending  *feeding.Record
	resolved map[string]struct{}
}

func NewReconciler(store FeedingStore) *Reconciler {
	return &Reconciler{
		store:    store,
		resolved: map[string]struct{}{},
	}
}

// Check consulta el store y deja (o limpia) el aviso pendiente.
func (r *Reconciler) Check(ctx context.Context) (feeding.Record, bool, error) {
	latest, err := r.store.LatestUnconsumedFeedingRecord(ctx)
	if err != nil {
		return feeding.Record{}, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if latest == nil {
		r.pending = nil
		return feeding.Record{}, false, nil
	}
	if _, done := r.resolved[latest.ID]; done {
		r.pending = nil
		return feeding.Record{}, false, nil
	}
	rec := *latest
	r.pending = &rec
	return rec, true, nil
}

func (r *Reconciler) Pending() (feeding.Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending == nil {
		return feeding.Record{}, false
	}
	return *r.pending, true
}

// Resolve registra consumed (true o false) para el aviso pendiente.
// Si el store falla el aviso queda como estaba.
func (r *Reconciler) Resolve(ctx context.Context, consumed bool) (feeding.Record, error) {
	pending, ok := r.Pending()
	if !ok {
		return feeding.Record{}, ErrNothingToReconcile
	}

	updated, err := r.store.UpdateFeedingConsumption(ctx, pending.ID, feeding.Bool(consumed))
	if err != nil {
		return feeding.Record{}, err
	}

	r.mu.Lock()
	r.markResolved(pending.ID)
	r.mu.Unlock()
	return updated, nil
}

// observe se llama tras cada mutación de un registro de comida hecha por otra vía
// (toggle manual, borrado). Si afecta al pendiente, el aviso se cierra.
func (r *Reconciler) observe(rec feeding.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil && r.pending.ID == rec.ID && rec.Consumed != nil {
		r.markResolved(rec.ID)
	}
}

func (r *Reconciler) forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil && r.pending.ID == id {
		r.markResolved(id)
	}
}

func (r *Reconciler) markResolved(id string) {
	r.resolved[id] = struct{}{}
	if r.pending != nil && r.pending.ID == id {
		r.pending = nil
	}
}
