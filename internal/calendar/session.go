package calendar

import (
	"context"
	"sync"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/pets"
	"pet-care-log/internal/platform/logger"
)

type Options struct {
	// Location es la zona "local" del usuario. Default: time.Local.
	Location *time.Location
	// Confirmer para borrados. Default: AutoConfirm.
	Confirmer Confirmer
	Logger    logger.Logger
	Now       func() time.Time
	// Month inicial. Default: mes local actual.
	Month *Month
}

// Session es el estado de una vista de calendario: mes visible, colecciones
// cargadas, catálogo, mascota seleccionada y mensaje. Varias pueden coexistir.
//
// El mutex protege solo el estado; nunca se mantiene durante una llamada al store.
type Session struct {
	store   Store
	norm    Normalizer
	confirm Confirmer
	log     logger.Logger
	now     func() time.Time
	rec     *Reconciler

	mu        sync.Mutex
	month     Month
	seq       uint64
	loading   bool
	window    Window
	records   Records
	feedTypes []feeding.FeedType
	pets      []pets.Pet
	selected  string
	schedules []feeding.Schedule
	msg       Message
}

func NewSession(store Store, opts Options) *Session {
	s := &Session{
		store:   store,
		norm:    NewNormalizer(opts.Location),
		confirm: opts.Confirmer,
		log:     opts.Logger,
		now:     opts.Now,
		rec:     NewReconciler(store),
	}
	if s.confirm == nil {
		s.confirm = AutoConfirm
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	if opts.Month != nil {
		s.month = *opts.Month
	} else {
		s.month = MonthOf(s.now().In(s.norm.Location()))
	}
	s.window = s.norm.FetchWindow(s.month)
	return s
}

// Start carga mascotas y horarios, revisa si hay un registro pendiente de
// reconciliar y carga el mes actual.
func (s *Session) Start(ctx context.Context) error {
	petList, err := s.store.ListPets(ctx)
	if err != nil {
		return s.loadFailed(err)
	}
	schedules, err := s.store.ListSchedules(ctx)
	if err != nil {
		return s.loadFailed(err)
	}

	s.mu.Lock()
	s.pets = petList
	s.schedules = schedules
	if s.selected == "" && len(petList) > 0 {
		s.selected = petList[0].ID
	}
	s.mu.Unlock()

	if _, _, err := s.rec.Check(ctx); err != nil {
		return s.loadFailed(err)
	}
	return s.Reload(ctx)
}

func (s *Session) loadFailed(err error) error {
	s.log.Warn("load failed", map[string]any{"err": err})
	s.mu.Lock()
	s.msg = failureMessage(OpLoad)
	s.mu.Unlock()
	return &RemoteError{Op: OpLoad, Err: err}
}

// Reload vuelve a pedir las colecciones del mes visible y las reemplaza completas.
// Cada carga lleva un número de secuencia: si al volver ya se pidió otra,
// el resultado se descarta (gana el último mes pedido, no la última respuesta).
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq, month := s.seq, s.month
	s.loading = true
	s.mu.Unlock()

	w := s.norm.FetchWindow(month)
	recs, types, err := s.fetch(ctx, w)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		s.log.Debug("stale load discarded", map[string]any{"month": month.String(), "seq": seq})
		return nil
	}
	s.loading = false

	if err != nil {
		s.log.Warn("load failed", map[string]any{"month": month.String(), "err": err})
		s.msg = failureMessage(OpLoad)
		return &RemoteError{Op: OpLoad, Err: err}
	}

	s.window = w
	s.records = recs
	s.feedTypes = types
	return nil
}

func (s *Session) fetch(ctx context.Context, w Window) (Records, []feeding.FeedType, error) {
	feedingRecs, err := s.store.FeedingRecordsInRange(ctx, w.Start, w.End)
	if err != nil {
		return Records{}, nil, err
	}
	weights, err := s.store.WeightRecordsInRange(ctx, w.Start, w.End)
	if err != nil {
		return Records{}, nil, err
	}
	maint, err := s.store.AllMaintenanceRecords(ctx)
	if err != nil {
		return Records{}, nil, err
	}
	types, err := s.store.AllFeedTypes(ctx)
	if err != nil {
		return Records{}, nil, err
	}

	return Records{
		Feeding:     feedingRecs,
		Weights:     weights,
		Maintenance: inWindow(maint, w),
	}, types, nil
}

// PreviousMonth y NextMonth cambian el mes visible y recargan.
func (s *Session) PreviousMonth(ctx context.Context) error {
	s.mu.Lock()
	s.month = s.month.Prev()
	s.msg = Message{}
	s.mu.Unlock()
	return s.Reload(ctx)
}

func (s *Session) NextMonth(ctx context.Context) error {
	s.mu.Lock()
	s.month = s.month.Next()
	s.msg = Message{}
	s.mu.Unlock()
	return s.Reload(ctx)
}

// GoTo salta a un mes arbitrario y recarga.
func (s *Session) GoTo(ctx context.Context, m Month) error {
	s.mu.Lock()
	s.month = m
	s.msg = Message{}
	s.mu.Unlock()
	return s.Reload(ctx)
}

func (s *Session) Month() Month {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.month
}

func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Window es el rango UTC de la última carga aplicada.
func (s *Session) Window() Window {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window
}

func (s *Session) Location() *time.Location { return s.norm.Location() }

func (s *Session) Today() Day { return s.norm.Today(s.now()) }

func (s *Session) Message() Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

func (s *Session) ClearMessage() {
	s.mu.Lock()
	s.msg = Message{}
	s.mu.Unlock()
}

// Records devuelve una copia de las colecciones cargadas.
func (s *Session) Records() Records {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records.clone()
}

func (s *Session) FeedTypes() []feeding.FeedType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]feeding.FeedType(nil), s.feedTypes...)
}

func (s *Session) Schedules() []feeding.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]feeding.Schedule(nil), s.schedules...)
}

func (s *Session) Pets() []pets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pets.Pet(nil), s.pets...)
}

func (s *Session) SelectedPet() (pets.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pets {
		if p.ID == s.selected {
			return p, true
		}
	}
	return pets.Pet{}, false
}

// SelectPet cambia la mascota seleccionada. ID desconocido: no-op, devuelve false.
func (s *Session) SelectPet(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.pets, id, petID) < 0 {
		return false
	}
	s.selected = id
	return true
}

// DayData resume un día local con las colecciones cargadas.
func (s *Session) DayData(d Day) DayData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.norm.DayData(s.records, d)
}

// OpenDay es DayData más limpiar el mensaje (abrir un día empieza de cero).
func (s *Session) OpenDay(d Day) DayData {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msg = Message{}
	return s.norm.DayData(s.records, d)
}

// Cells arma la grilla del mes visible.
func (s *Session) Cells() [][]Cell {
	today := s.Today()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.norm.Cells(s.records, s.month, today)
}

// LatestUnconsumed se recalcula sobre la colección en memoria en cada llamada.
func (s *Session) LatestUnconsumed() (feeding.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FindLatestUnconsumed(s.records.Feeding)
}

// PendingReconciliation es el aviso "¿comió?" abierto al iniciar, si hay.
func (s *Session) PendingReconciliation() (feeding.Record, bool) {
	return s.rec.Pending()
}
