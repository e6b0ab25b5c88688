package feeding

import "time"

// FeedType es un producto de alimento (fabricante + nombre comercial).
type FeedType struct {
	ID           string
	Manufacturer string
	ProductName  string
	CreatedAt    time.Time
}

// Label devuelve "fabricante producto" para listados.
func (f FeedType) Label() string {
	return f.Manufacturer + " " + f.ProductName
}

// Schedule es un horario diario recurrente (HH:mm en hora local), no un evento concreto.
type Schedule struct {
	ID        string
	Time      string
	IsActive  bool
	CreatedAt time.Time
}

// Record es una comida concreta. FeedingTime se guarda en UTC.
// Consumed es tri-estado: nil = sin registrar, true = comió todo, false = dejó sobras.
type Record struct {
	ID          string
	FeedTypeID  string
	FeedingTime time.Time
	Consumed    *bool
	CreatedAt   time.Time

	// FeedType se completa en lecturas cuando el tipo existe.
	FeedType *FeedType
}

// Unrecorded indica si todavía no se registró el consumo.
func (r Record) Unrecorded() bool { return r.Consumed == nil }

// RecordFilter filtra lecturas de registros. From/To son inclusivos.
type RecordFilter struct {
	From           *time.Time
	To             *time.Time
	UnrecordedOnly bool
	Limit          int
}

// Bool devuelve un puntero a v (para armar valores de Consumed).
func Bool(v bool) *bool { return &v }
