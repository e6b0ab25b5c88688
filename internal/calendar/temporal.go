package calendar

import (
	"fmt"
	"strings"
	"time"
)

const (
	monthLayout = "2006-01"
	dayLayout   = "2006-01-02"
)

// Month es un mes civil en la zona local del usuario.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf toma año y mes de t en la zona de t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(monthLayout, strings.TrimSpace(s))
	if err != nil {
		return Month{}, fmt.Errorf("month must be YYYY-MM: %q", s)
	}
	return MonthOf(t), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next y Prev cruzan el límite de año (diciembre <-> enero).
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) Prev() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

func (m Month) FirstDay() Day { return Day{Year: m.Year, Month: m.Month, Day: 1} }

func (m Month) LastDay() Day { return m.Next().FirstDay().AddDays(-1) }

func (m Month) Contains(d Day) bool { return d.Year == m.Year && d.Month == m.Month }

// Day es una fecha civil sin hora ni zona. Comparable con ==, sirve de clave de mapa.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf toma la fecha de t en la zona de t, sin convertir.
// Es lo correcto para fechas civiles (measuredDate), no para instantes.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, strings.TrimSpace(s))
	if err != nil {
		return Day{}, fmt.Errorf("date must be YYYY-MM-DD: %q", s)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Date devuelve la fecha como medianoche UTC (representación de fecha civil).
func (d Day) Date() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Day) AddDays(n int) Day { return DayOf(d.Date().AddDate(0, 0, n)) }

func (d Day) Weekday() time.Weekday { return d.Date().Weekday() }

func (d Day) Before(o Day) bool { return d.Date().Before(o.Date()) }

func (d Day) After(o Day) bool { return d.Date().After(o.Date()) }

func (d Day) MonthOf() Month { return Month{Year: d.Year, Month: d.Month} }

// Window es un rango de instantes UTC, inclusivo en ambos extremos.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Normalizer es el único puente entre instantes UTC y días locales.
// Todo bucketing por día debe pasar por LocalDay.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return Normalizer{loc: loc}
}

func (n Normalizer) Location() *time.Location {
	if n.loc == nil {
		return time.Local
	}
	return n.loc
}

// LocalDay devuelve el día civil local del instante. Medianoche local pertenece a ese día.
func (n Normalizer) LocalDay(instant time.Time) Day {
	return DayOf(instant.In(n.Location()))
}

// Today es el día local de now.
func (n Normalizer) Today(now time.Time) Day { return n.LocalDay(now) }

// StartOf es el instante de la medianoche local de d.
func (n Normalizer) StartOf(d Day) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, n.Location())
}

// At combina un día local con una hora HH:mm y devuelve el instante en UTC.
func (n Normalizer) At(d Day, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(hhmm))
	if err != nil {
		return time.Time{}, fmt.Errorf("time must be HH:mm: %q", hhmm)
	}
	return time.Date(d.Year, d.Month, d.Day, t.Hour(), t.Minute(), 0, 0, n.Location()).UTC(), nil
}

// FetchWindow devuelve el rango UTC a pedir al store para el mes m:
// desde las 00:00 UTC del día anterior al primero hasta el final (UTC) del día siguiente al último.
// Cubre cualquier offset entre -12h y +14h (y DST) sin depender de la zona configurada.
// Puede incluir de más, nunca de menos.
func (n Normalizer) FetchWindow(m Month) Window {
	start := m.FirstDay().AddDays(-1).Date()
	end := m.LastDay().AddDays(2).Date().Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}
