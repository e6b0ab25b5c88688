package calendar

import (
	"sort"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

// Records son las tres colecciones cargadas para el mes visible.
type Records struct {
	Feeding     []feeding.Record
	Weights     []pets.WeightRecord
	Maintenance []maintenance.Record
}

// clone copia los slices para que nadie fuera de la session comparta su backing array.
func (r Records) clone() Records {
	return Records{
		Feeding:     append([]feeding.Record(nil), r.Feeding...),
		Weights:     append([]pets.WeightRecord(nil), r.Weights...),
		Maintenance: append([]maintenance.Record(nil), r.Maintenance...),
	}
}

// DayData es el resumen de un día local.
type DayData struct {
	Day         Day
	Feeding     []feeding.Record     // por FeedingTime asc
	Weights     []pets.WeightRecord  // orden de entrada; la UI muestra solo el primero
	Maintenance []maintenance.Record // por PerformedAt asc
}

func (d DayData) Empty() bool {
	return len(d.Feeding) == 0 && len(d.Weights) == 0 && len(d.Maintenance) == 0
}

func (d DayData) FirstWeight() (pets.WeightRecord, bool) {
	if len(d.Weights) == 0 {
		return pets.WeightRecord{}, false
	}
	return d.Weights[0], true
}

// DayData agrupa los registros cuyo día local es day. Función pura: sin I/O,
// no modifica recs, se puede llamar por cada celda en cada render.
func (n Normalizer) DayData(recs Records, day Day) DayData {
	out := DayData{
		Day:         day,
		Feeding:     []feeding.Record{},
		Weights:     []pets.WeightRecord{},
		Maintenance: []maintenance.Record{},
	}

	for _, r := range recs.Feeding {
		if n.LocalDay(r.FeedingTime) == day {
			out.Feeding = append(out.Feeding, r)
		}
	}
	// measuredDate es fecha civil: comparación directa, sin zona.
	for _, w := range recs.Weights {
		if DayOf(w.MeasuredDate) == day {
			out.Weights = append(out.Weights, w)
		}
	}
	for _, m := range recs.Maintenance {
		if n.LocalDay(m.PerformedAt) == day {
			out.Maintenance = append(out.Maintenance, m)
		}
	}

	sort.SliceStable(out.Feeding, func(i, j int) bool {
		return out.Feeding[i].FeedingTime.Before(out.Feeding[j].FeedingTime)
	})
	sort.SliceStable(out.Maintenance, func(i, j int) bool {
		return out.Maintenance[i].PerformedAt.Before(out.Maintenance[j].PerformedAt)
	})
	return out
}

// Grid devuelve semanas completas (domingo a sábado) que cubren m,
// incluyendo los días de relleno de los meses vecinos.
func Grid(m Month) [][]Day {
	first, last := m.FirstDay(), m.LastDay()
	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(int(time.Saturday - last.Weekday()))

	weeks := make([][]Day, 0, 6)
	for d := start; !d.After(end); d = d.AddDays(7) {
		week := make([]Day, 7)
		for i := range week {
			week[i] = d.AddDays(i)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// Cell es una celda del calendario. Los días fuera del mes se marcan pero se
// agrupan igual que el resto.
type Cell struct {
	DayData
	InMonth bool
	IsToday bool
}

// Cells arma la grilla de m con los datos de recs.
func (n Normalizer) Cells(recs Records, m Month, today Day) [][]Cell {
	grid := Grid(m)
	out := make([][]Cell, 0, len(grid))
	for _, week := range grid {
		row := make([]Cell, 0, len(week))
		for _, d := range week {
			row = append(row, Cell{
				DayData: n.DayData(recs, d),
				InMonth: m.Contains(d),
				IsToday: d == today,
			})
		}
		out = append(out, row)
	}
	return out
}

// inWindow filtra mantenimiento al rango pedido (el store devuelve el historial completo).
func inWindow(items []maintenance.Record, w Window) []maintenance.Record {
	out := make([]maintenance.Record, 0, len(items))
	for _, m := range items {
		if w.Contains(m.PerformedAt) {
			out = append(out, m)
		}
	}
	return out
}
