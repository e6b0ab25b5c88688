package calendar

import (
	"testing"
	"time"

	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

func TestDayData_BucketsByLocalDayAndSorts(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	n := NewNormalizer(tokyo)

	recs := Records{
		Feeding: []feeding.Record{
			{ID: "late", FeedingTime: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)},  // 19:00 del 10
			{ID: "early", FeedingTime: time.Date(2024, 3, 9, 22, 0, 0, 0, time.UTC)}, // 07:00 del 10
			{ID: "prev", FeedingTime: time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)},  // 23:00 del 9
		},
		Maintenance: []maintenance.Record{
			{ID: "m2", PerformedAt: time.Date(2024, 3, 10, 5, 0, 0, 0, time.UTC)},
			{ID: "m1", PerformedAt: time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)},
		},
	}

	got := n.DayData(recs, Day{Year: 2024, Month: time.March, Day: 10})
	if len(got.Feeding) != 2 || got.Feeding[0].ID != "early" || got.Feeding[1].ID != "late" {
		t.Fatalf("unexpected feeding bucket: %+v", got.Feeding)
	}
	if len(got.Maintenance) != 2 || got.Maintenance[0].ID != "m1" {
		t.Fatalf("unexpected maintenance bucket: %+v", got.Maintenance)
	}

	prev := n.DayData(recs, Day{Year: 2024, Month: time.March, Day: 9})
	if len(prev.Feeding) != 1 || prev.Feeding[0].ID != "prev" {
		t.Fatalf("unexpected previous day: %+v", prev.Feeding)
	}

	// La entrada no se modifica.
	if recs.Feeding[0].ID != "late" {
		t.Fatalf("input was reordered")
	}
}

func TestDayData_WeightsUseCivilDate(t *testing.T) {
	// Con offset negativo, tratar measured_date como instante la movería al día anterior.
	n := NewNormalizer(time.FixedZone("PST", -8*3600))
	recs := Records{
		Weights: []pets.WeightRecord{
			{ID: "w1", Weight: 4.2, MeasuredDate: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)},
		},
	}

	got := n.DayData(recs, Day{Year: 2024, Month: time.March, Day: 10})
	w, ok := got.FirstWeight()
	if !ok || w.ID != "w1" {
		t.Fatalf("expected weight on 2024-03-10, got %+v", got.Weights)
	}
	if other := n.DayData(recs, Day{Year: 2024, Month: time.March, Day: 9}); !other.Empty() {
		t.Fatalf("weight leaked into previous day: %+v", other)
	}
}

func TestDayData_EmptyDayHasNonNilSlices(t *testing.T) {
	got := NewNormalizer(time.UTC).DayData(Records{}, Day{Year: 2024, Month: time.January, Day: 1})
	if got.Feeding == nil || got.Weights == nil || got.Maintenance == nil || !got.Empty() {
		t.Fatalf("expected empty non-nil buckets, got %+v", got)
	}
}

func TestGrid_FullWeeksStartingSunday(t *testing.T) {
	// Septiembre 2024 empieza en domingo y termina en lunes.
	weeks := Grid(Month{Year: 2024, Month: time.September})
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	for _, w := range weeks {
		if len(w) != 7 || w[0].Weekday() != time.Sunday || w[6].Weekday() != time.Saturday {
			t.Fatalf("week not sunday..saturday: %v", w)
		}
	}
	if weeks[0][0] != (Day{Year: 2024, Month: time.September, Day: 1}) {
		t.Fatalf("unexpected first cell %s", weeks[0][0])
	}
	if weeks[4][6] != (Day{Year: 2024, Month: time.October, Day: 5}) {
		t.Fatalf("unexpected last cell %s", weeks[5][6])
	}

	// Marzo 2024 empieza en viernes: necesita 6 semanas.
	if got := len(Grid(Month{Year: 2024, Month: time.March})); got != 6 {
		t.Fatalf("expected 6 weeks for Mar 2024, got %d", got)
	}
	// Febrero 2015: 28 días, domingo a sábado exactos.
	if got := len(Grid(Month{Year: 2015, Month: time.February})); got != 4 {
		t.Fatalf("expected 4 weeks for Feb 2015, got %d", got)
	}
}

func TestCells_MarksTodayAndPadding(t *testing.T) {
	n := NewNormalizer(time.UTC)
	m := Month{Year: 2024, Month: time.March}
	today := Day{Year: 2024, Month: time.March, Day: 15}
	recs := Records{
		Feeding: []feeding.Record{
			{ID: "pad", FeedingTime: time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)},
		},
	}

	var todays int
	for _, week := range n.Cells(recs, m, today) {
		for _, c := range week {
			if c.IsToday {
				todays++
			}
			if c.Day == (Day{Year: 2024, Month: time.February, Day: 29}) {
				if c.InMonth {
					t.Fatalf("padding day marked in month")
				}
				if len(c.Feeding) != 1 {
					t.Fatalf("padding day should still be bucketed")
				}
			}
		}
	}
	if todays != 1 {
		t.Fatalf("expected exactly one today cell, got %d", todays)
	}
}

func TestInWindow_FiltersMaintenance(t *testing.T) {
	w := Window{
		Start: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
	}
	items := []maintenance.Record{
		{ID: "old", PerformedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "in", PerformedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "edge", PerformedAt: w.Start},
	}
	got := inWindow(items, w)
	if len(got) != 2 || got[0].ID != "in" || got[1].ID != "edge" {
		t.Fatalf("unexpected filter result: %+v", got)
	}
}
