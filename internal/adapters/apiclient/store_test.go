package apiclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-care-log/internal/adapters/apiclient"
	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/platform/httpclient"
	"pet-care-log/internal/router"
)

func newAPIStore(t *testing.T) *apiclient.Store {
	t.Helper()

	ts := httptest.NewServer(router.NewRouter(router.Options{Location: time.UTC}))
	t.Cleanup(ts.Close)

	c, err := httpclient.New(ts.URL, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("httpclient.New: %v", err)
	}
	return apiclient.New(c)
}

func TestStore_FeedingOverHTTP(t *testing.T) {
	ctx := context.Background()
	store := newAPIStore(t)

	ft, err := store.CreateFeedType(ctx, "Acme", "Salmon")
	if err != nil {
		t.Fatalf("CreateFeedType: %v", err)
	}

	at := time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)
	rec, err := store.CreateFeedingRecord(ctx, ft.ID, at)
	if err != nil {
		t.Fatalf("CreateFeedingRecord: %v", err)
	}
	if !rec.FeedingTime.Equal(at) || rec.Consumed != nil {
		t.Fatalf("unexpected record: %+v", rec)
	}

	latest, err := store.LatestUnconsumedFeedingRecord(ctx)
	if err != nil || latest == nil || latest.ID != rec.ID {
		t.Fatalf("expected latest unconsumed %s, got %+v err=%v", rec.ID, latest, err)
	}

	// nil -> true -> false -> nil, incluyendo el null explícito.
	want := []string{"true", "false", "nil"}
	cur := rec.Consumed
	for i, w := range want {
		got, err := store.UpdateFeedingConsumption(ctx, rec.ID, calendar.NextConsumption(cur))
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if s := consumed(got.Consumed); s != w {
			t.Fatalf("step %d: expected %s, got %s", i, w, s)
		}
		cur = got.Consumed
	}

	items, err := store.FeedingRecordsInRange(ctx,
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC))
	if err != nil || len(items) != 1 {
		t.Fatalf("expected 1 record in range, got %d err=%v", len(items), err)
	}
	if items[0].FeedType == nil || items[0].FeedType.Label() != "Acme Salmon" {
		t.Fatalf("expected feed type attached, got %+v", items[0].FeedType)
	}

	moved, err := store.UpdateFeedingRecord(ctx, rec.ID, ft.ID, at.Add(2*time.Hour))
	if err != nil || !moved.FeedingTime.Equal(at.Add(2*time.Hour)) {
		t.Fatalf("UpdateFeedingRecord: %+v err=%v", moved, err)
	}

	if err := store.DeleteFeedingRecord(ctx, rec.ID); err != nil {
		t.Fatalf("DeleteFeedingRecord: %v", err)
	}
	err = store.DeleteFeedingRecord(ctx, rec.ID)
	if httpclient.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %v", err)
	}
}

func TestStore_SchedulesOverHTTP(t *testing.T) {
	ctx := context.Background()
	store := newAPIStore(t)

	if _, ok, err := store.NextUnrecordedScheduleTime(ctx); err != nil || ok {
		t.Fatalf("expected no next time without schedules, ok=%v err=%v", ok, err)
	}

	sch, err := store.CreateSchedule(ctx, "08:00")
	if err != nil {
		t.Fatalf("CreateSchedule: %v", err)
	}
	if _, err := store.CreateSchedule(ctx, "25:00"); httpclient.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad time, got %v", err)
	}

	updated, err := store.UpdateSchedule(ctx, sch.ID, "09:15")
	if err != nil || updated.Time != "09:15" {
		t.Fatalf("UpdateSchedule: %+v err=%v", updated, err)
	}
	toggled, err := store.ToggleSchedule(ctx, sch.ID)
	if err != nil || toggled.IsActive {
		t.Fatalf("expected inactive after toggle: %+v err=%v", toggled, err)
	}

	list, err := store.ListSchedules(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListSchedules: %d err=%v", len(list), err)
	}
	if err := store.DeleteSchedule(ctx, sch.ID); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
}

func TestStore_PetsWeightsAndMaintenanceOverHTTP(t *testing.T) {
	ctx := context.Background()
	store := newAPIStore(t)

	pet, err := store.CreatePet(ctx, "Mochi")
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	renamed, err := store.UpdatePet(ctx, pet.ID, "Mochi II")
	if err != nil || renamed.Name != "Mochi II" {
		t.Fatalf("UpdatePet: %+v err=%v", renamed, err)
	}

	measured := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	w, err := store.CreateWeightRecord(ctx, pet.ID, 4.25, measured)
	if err != nil {
		t.Fatalf("CreateWeightRecord: %v", err)
	}
	if !w.MeasuredDate.Equal(measured) || w.PetID != pet.ID {
		t.Fatalf("unexpected weight: %+v", w)
	}

	weights, err := store.WeightRecordsInRange(ctx,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if err != nil || len(weights) != 1 || weights[0].Weight != 4.25 {
		t.Fatalf("WeightRecordsInRange: %+v err=%v", weights, err)
	}

	at := time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)
	m, err := store.CreateMaintenanceRecord(ctx, maintenance.TypeLitterBox, at, "full change")
	if err != nil {
		t.Fatalf("CreateMaintenanceRecord: %v", err)
	}
	m, err = store.UpdateMaintenanceRecord(ctx, m.ID, maintenance.TypeWaterFilter, at, "")
	if err != nil || m.Type != maintenance.TypeWaterFilter {
		t.Fatalf("UpdateMaintenanceRecord: %+v err=%v", m, err)
	}
	all, err := store.AllMaintenanceRecords(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("AllMaintenanceRecords: %d err=%v", len(all), err)
	}
	if err := store.DeleteMaintenanceRecord(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMaintenanceRecord: %v", err)
	}

	if err := store.DeletePet(ctx, pet.ID); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}
	petsLeft, err := store.ListPets(ctx)
	if err != nil || len(petsLeft) != 0 {
		t.Fatalf("expected no pets, got %d err=%v", len(petsLeft), err)
	}
	weights, _ = store.WeightRecordsInRange(ctx,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	if len(weights) != 0 {
		t.Fatalf("expected weights removed with pet, got %d", len(weights))
	}
}

func TestStore_SessionOverHTTP(t *testing.T) {
	ctx := context.Background()
	store := newAPIStore(t)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	s := calendar.NewSession(store, calendar.Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ft, err := s.CreateFeedType(ctx, "Acme", "Tuna")
	if err != nil {
		t.Fatalf("CreateFeedType: %v", err)
	}
	rec, err := s.CreateFeedingRecord(ctx, ft.ID, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("CreateFeedingRecord: %v", err)
	}

	day := s.DayData(calendar.DayOf(now))
	if len(day.Feeding) != 1 || day.Feeding[0].ID != rec.ID {
		t.Fatalf("expected record in today's bucket, got %+v", day.Feeding)
	}

	// Una sesión nueva ve el registro sin consumo y lo ofrece para reconciliar.
	fresh := calendar.NewSession(store, calendar.Options{
		Location: time.UTC,
		Now:      func() time.Time { return now },
	})
	if err := fresh.Start(ctx); err != nil {
		t.Fatalf("Start fresh: %v", err)
	}
	pending, ok := fresh.PendingReconciliation()
	if !ok || pending.ID != rec.ID {
		t.Fatalf("expected pending %s, got %+v ok=%v", rec.ID, pending, ok)
	}
	if _, err := fresh.ResolveReconciliation(ctx, true); err != nil {
		t.Fatalf("ResolveReconciliation: %v", err)
	}
	if _, ok := fresh.PendingReconciliation(); ok {
		t.Fatalf("expected nothing pending after resolve")
	}

	// Un 404 remoto llega como RemoteError con el status original.
	_, err = s.UpdateFeedingRecord(ctx, "missing", ft.ID, now)
	var re *calendar.RemoteError
	if !errors.As(err, &re) || httpclient.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected remote 404, got %v", err)
	}
}

func consumed(v *bool) string {
	switch {
	case v == nil:
		return "nil"
	case *v:
		return "true"
	default:
		return "false"
	}
}

func TestStore_AllMaintenanceRecordsBeyondOneMiB(t *testing.T) {
	ctx := context.Background()
	store := newAPIStore(t)

	const n = 3000
	notes := strings.Repeat("n", 400)
	base := time.Date(2020, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		if _, err := store.CreateMaintenanceRecord(ctx, maintenance.TypeLitterBox, base.Add(time.Duration(i)*time.Hour), notes); err != nil {
			t.Fatalf("CreateMaintenanceRecord %d: %v", i, err)
		}
	}

	all, err := store.AllMaintenanceRecords(ctx)
	if err != nil {
		t.Fatalf("AllMaintenanceRecords: %v", err)
	}
	if len(all) != n {
		t.Fatalf("expected %d records, got %d", n, len(all))
	}
	if all[0].Notes != notes {
		t.Fatalf("notes truncated: %d bytes", len(all[0].Notes))
	}
}
