package local

import (
	"context"
	"testing"
	"time"

	"pet-care-log/internal/adapters/storage/memory"
	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

func newStore() *Store {
	loc := time.UTC
	return New(
		feeding.NewService(memory.NewFeedingRepo(), loc),
		pets.NewService(memory.NewPetRepo(), loc),
		maintenance.NewService(memory.NewMaintenanceRepo()),
	)
}

func TestStore_SessionEndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	s := calendar.NewSession(store, calendar.Options{Location: time.UTC})
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	ft, err := s.CreateFeedType(ctx, "Acme", "Tuna")
	if err != nil {
		t.Fatalf("CreateFeedType: %v", err)
	}
	at := time.Now().UTC().Add(-time.Hour).Truncate(time.Minute)
	rec, err := s.CreateFeedingRecord(ctx, ft.ID, at)
	if err != nil {
		t.Fatalf("CreateFeedingRecord: %v", err)
	}
	if rec.FeedType == nil || rec.FeedType.Label() != "Acme Tuna" {
		t.Fatalf("expected feed type attached, got %+v", rec.FeedType)
	}

	latest, err := store.LatestUnconsumedFeedingRecord(ctx)
	if err != nil || latest == nil || latest.ID != rec.ID {
		t.Fatalf("expected latest unconsumed %s, got %+v err=%v", rec.ID, latest, err)
	}

	toggled, err := s.ToggleConsumption(ctx, rec.ID)
	if err != nil || toggled.Consumed == nil || !*toggled.Consumed {
		t.Fatalf("ToggleConsumption: %+v err=%v", toggled, err)
	}
	if latest, _ := store.LatestUnconsumedFeedingRecord(ctx); latest != nil {
		t.Fatalf("expected nothing unconsumed, got %+v", latest)
	}

	if _, err := s.CreateFeedingRecord(ctx, "unknown-type", at); err == nil {
		t.Fatalf("expected error for unknown feed type")
	}
	if msg := s.Message(); msg.Kind != calendar.MessageError {
		t.Fatalf("expected error message, got %+v", msg)
	}
}

func TestStore_NextUnrecordedWithoutSchedules(t *testing.T) {
	hhmm, ok, err := newStore().NextUnrecordedScheduleTime(context.Background())
	if err != nil || ok || hhmm != "" {
		t.Fatalf("expected no schedule, got %q ok=%v err=%v", hhmm, ok, err)
	}
}

func TestStore_DeletePetCascades(t *testing.T) {
	ctx := context.Background()
	store := newStore()

	p, err := store.CreatePet(ctx, "Mochi")
	if err != nil {
		t.Fatalf("CreatePet: %v", err)
	}
	today := time.Now().UTC()
	if _, err := store.CreateWeightRecord(ctx, p.ID, 4.5, today); err != nil {
		t.Fatalf("CreateWeightRecord: %v", err)
	}
	if err := store.DeletePet(ctx, p.ID); err != nil {
		t.Fatalf("DeletePet: %v", err)
	}

	start := today.AddDate(0, 0, -1)
	end := today.AddDate(0, 0, 1)
	weights, err := store.WeightRecordsInRange(ctx, start, end)
	if err != nil || len(weights) != 0 {
		t.Fatalf("expected no weights left, got %+v err=%v", weights, err)
	}
}
