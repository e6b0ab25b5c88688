package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-log/internal/domain/feeding"
)

func TestNextConsumption_Cycle(t *testing.T) {
	var state *bool
	want := []string{"true", "false", "nil", "true"}
	for i, w := range want {
		state = NextConsumption(state)
		if got := consumedString(state); got != w {
			t.Fatalf("step %d: expected %s, got %s", i, w, got)
		}
	}
}

func consumedString(v *bool) string {
	switch {
	case v == nil:
		return "nil"
	case *v:
		return "true"
	default:
		return "false"
	}
}

func TestFindLatestUnconsumed(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	items := []feeding.Record{
		{ID: "a", FeedingTime: base, CreatedAt: base},
		{ID: "b", FeedingTime: base.Add(2 * time.Hour), Consumed: feeding.Bool(true)},
		{ID: "c", FeedingTime: base.Add(time.Hour), CreatedAt: base},
		{ID: "d", FeedingTime: base.Add(time.Hour), CreatedAt: base.Add(time.Minute)},
	}

	got, ok := FindLatestUnconsumed(items)
	if !ok || got.ID != "d" {
		t.Fatalf("expected d (latest unconsumed, later created), got %+v ok=%v", got, ok)
	}

	if _, ok := FindLatestUnconsumed([]feeding.Record{{ID: "x", Consumed: feeding.Bool(false)}}); ok {
		t.Fatalf("expected none when every record has a value")
	}
	if _, ok := FindLatestUnconsumed(nil); ok {
		t.Fatalf("expected none for empty input")
	}
}

func TestReconciler_ResolvedRecordDoesNotPromptAgain(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	store.feeding = []feeding.Record{{ID: "r1", FeedingTime: at}}

	rec := NewReconciler(store)
	pending, ok, err := rec.Check(ctx)
	if err != nil || !ok || pending.ID != "r1" {
		t.Fatalf("expected r1 pending, got %+v ok=%v err=%v", pending, ok, err)
	}

	updated, err := rec.Resolve(ctx, false)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if updated.Consumed == nil || *updated.Consumed {
		t.Fatalf("expected consumed=false, got %v", consumedString(updated.Consumed))
	}

	// Otro cliente lo vuelve a dejar sin registrar: no se pregunta de nuevo.
	store.feeding[0].Consumed = nil
	if _, ok, _ := rec.Check(ctx); ok {
		t.Fatalf("resolved record should not prompt again")
	}

	// Un registro nuevo sí reabre el aviso.
	store.feeding = append(store.feeding, feeding.Record{ID: "r2", FeedingTime: at.Add(time.Hour)})
	if p, ok, _ := rec.Check(ctx); !ok || p.ID != "r2" {
		t.Fatalf("expected r2 pending, got %+v ok=%v", p, ok)
	}
}

func TestReconciler_FailureKeepsPrompt(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.feeding = []feeding.Record{{ID: "r1", FeedingTime: time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)}}

	rec := NewReconciler(store)
	if _, ok, _ := rec.Check(ctx); !ok {
		t.Fatalf("expected pending")
	}

	store.fail["UpdateFeedingConsumption"] = errBoom
	if _, err := rec.Resolve(ctx, true); !errors.Is(err, errBoom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := rec.Pending(); !ok {
		t.Fatalf("prompt must survive a failed resolve")
	}
}

func TestReconciler_NothingPending(t *testing.T) {
	rec := NewReconciler(newFakeStore())
	if _, ok, err := rec.Check(context.Background()); ok || err != nil {
		t.Fatalf("expected nothing pending, ok=%v err=%v", ok, err)
	}
	if _, err := rec.Resolve(context.Background(), true); !errors.Is(err, ErrNothingToReconcile) {
		t.Fatalf("expected ErrNothingToReconcile, got %v", err)
	}
}
