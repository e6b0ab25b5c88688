package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pet-care-log/internal/adapters/local"
	"pet-care-log/internal/adapters/storage/memory"
	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/maintenance"
	"pet-care-log/internal/domain/pets"
)

var (
	testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	jst     = time.FixedZone("JST", 9*3600)
)

type scriptedPrompter struct {
	confirm  bool
	answer   Answer
	asked    int
	prompted []string
}

func (p *scriptedPrompter) Confirm(_ context.Context, prompt string) (bool, error) {
	p.prompted = append(p.prompted, prompt)
	return p.confirm, nil
}

func (p *scriptedPrompter) Consumption(context.Context, feeding.Record, *time.Location) (Answer, error) {
	p.asked++
	return p.answer, nil
}

func newStore() calendar.Store {
	return local.New(
		feeding.NewService(memory.NewFeedingRepo(), jst),
		pets.NewService(memory.NewPetRepo(), jst),
		maintenance.NewService(memory.NewMaintenanceRepo()),
	)
}

func newContext(t *testing.T, store calendar.Store, p *scriptedPrompter) (*Context, *bytes.Buffer) {
	t.Helper()

	s := calendar.NewSession(store, calendar.Options{
		Location:  jst,
		Confirmer: p,
		Now:       func() time.Time { return testNow },
	})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var out bytes.Buffer
	return &Context{Ctx: context.Background(), Session: s, Out: &out, Prompt: p}, &out
}

func addFeedType(t *testing.T, ctx *Context) string {
	t.Helper()
	ft, err := ctx.Session.CreateFeedType(ctx.ctx(), "Acme", "Chicken")
	if err != nil {
		t.Fatalf("CreateFeedType: %v", err)
	}
	return ft.ID
}

func TestFeedAdd_LocalTimeAndDayView(t *testing.T) {
	ctx, out := newContext(t, newStore(), &scriptedPrompter{})
	ftID := addFeedType(t, ctx)

	cmd := &FeedAddCmd{FeedType: ftID, Date: "2024-03-10", At: "01:30"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("feed add: %v", err)
	}
	if !strings.Contains(out.String(), "Feeding recorded") {
		t.Fatalf("expected success message, got %q", out.String())
	}

	rec := ctx.Session.Records().Feeding[0]
	if want := time.Date(2024, 3, 9, 16, 30, 0, 0, time.UTC); !rec.FeedingTime.Equal(want) {
		t.Fatalf("expected %s, got %s", want, rec.FeedingTime)
	}

	out.Reset()
	if err := (&DayCmd{Date: "2024-03-10"}).Run(ctx); err != nil {
		t.Fatalf("day: %v", err)
	}
	if !strings.Contains(out.String(), "01:30") || !strings.Contains(out.String(), "Acme Chicken") {
		t.Fatalf("expected record in day view, got %q", out.String())
	}

	out.Reset()
	if err := (&DayCmd{Date: "2024-03-09"}).Run(ctx); err != nil {
		t.Fatalf("day: %v", err)
	}
	if !strings.Contains(out.String(), "No records") {
		t.Fatalf("expected empty day, got %q", out.String())
	}
}

func TestCalendar_RendersMarksAndNavigates(t *testing.T) {
	ctx, out := newContext(t, newStore(), &scriptedPrompter{})
	ftID := addFeedType(t, ctx)
	if err := (&FeedAddCmd{FeedType: ftID, Date: "2024-03-10", At: "08:00"}).Run(ctx); err != nil {
		t.Fatalf("feed add: %v", err)
	}

	out.Reset()
	if err := (&CalendarCmd{Month: "2024-03"}).Run(ctx); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "March 2024") || !strings.Contains(got, "10 F1") {
		t.Fatalf("unexpected grid:\n%s", got)
	}
	if !strings.Contains(got, "Awaiting consumption") {
		t.Fatalf("expected unconsumed hint:\n%s", got)
	}

	out.Reset()
	if err := (&CalendarCmd{Month: "2024-01", Prev: true}).Run(ctx); err != nil {
		t.Fatalf("calendar prev: %v", err)
	}
	if !strings.Contains(out.String(), "December 2023") {
		t.Fatalf("expected December 2023, got:\n%s", out.String())
	}

	if err := (&CalendarCmd{Month: "2024-13"}).Run(ctx); err == nil {
		t.Fatalf("expected error for invalid month")
	}
}

func TestFeedToggle_CyclesConsumption(t *testing.T) {
	ctx, out := newContext(t, newStore(), &scriptedPrompter{})
	ftID := addFeedType(t, ctx)
	if err := (&FeedAddCmd{FeedType: ftID, At: "08:00"}).Run(ctx); err != nil {
		t.Fatalf("feed add: %v", err)
	}
	id := ctx.Session.Records().Feeding[0].ID

	for _, want := range []string{"eaten", "left", "?"} {
		out.Reset()
		if err := (&FeedToggleCmd{ID: id}).Run(ctx); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !strings.Contains(out.String(), id+" "+want) {
			t.Fatalf("expected %q, got %q", want, out.String())
		}
	}

	if err := (&FeedToggleCmd{ID: "missing"}).Run(ctx); err == nil {
		t.Fatalf("expected error for record outside the month")
	}
}

func TestFeedEdit_KeepsUnchangedFields(t *testing.T) {
	ctx, _ := newContext(t, newStore(), &scriptedPrompter{})
	ftID := addFeedType(t, ctx)
	if err := (&FeedAddCmd{FeedType: ftID, Date: "2024-03-10", At: "08:00"}).Run(ctx); err != nil {
		t.Fatalf("feed add: %v", err)
	}
	id := ctx.Session.Records().Feeding[0].ID

	if err := (&FeedEditCmd{ID: id, At: "19:45"}).Run(ctx); err != nil {
		t.Fatalf("feed edit: %v", err)
	}
	rec, _ := ctx.findFeeding(id)
	if rec.FeedTypeID != ftID || rec.FeedingTime.In(jst).Format("2006-01-02 15:04") != "2024-03-10 19:45" {
		t.Fatalf("unexpected record after edit: %+v", rec)
	}

	if err := (&FeedEditCmd{ID: "elsewhere", At: "10:00"}).Run(ctx); err == nil {
		t.Fatalf("expected error when record is unknown and fields are missing")
	}
}

func TestFeedDelete_DeclinedKeepsRecord(t *testing.T) {
	p := &scriptedPrompter{confirm: false}
	ctx, _ := newContext(t, newStore(), p)
	ftID := addFeedType(t, ctx)
	if err := (&FeedAddCmd{FeedType: ftID, At: "08:00"}).Run(ctx); err != nil {
		t.Fatalf("feed add: %v", err)
	}
	id := ctx.Session.Records().Feeding[0].ID

	if err := (&FeedDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("feed delete: %v", err)
	}
	if len(p.prompted) != 1 || len(ctx.Session.Records().Feeding) != 1 {
		t.Fatalf("declined delete must keep the record (prompts=%v)", p.prompted)
	}

	p.confirm = true
	if err := (&FeedDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("feed delete: %v", err)
	}
	if len(ctx.Session.Records().Feeding) != 0 {
		t.Fatalf("expected record removed")
	}
}

func TestReconcile_StartupPrompt(t *testing.T) {
	store := newStore()
	first, _ := newContext(t, store, &scriptedPrompter{})
	ftID := addFeedType(t, first)
	if err := (&FeedAddCmd{FeedType: ftID, At: "08:00"}).Run(first); err != nil {
		t.Fatalf("feed add: %v", err)
	}

	// "Later" deja el aviso abierto.
	later := &scriptedPrompter{answer: AnswerLater}
	ctx, _ := newContext(t, store, later)
	if err := Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if _, ok := ctx.Session.PendingReconciliation(); !ok || later.asked != 1 {
		t.Fatalf("expected pending after 'later', asked=%d", later.asked)
	}

	yes := &scriptedPrompter{answer: AnswerConsumed}
	ctx, out := newContext(t, store, yes)
	if err := Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if _, ok := ctx.Session.PendingReconciliation(); ok {
		t.Fatalf("expected nothing pending after answer")
	}
	if !strings.Contains(out.String(), "Consumption recorded") {
		t.Fatalf("expected success message, got %q", out.String())
	}

	// Ya resuelto: no vuelve a preguntar.
	again := &scriptedPrompter{answer: AnswerConsumed}
	ctx, out = newContext(t, store, again)
	if err := Reconcile(ctx); err != nil || again.asked != 0 {
		t.Fatalf("expected no prompt, asked=%d err=%v", again.asked, err)
	}
	if err := (&FeedReconcileCmd{}).Run(ctx); err != nil || !strings.Contains(out.String(), "Nothing to reconcile") {
		t.Fatalf("expected nothing to reconcile, got %q err=%v", out.String(), err)
	}
}

func TestFeedReconcile_ExplicitAnswer(t *testing.T) {
	store := newStore()
	first, _ := newContext(t, store, &scriptedPrompter{})
	ftID := addFeedType(t, first)
	if err := (&FeedAddCmd{FeedType: ftID, At: "08:00"}).Run(first); err != nil {
		t.Fatalf("feed add: %v", err)
	}

	ctx, _ := newContext(t, store, &scriptedPrompter{})
	if err := (&FeedReconcileCmd{Answer: "maybe"}).Run(ctx); err == nil {
		t.Fatalf("expected error for unknown answer")
	}
	if err := (&FeedReconcileCmd{Answer: "left"}).Run(ctx); err != nil {
		t.Fatalf("reconcile left: %v", err)
	}
	rec := ctx.Session.Records().Feeding[0]
	if rec.Consumed == nil || *rec.Consumed {
		t.Fatalf("expected consumed=false, got %v", rec.Consumed)
	}
}

func TestPetSelectAndWeight(t *testing.T) {
	ctx, out := newContext(t, newStore(), &scriptedPrompter{confirm: true})
	ctx.State = &State{Path: filepath.Join(t.TempDir(), "state.json")}

	for _, name := range []string{"Mochi", "Kuro"} {
		if err := (&PetAddCmd{Name: name}).Run(ctx); err != nil {
			t.Fatalf("pet add: %v", err)
		}
	}
	kuro := ctx.Session.Pets()[1]
	if err := (&PetSelectCmd{ID: kuro.ID}).Run(ctx); err != nil {
		t.Fatalf("pet select: %v", err)
	}
	if err := (&PetSelectCmd{ID: "nope"}).Run(ctx); err == nil {
		t.Fatalf("expected error for unknown pet")
	}

	saved, err := LoadState(ctx.State.Path)
	if err != nil || saved.SelectedPet != kuro.ID {
		t.Fatalf("expected persisted selection %s, got %+v err=%v", kuro.ID, saved, err)
	}

	if err := (&WeightAddCmd{Weight: 4.5, Date: "2024-03-14"}).Run(ctx); err != nil {
		t.Fatalf("weight add: %v", err)
	}
	if w := ctx.Session.Records().Weights; len(w) != 1 || w[0].PetID != kuro.ID {
		t.Fatalf("expected weight for selected pet, got %+v", w)
	}
	if err := (&WeightAddCmd{Weight: 4.5, Date: "2024-03-16"}).Run(ctx); err == nil {
		t.Fatalf("expected error for a future local date")
	}

	out.Reset()
	if err := (&WeightListCmd{}).Run(ctx); err != nil {
		t.Fatalf("weight list: %v", err)
	}
	if !strings.Contains(out.String(), "2024-03-14") || !strings.Contains(out.String(), "Kuro") {
		t.Fatalf("unexpected weight list %q", out.String())
	}

	if err := (&PetDeleteCmd{ID: kuro.ID}).Run(ctx); err != nil {
		t.Fatalf("pet delete: %v", err)
	}
	saved, _ = LoadState(ctx.State.Path)
	if saved.SelectedPet == kuro.ID || saved.SelectedPet == "" {
		t.Fatalf("expected selection to fall back to the remaining pet, got %q", saved.SelectedPet)
	}
	if len(ctx.Session.Records().Weights) != 0 {
		t.Fatalf("expected weights of the deleted pet removed")
	}
}

func TestSchedulesAndMaintenance(t *testing.T) {
	ctx, out := newContext(t, newStore(), &scriptedPrompter{confirm: true})

	for _, hhmm := range []string{"18:00", "07:30"} {
		if err := (&ScheduleAddCmd{Time: hhmm}).Run(ctx); err != nil {
			t.Fatalf("schedule add: %v", err)
		}
	}
	if err := (&ScheduleAddCmd{Time: "7:30"}).Run(ctx); err == nil {
		t.Fatalf("expected validation error for 7:30")
	}

	out.Reset()
	if err := (&ScheduleListCmd{}).Run(ctx); err != nil {
		t.Fatalf("schedule list: %v", err)
	}
	if strings.Index(out.String(), "07:30") > strings.Index(out.String(), "18:00") {
		t.Fatalf("schedules must be sorted:\n%s", out.String())
	}

	if err := (&MaintenanceAddCmd{Type: "litter_box", Date: "2024-03-12", At: "09:00", Notes: "full"}).Run(ctx); err != nil {
		t.Fatalf("maintenance add: %v", err)
	}
	id := ctx.Session.Records().Maintenance[0].ID

	notes := ""
	if err := (&MaintenanceEditCmd{ID: id, Type: "water_filter", Notes: &notes}).Run(ctx); err != nil {
		t.Fatalf("maintenance edit: %v", err)
	}
	m := ctx.Session.Records().Maintenance[0]
	if m.Type != maintenance.TypeWaterFilter || m.Notes != "" || m.PerformedAt.In(jst).Format("15:04") != "09:00" {
		t.Fatalf("unexpected record after edit: %+v", m)
	}

	out.Reset()
	if err := (&MaintenanceListCmd{}).Run(ctx); err != nil {
		t.Fatalf("maintenance list: %v", err)
	}
	if !strings.Contains(out.String(), "Water filter change") {
		t.Fatalf("unexpected list %q", out.String())
	}

	if err := (&MaintenanceDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("maintenance delete: %v", err)
	}
	if len(ctx.Session.Records().Maintenance) != 0 {
		t.Fatalf("expected maintenance removed")
	}
}

func TestParseAt(t *testing.T) {
	ctx, _ := newContext(t, newStore(), &scriptedPrompter{})
	fallback := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if got, err := ctx.parseAt("", "", fallback); err != nil || !got.Equal(fallback) {
		t.Fatalf("empty --at must use fallback, got %s err=%v", got, err)
	}
	if got, _ := ctx.parseAt("", "2024-03-01T10:00:00+09:00", fallback); !got.Equal(time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected RFC3339 parse: %s", got)
	}
	// Sin --date usa el día local de hoy (15 en Tokio).
	if got, _ := ctx.parseAt("", "08:00", fallback); !got.Equal(time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected HH:mm parse: %s", got)
	}
	for _, bad := range [][2]string{{"", "8am"}, {"03/10", "08:00"}} {
		if _, err := ctx.parseAt(bad[0], bad[1], fallback); err == nil {
			t.Fatalf("expected error for date=%q at=%q", bad[0], bad[1])
		}
	}
}
