package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "board.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return store
}

func sampleEntry(id string, hour, minute int) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:          models.ScheduleID(id),
		Route:       models.RoutePKS,
		Destination: "Warszawa",
		Via:         "Tarczyn",
		Departure:   models.ClockTime{Hour: hour, Minute: minute},
		Days:        models.NewDayFilterSet(models.Workdays, models.Saturdays),
		Symbols:     "S",
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	store := openTestStore(t)

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second ensure schema: %v", err)
	}
}

func TestScheduleStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.UpsertSchedule(ctx, sampleEntry("b", 9, 15)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.UpsertSchedule(ctx, sampleEntry("a", 7, 5)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	updated := sampleEntry("b", 9, 15)
	updated.Cancelled = true
	if err := store.UpsertSchedule(ctx, updated); err != nil {
		t.Fatalf("upsert existing: %v", err)
	}

	entries, err := store.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "a" {
		t.Fatalf("expected earliest departure first, got %s", entries[0].ID)
	}

	got, err := store.GetSchedule(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Cancelled {
		t.Fatal("expected cancelled flag to be persisted")
	}
	if got.Days != updated.Days {
		t.Fatalf("expected days %s, got %s", updated.Days, got.Days)
	}
	if got.Departure != (models.ClockTime{Hour: 9, Minute: 15}) {
		t.Fatalf("unexpected departure %s", got.Departure)
	}
}

func TestScheduleStore_NotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetSchedule(context.Background(), "missing")
	if !errors.Is(err, derr.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestScheduleStore_SkipsMalformedRows(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if err := store.UpsertSchedule(ctx, sampleEntry("good", 8, 0)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	bad := codec.RawSchedule{
		ID:            "bad",
		RouteCategory: "PKS",
		Destination:   "Grójec",
		DepartureTime: "08:30",
		DayFilter:     "WEEKENDS",
	}
	if err := store.UpsertRaw(ctx, bad); err != nil {
		t.Fatalf("upsert raw: %v", err)
	}

	entries, err := store.ListSchedules(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "good" {
		t.Fatalf("expected only the good row, got %+v", entries)
	}

	if _, err := store.GetSchedule(ctx, "bad"); !errors.Is(err, derr.ErrUnknownDayFilter) {
		t.Fatalf("expected ErrUnknownDayFilter, got %v", err)
	}
}

func TestScheduleStore_RejectsEmptyDayFilter(t *testing.T) {
	store := openTestStore(t)

	entry := sampleEntry("x", 8, 0)
	entry.Days = 0
	if err := store.UpsertSchedule(context.Background(), entry); !errors.Is(err, derr.ErrEmptyDayFilter) {
		t.Fatalf("expected ErrEmptyDayFilter, got %v", err)
	}
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	if _, err := store.GetOverrides(ctx); !errors.Is(err, derr.ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	saved := models.CalendarOverrides{
		ForceBreak: true,
		UpdatedAt:  time.Date(2026, time.March, 17, 9, 30, 0, 0, time.UTC),
	}
	if err := store.SaveOverrides(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	saved.ForceHoliday = true
	if err := store.SaveOverrides(ctx, saved); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := store.GetOverrides(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.ForceHoliday || !got.ForceBreak {
		t.Fatalf("unexpected overrides %+v", got)
	}
	if !got.UpdatedAt.Equal(saved.UpdatedAt) {
		t.Fatalf("expected updated_at %s, got %s", saved.UpdatedAt, got.UpdatedAt)
	}
}

func TestReportStore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	for _, id := range []string{"S1", "S2"} {
		if err := store.UpsertSchedule(ctx, sampleEntry(id, 10, 0)); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}

	base := time.Date(2026, time.March, 17, 10, 0, 0, 0, time.UTC)
	insert := func(id, sched, fp string, at time.Time) error {
		return store.Insert(ctx, models.DelayReport{
			ID:          id,
			ScheduleID:  models.ScheduleID(sched),
			Fingerprint: fp,
			ReportedAt:  at,
		})
	}

	if err := insert("r1", "S1", "fp_a", base); err != nil {
		t.Fatalf("insert r1: %v", err)
	}
	if err := insert("r2", "S1", "fp_a", base.Add(5*time.Minute)); !errors.Is(err, derr.ErrReportThrottled) {
		t.Fatalf("expected ErrReportThrottled for same bucket, got %v", err)
	}
	if err := insert("r3", "S1", "fp_b", base.Add(5*time.Minute)); err != nil {
		t.Fatalf("insert r3: %v", err)
	}
	if err := insert("r4", "S2", "fp_a", base.Add(20*time.Minute)); err != nil {
		t.Fatalf("insert r4: %v", err)
	}
	if err := insert("r5", "S1", "fp_c", base.Add(7*24*time.Hour)); err != nil {
		t.Fatalf("insert r5: %v", err)
	}

	exists, err := store.ExistsSince(ctx, "S1", "fp_a", base)
	if err != nil || !exists {
		t.Fatalf("expected report at boundary to count, got exists=%v err=%v", exists, err)
	}
	exists, err = store.ExistsSince(ctx, "S1", "fp_a", base.Add(time.Second))
	if err != nil || exists {
		t.Fatalf("expected no report after boundary, got exists=%v err=%v", exists, err)
	}

	counts, err := store.CountBetween(ctx, base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if counts["S1"] != 2 || counts["S2"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}

	n, err := store.DeleteBefore(ctx, base.Add(time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("expected 1 expired report deleted, got n=%d err=%v", n, err)
	}
	n, err = store.DeleteBySchedule(ctx, "S2")
	if err != nil || n != 1 {
		t.Fatalf("expected 1 S2 report deleted, got n=%d err=%v", n, err)
	}
	n, err = store.DeleteAll(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 remaining reports deleted, got n=%d err=%v", n, err)
	}
}

func TestMassStore(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	parish := models.Parish{ID: "p1", Name: "Parafia św. Mikołaja", Address: "Grójec"}
	if err := store.UpsertParish(ctx, parish); err != nil {
		t.Fatalf("upsert parish: %v", err)
	}
	if err := store.AddMassSchedule(ctx, models.MassSchedule{
		ParishID:        "p1",
		DayType:         models.Sunday,
		Time:            models.ClockTime{Hour: 9, Minute: 0},
		DurationMinutes: 60,
	}); err != nil {
		t.Fatalf("add mass: %v", err)
	}

	day := time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC)
	if err := store.AddMassException(ctx, models.MassException{
		ParishID:        "p1",
		Date:            day,
		Time:            models.ClockTime{Hour: 6, Minute: 0},
		Title:           "Rezurekcja",
		DurationMinutes: 90,
	}); err != nil {
		t.Fatalf("add exception: %v", err)
	}

	parishes, err := store.ListParishes(ctx)
	if err != nil || len(parishes) != 1 || parishes[0].Name != parish.Name {
		t.Fatalf("unexpected parishes %+v err=%v", parishes, err)
	}

	regular, err := store.ListMassSchedules(ctx)
	if err != nil || len(regular) != 1 || regular[0].DayType != models.Sunday {
		t.Fatalf("unexpected mass schedules %+v err=%v", regular, err)
	}

	exceptions, err := store.ListMassExceptions(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("list exceptions: %v", err)
	}
	if len(exceptions) != 1 || exceptions[0].Title != "Rezurekcja" || !exceptions[0].Date.Equal(day) {
		t.Fatalf("unexpected exceptions %+v", exceptions)
	}

	none, err := store.ListMassExceptions(ctx, day.AddDate(0, 0, 1), day.AddDate(0, 0, 2))
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no exceptions outside range, got %+v err=%v", none, err)
	}
}
