package service

import (
	"context"
	"errors"
	"testing"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"go.uber.org/zap"
)

func TestCalendarOverrides_MissingMeansNone(t *testing.T) {
	svc := NewCalendarService(zap.NewNop(), &settingsMock{getErr: derr.ErrSettingsNotFound}, time.UTC)

	o, err := svc.Overrides(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if o.ForceHoliday || o.ForceBreak {
		t.Fatalf("expected no overrides, got %+v", o)
	}
}

func TestCalendarUpdateOverrides(t *testing.T) {
	settings := &settingsMock{}
	svc := NewCalendarService(zap.NewNop(), settings, time.UTC)
	svc.now = func() time.Time { return tuesday }

	o, err := svc.UpdateOverrides(context.Background(), false, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !o.ForceBreak || o.ForceHoliday || !o.UpdatedAt.Equal(tuesday) {
		t.Fatalf("unexpected overrides %+v", o)
	}
	if len(settings.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(settings.saved))
	}

	day, err := svc.Day(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if day.Notice != "Wymuszony tryb feryjny. Kursy szkolne nie są realizowane." {
		t.Fatalf("unexpected notice %q", day.Notice)
	}
	if !day.SchoolDay || day.Bucket != models.Workdays {
		t.Fatalf("unexpected day info %+v", day)
	}
}

func TestCalendarUpdateOverrides_SaveError(t *testing.T) {
	svc := NewCalendarService(zap.NewNop(), &settingsMock{saveErr: errors.New("db down")}, time.UTC)

	if _, err := svc.UpdateOverrides(context.Background(), true, false); err == nil {
		t.Fatal("expected error")
	}
}

func TestCalendarHolidays(t *testing.T) {
	svc := NewCalendarService(zap.NewNop(), &settingsMock{}, time.UTC)
	if got := len(svc.Holidays(2026)); got != 12 {
		t.Fatalf("expected 12 holidays, got %d", got)
	}
}

func TestCalendarToday(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	svc := NewCalendarService(zap.NewNop(), &settingsMock{}, warsaw)
	svc.now = func() time.Time { return time.Date(2026, time.March, 16, 23, 30, 0, 0, time.UTC) }

	want := time.Date(2026, time.March, 17, 0, 0, 0, 0, warsaw)
	if got := svc.Today(); !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

type massRepoMock struct {
	parishes   []models.Parish
	schedules  []models.MassSchedule
	exceptions []models.MassException
	err        error
	from, to   time.Time
}

func (m *massRepoMock) ListParishes(context.Context) ([]models.Parish, error) {
	return m.parishes, m.err
}

func (m *massRepoMock) ListMassSchedules(context.Context) ([]models.MassSchedule, error) {
	return m.schedules, nil
}

func (m *massRepoMock) ListMassExceptions(_ context.Context, from, to time.Time) ([]models.MassException, error) {
	m.from, m.to = from, to
	return m.exceptions, nil
}

func clockAt(hh, mm int) models.ClockTime { return models.ClockTime{Hour: hh, Minute: mm} }

func TestMassesToday(t *testing.T) {
	repo := &massRepoMock{
		parishes: []models.Parish{{ID: "p1", Name: "Św. Mikołaja"}, {ID: "p2", Name: "Matki Bożej"}},
		schedules: []models.MassSchedule{
			{ParishID: "p1", DayType: models.Tuesday, Time: clockAt(18, 0), Title: "Msza wieczorna"},
			{ParishID: "p1", DayType: models.Tuesday, Time: clockAt(7, 0)},
			{ParishID: "p1", DayType: models.Tuesday, Time: clockAt(9, 30), DurationMinutes: 45},
			{ParishID: "p1", DayType: models.Wednesday, Time: clockAt(6, 30)},
			{ParishID: "p2", DayType: models.Tuesday, Time: clockAt(8, 0)},
			{ParishID: "p2", DayType: models.Wednesday, Time: clockAt(7, 0)},
		},
		exceptions: []models.MassException{
			{ParishID: "p2", Date: time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC), Time: clockAt(12, 0), Title: "Pogrzeb"},
			{ParishID: "p2", Date: time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC), Time: clockAt(19, 0)},
		},
	}
	svc := NewMassService(zap.NewNop(), repo, time.UTC)

	got, err := svc.Today(context.Background(), tuesday)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 parishes, got %d", len(got))
	}

	p1 := got[0]
	if len(p1.Today) != 3 {
		t.Fatalf("expected 3 masses, got %d", len(p1.Today))
	}
	wantStatus := []models.MassStatus{models.MassPast, models.MassOngoing, models.MassUpcoming}
	for i, slot := range p1.Today {
		if slot.Status != wantStatus[i] {
			t.Fatalf("slot %d (%s): expected %s, got %s", i, slot.Time, wantStatus[i], slot.Status)
		}
	}
	if p1.TomorrowFirstMass == nil || *p1.TomorrowFirstMass != clockAt(6, 30) {
		t.Fatalf("unexpected tomorrow first mass %v", p1.TomorrowFirstMass)
	}

	p2 := got[1]
	if len(p2.Today) != 1 || !p2.Today[0].Exception || p2.Today[0].Title != "Pogrzeb" {
		t.Fatalf("expected exception to replace schedule, got %+v", p2.Today)
	}
	if p2.Today[0].DurationMinutes != defaultMassDuration {
		t.Fatalf("expected default duration, got %d", p2.Today[0].DurationMinutes)
	}
	if p2.TomorrowFirstMass == nil || *p2.TomorrowFirstMass != clockAt(19, 0) {
		t.Fatalf("expected tomorrow exception, got %v", p2.TomorrowFirstMass)
	}
}

func TestMassesToday_HolidayDayType(t *testing.T) {
	repo := &massRepoMock{
		parishes: []models.Parish{{ID: "p1"}},
		schedules: []models.MassSchedule{
			{ParishID: "p1", DayType: models.HolidayDT, Time: clockAt(10, 0)},
			{ParishID: "p1", DayType: models.Tuesday, Time: clockAt(7, 0)},
		},
	}
	svc := NewMassService(zap.NewNop(), repo, time.UTC)

	// Trzech Króli 2026 is a Tuesday.
	got, err := svc.Today(context.Background(), time.Date(2026, time.January, 6, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got[0].Today) != 1 || got[0].Today[0].Time != clockAt(10, 0) {
		t.Fatalf("expected holiday schedule, got %+v", got[0].Today)
	}
}

func TestMassesToday_RepoError(t *testing.T) {
	svc := NewMassService(zap.NewNop(), &massRepoMock{err: errors.New("db down")}, time.UTC)
	if _, err := svc.Today(context.Background(), tuesday); err == nil {
		t.Fatal("expected error")
	}
}
