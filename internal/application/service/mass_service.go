package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/ports"
	"go.uber.org/zap"
)

const defaultMassDuration = 60

type MassService struct {
	log  *zap.Logger
	repo ports.MassRepository
	loc  *time.Location
	now  func() time.Time
}

func NewMassService(log *zap.Logger, repo ports.MassRepository, loc *time.Location) *MassService {
	return &MassService{
		log:  log,
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// Today lists each parish's masses for the day of at, with date exceptions
// replacing the regular schedule for that parish and day.
func (s *MassService) Today(ctx context.Context, at time.Time) ([]models.ParishMasses, error) {
	const op = "service.MassesToday"

	if at.IsZero() {
		at = s.now()
	}
	now := at.In(s.loc)
	today := calendar.DateOf(now)
	tomorrow := today.AddDate(0, 0, 1)

	parishes, err := s.repo.ListParishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: list parishes: %w", op, err)
	}
	regular, err := s.repo.ListMassSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: list schedules: %w", op, err)
	}
	exceptions, err := s.repo.ListMassExceptions(ctx, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("%s: list exceptions: %w", op, err)
	}

	nowMinute := now.Hour()*60 + now.Minute()
	out := make([]models.ParishMasses, 0, len(parishes))
	for _, p := range parishes {
		slots := massesOn(p.ID, today, regular, exceptions)
		for i := range slots {
			slots[i].Status = massStatus(slots[i], nowMinute)
		}

		pm := models.ParishMasses{Parish: p, Today: slots}
		if next := massesOn(p.ID, tomorrow, regular, exceptions); len(next) > 0 {
			first := next[0].Time
			pm.TomorrowFirstMass = &first
		}
		out = append(out, pm)
	}

	s.log.Debug("masses resolved", zap.String("op", op), zap.Int("parishes", len(out)))
	return out, nil
}

func massesOn(parish models.ParishID, day time.Time, regular []models.MassSchedule, exceptions []models.MassException) []models.MassSlot {
	var slots []models.MassSlot
	for _, e := range exceptions {
		if e.ParishID == parish && calendar.SameDay(e.Date, day) {
			slots = append(slots, models.MassSlot{
				Time:            e.Time,
				Title:           e.Title,
				DurationMinutes: durationOrDefault(e.DurationMinutes),
				Exception:       true,
			})
		}
	}

	if len(slots) == 0 {
		dayType := calendar.ClassifyWeekday(day)
		for _, m := range regular {
			if m.ParishID == parish && m.DayType == dayType {
				slots = append(slots, models.MassSlot{
					Time:            m.Time,
					Title:           m.Title,
					DurationMinutes: durationOrDefault(m.DurationMinutes),
				})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Time.MinuteOfDay() < slots[j].Time.MinuteOfDay()
	})
	return slots
}

func massStatus(slot models.MassSlot, nowMinute int) models.MassStatus {
	since := nowMinute - slot.Time.MinuteOfDay()
	switch {
	case since < 0:
		return models.MassUpcoming
	case since < slot.DurationMinutes:
		return models.MassOngoing
	default:
		return models.MassPast
	}
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return defaultMassDuration
	}
	return minutes
}
