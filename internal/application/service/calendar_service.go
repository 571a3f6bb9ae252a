package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/ports"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
	"go.uber.org/zap"
)

type CalendarService struct {
	log      *zap.Logger
	settings ports.CalendarSettingsRepository
	loc      *time.Location
	now      func() time.Time
}

func NewCalendarService(log *zap.Logger, settings ports.CalendarSettingsRepository, loc *time.Location) *CalendarService {
	return &CalendarService{
		log:      log,
		settings: settings,
		loc:      loc,
		now:      time.Now,
	}
}

// Today is the current civil date in the board's timezone.
func (s *CalendarService) Today() time.Time {
	return calendar.DateOf(s.now().In(s.loc))
}

func (s *CalendarService) Holidays(year int) []models.Holiday {
	return calendar.Holidays(year)
}

// Day classifies date; a zero date means today. The notice reflects current overrides.
func (s *CalendarService) Day(ctx context.Context, date time.Time) (models.DayInfo, error) {
	const op = "service.Day"

	if date.IsZero() {
		date = s.now()
	}
	date = date.In(s.loc)

	overrides, err := s.Overrides(ctx)
	if err != nil {
		s.log.Warn("calendar settings unavailable", zap.String("op", op), zap.Error(err))
	}

	info := calendar.Classify(date)
	info.Notice = schedule.NoCoursesMessage(date, overrides)
	return info, nil
}

// Overrides returns stored overrides; a missing record means none are set.
func (s *CalendarService) Overrides(ctx context.Context) (models.CalendarOverrides, error) {
	const op = "service.Overrides"

	o, err := s.settings.GetOverrides(ctx)
	if err != nil {
		if errors.Is(err, derr.ErrSettingsNotFound) {
			return models.CalendarOverrides{}, nil
		}
		return models.CalendarOverrides{}, fmt.Errorf("%s: %w", op, err)
	}
	return o, nil
}

func (s *CalendarService) UpdateOverrides(ctx context.Context, forceHoliday, forceBreak bool) (models.CalendarOverrides, error) {
	const op = "service.UpdateOverrides"

	o := models.CalendarOverrides{
		ForceHoliday: forceHoliday,
		ForceBreak:   forceBreak,
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.settings.SaveOverrides(ctx, o); err != nil {
		return models.CalendarOverrides{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("calendar overrides updated",
		zap.String("op", op),
		zap.Bool("force_holiday", forceHoliday),
		zap.Bool("force_break", forceBreak),
	)
	return o, nil
}
