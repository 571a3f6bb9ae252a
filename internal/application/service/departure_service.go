package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/ports"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/symbols"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const tracerName = "board/service"

// ReportCounter yields trailing-hour delay report counts per schedule.
type ReportCounter interface {
	RecentCounts(ctx context.Context, now time.Time) (map[models.ScheduleID]int, error)
}

type BoardQuery struct {
	At      time.Time
	ShowAll bool
	Query   string
}

type DepartureService struct {
	log      *zap.Logger
	repo     ports.ScheduleRepository
	cache    ports.CatalogueCache
	cacheTTL time.Duration
	settings ports.CalendarSettingsRepository
	reports  ReportCounter
	loc      *time.Location
	window   schedule.WindowOptions
	now      func() time.Time
}

func NewDepartureService(
	log *zap.Logger,
	repo ports.ScheduleRepository,
	cache ports.CatalogueCache,
	cacheTTL time.Duration,
	settings ports.CalendarSettingsRepository,
	reports ReportCounter,
	loc *time.Location,
	window schedule.WindowOptions,
) *DepartureService {
	return &DepartureService{
		log:      log,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		settings: settings,
		reports:  reports,
		loc:      loc,
		window:   window,
		now:      time.Now,
	}
}

// Location is the board's civil timezone.
func (s *DepartureService) Location() *time.Location { return s.loc }

// Now converts at to the board's timezone; a zero at means the current time.
func (s *DepartureService) Now(at time.Time) time.Time {
	if at.IsZero() {
		at = s.now()
	}
	return at.In(s.loc)
}

func (s *DepartureService) Catalogue(ctx context.Context) ([]models.ScheduleEntry, error) {
	const op = "service.Catalogue"

	logger := s.log.With(zap.String("op", op))

	if s.cache != nil {
		entries, err := s.cache.GetCatalogue(ctx)
		if err == nil {
			logger.Debug("catalogue loaded from cache", zap.Int("entries", len(entries)))
			return entries, nil
		}
		if !errors.Is(err, derr.ErrCacheMiss) {
			logger.Warn("catalogue cache read failed", zap.Error(err))
		}
	}

	entries, err := s.repo.ListSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: list schedules: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.SetCatalogue(ctx, entries, s.cacheTTL); err != nil {
			logger.Warn("catalogue cache write failed", zap.Error(err))
		}
	}

	logger.Debug("catalogue loaded from db", zap.Int("entries", len(entries)))
	return entries, nil
}

// Overrides falls back to no overrides when the settings store fails.
func (s *DepartureService) Overrides(ctx context.Context) models.CalendarOverrides {
	const op = "service.Overrides"

	if s.settings == nil {
		return models.CalendarOverrides{}
	}
	o, err := s.settings.GetOverrides(ctx)
	if err != nil {
		if !errors.Is(err, derr.ErrSettingsNotFound) {
			s.log.Warn("calendar settings unavailable", zap.String("op", op), zap.Error(err))
		}
		return models.CalendarOverrides{}
	}
	return o
}

func (s *DepartureService) Board(ctx context.Context, q BoardQuery) (models.DepartureBoard, error) {
	const op = "service.Board"
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, op)
	defer span.End()

	now := s.Now(q.At)
	span.SetAttributes(
		attribute.String("board.at", now.Format(time.RFC3339)),
		attribute.Bool("board.show_all", q.ShowAll),
		attribute.Bool("board.search", q.Query != ""),
	)

	logger := s.log.With(
		zap.String("op", op),
		zap.Time("at", now),
	)

	catalogue, err := s.Catalogue(ctx)
	if err != nil {
		logger.Error("failed to load catalogue", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "failed to load catalogue")
		return models.DepartureBoard{}, fmt.Errorf("%s: %w", op, err)
	}

	opts := s.window
	opts.ShowAll = q.ShowAll
	opts.Query = q.Query
	opts.Overrides = s.Overrides(ctx)

	if s.reports != nil {
		counts, err := s.reports.RecentCounts(ctx, now)
		if err != nil {
			logger.Warn("report counts unavailable", zap.Error(err))
			span.AddEvent("board.reports.unavailable")
		}
		opts.ReportCounts = counts
	}

	window := schedule.BuildWindow(catalogue, now, opts)

	raw := make([]string, 0, len(window.Departures))
	for _, v := range window.Departures {
		raw = append(raw, v.Entry.Symbols)
	}

	span.SetAttributes(attribute.Int("board.departures", len(window.Departures)))
	span.SetStatus(otelcodes.Ok, "ok")
	logger.Debug("board built",
		zap.Int("departures", len(window.Departures)),
		zap.Bool("tomorrow_only", window.TomorrowOnly),
	)

	return models.DepartureBoard{
		Window: window,
		Legend: symbols.Legend(raw...),
		Notice: schedule.NoCoursesMessage(now, opts.Overrides),
		At:     now,
	}, nil
}

func (s *DepartureService) Schedule(ctx context.Context, id models.ScheduleID) (models.ScheduleEntry, error) {
	const op = "service.Schedule"

	entry, err := s.repo.GetSchedule(ctx, id)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}

// Applicability explains whether entry id runs on date.
func (s *DepartureService) Applicability(ctx context.Context, id models.ScheduleID, date time.Time) (models.ScheduleEntry, schedule.Decision, error) {
	const op = "service.Applicability"
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("schedule.id", string(id)))

	entry, err := s.Schedule(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "schedule lookup failed")
		return models.ScheduleEntry{}, schedule.Decision{}, fmt.Errorf("%s: %w", op, err)
	}

	decision := schedule.Evaluate(entry, s.Now(date), s.Overrides(ctx))
	span.SetAttributes(attribute.Bool("schedule.visible", decision.Visible))
	span.SetStatus(otelcodes.Ok, "ok")
	return entry, decision, nil
}

// TodayView places entry id on today's board at now.
// running is false when the entry does not run today.
func (s *DepartureService) TodayView(ctx context.Context, id models.ScheduleID, at time.Time) (view models.DepartureView, running bool, err error) {
	const op = "service.TodayView"

	entry, err := s.Schedule(ctx, id)
	if err != nil {
		return models.DepartureView{}, false, fmt.Errorf("%s: %w", op, err)
	}

	now := s.Now(at)
	dep := entry.Departure.MinuteOfDay()
	view = models.DepartureView{
		Entry:           entry,
		MinutesUntil:    dep - (now.Hour()*60 + now.Minute()),
		DepartureMinute: dep,
	}
	return view, schedule.Evaluate(entry, now, s.Overrides(ctx)).Visible, nil
}
