package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	ReportAcceptedMessage = "Dziękujemy! Twoje zgłoszenie pomaga innym pasażerom."
	ReportFailedMessage   = "Nie udało się zgłosić opóźnienia. Spróbuj ponownie."
	notRunningMessage     = "Ten kurs nie jest dzisiaj realizowany."
)

// ReportWindowError carries the user-facing reason a departure cannot be reported now.
type ReportWindowError struct {
	Message string
}

func (e *ReportWindowError) Error() string { return e.Message }

func (e *ReportWindowError) Unwrap() error { return derr.ErrReportWindowClosed }

type departureLocator interface {
	TodayView(ctx context.Context, id models.ScheduleID, at time.Time) (models.DepartureView, bool, error)
	Now(at time.Time) time.Time
}

// Throttle is the delay-report decision and storage surface the service needs.
type Throttle interface {
	CanReport(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, now time.Time) bool
	Submit(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, now time.Time) (models.DelayReport, error)
	PurgeSchedule(ctx context.Context, scheduleID models.ScheduleID) (int64, error)
	ThrottledReason() string
}

type ReportService struct {
	log        *zap.Logger
	departures departureLocator
	throttle   Throttle
}

func NewReportService(log *zap.Logger, departures departureLocator, throttle Throttle) *ReportService {
	return &ReportService{
		log:        log,
		departures: departures,
		throttle:   throttle,
	}
}

// Submit records a delay report stamped with the server clock.
func (s *ReportService) Submit(ctx context.Context, id models.ScheduleID, fingerprint string) (models.DelayReport, error) {
	const op = "service.SubmitReport"
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, op)
	defer span.End()
	span.SetAttributes(attribute.String("report.schedule_id", string(id)))

	logger := s.log.With(
		zap.String("op", op),
		zap.String("schedule_id", string(id)),
	)

	now := s.departures.Now(time.Time{})

	view, running, err := s.departures.TodayView(ctx, id, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "schedule lookup failed")
		return models.DelayReport{}, fmt.Errorf("%s: %w", op, err)
	}
	if !running {
		span.SetStatus(otelcodes.Error, "not running today")
		return models.DelayReport{}, fmt.Errorf("%s: %w", op, &ReportWindowError{Message: notRunningMessage})
	}
	if !schedule.CanReport(view) {
		span.SetStatus(otelcodes.Error, "outside report window")
		return models.DelayReport{}, fmt.Errorf("%s: %w", op, &ReportWindowError{Message: schedule.BlockedReportMessage(view)})
	}

	report, err := s.throttle.Submit(ctx, id, fingerprint, now)
	if err != nil {
		if errors.Is(err, derr.ErrReportThrottled) {
			logger.Info("report throttled")
			span.AddEvent("report.throttled")
			return models.DelayReport{}, fmt.Errorf("%s: %w", op, err)
		}
		logger.Error("failed to submit report", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "submit failed")
		return models.DelayReport{}, fmt.Errorf("%s: %w", op, err)
	}

	span.SetStatus(otelcodes.Ok, "ok")
	return report, nil
}

func (s *ReportService) Eligibility(ctx context.Context, id models.ScheduleID, fingerprint string, at time.Time) models.ReportEligibility {
	if s.throttle.CanReport(ctx, id, fingerprint, s.departures.Now(at)) {
		return models.ReportEligibility{Eligible: true}
	}
	return models.ReportEligibility{Reason: s.throttle.ThrottledReason()}
}

func (s *ReportService) Clear(ctx context.Context, id models.ScheduleID) (int64, error) {
	const op = "service.ClearReports"

	n, err := s.throttle.PurgeSchedule(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("reports cleared",
		zap.String("op", op),
		zap.String("schedule_id", string(id)),
		zap.Int64("deleted", n),
	)
	return n, nil
}

func (s *ReportService) ThrottledReason() string {
	return s.throttle.ThrottledReason()
}
