package delay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	domainErrors "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/ports"
	"go.uber.org/zap"
)

const (
	DefaultThrottleWindow = 15 * time.Minute
	DefaultRetention      = 60 * time.Minute
)

type Throttle struct {
	log       *zap.Logger
	repo      ports.DelayReportRepository
	lock      ports.ReportLock
	window    time.Duration
	retention time.Duration
}

// NewThrottle builds a throttle over repo. lock may be nil.
func NewThrottle(log *zap.Logger, repo ports.DelayReportRepository, lock ports.ReportLock, window, retention time.Duration) *Throttle {
	if window <= 0 {
		window = DefaultThrottleWindow
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Throttle{
		log:       log,
		repo:      repo,
		lock:      lock,
		window:    window,
		retention: retention,
	}
}

func (t *Throttle) Window() time.Duration { return t.window }

// ThrottledReason is shown to a device that already reported within the window.
func (t *Throttle) ThrottledReason() string {
	return fmt.Sprintf("Już zgłosiłeś opóźnienie dla tego kursu w ciągu ostatnich %d minut", int(t.window.Minutes()))
}

// CanReport is false only when the same device reported this schedule within the window, bounds inclusive.
// Store failures count as eligible.
func (t *Throttle) CanReport(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, now time.Time) bool {
	const op = "delay.Throttle.CanReport"

	exists, err := t.repo.ExistsSince(ctx, scheduleID, fingerprint, now.Add(-t.window))
	if err != nil {
		t.log.Warn("report lookup failed, allowing report",
			zap.String("op", op),
			zap.String("schedule_id", string(scheduleID)),
			zap.Error(err),
		)
		return true
	}
	return !exists
}

// Submit records a report when the device is eligible.
func (t *Throttle) Submit(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, now time.Time) (models.DelayReport, error) {
	const op = "delay.Throttle.Submit"

	log := t.log.With(
		zap.String("op", op),
		zap.String("schedule_id", string(scheduleID)),
	)

	if !t.CanReport(ctx, scheduleID, fingerprint, now) {
		return models.DelayReport{}, fmt.Errorf("%s: %w", op, domainErrors.ErrReportThrottled)
	}

	if t.lock != nil {
		ok, err := t.lock.Acquire(ctx, scheduleID, fingerprint, t.window)
		switch {
		case err != nil:
			log.Warn("report lock unavailable", zap.Error(err))
		case !ok:
			return models.DelayReport{}, fmt.Errorf("%s: %w", op, domainErrors.ErrReportThrottled)
		}
	}

	report := models.DelayReport{
		ID:          uuid.NewString(),
		ScheduleID:  scheduleID,
		Fingerprint: fingerprint,
		ReportedAt:  now.UTC(),
	}
	if err := t.repo.Insert(ctx, report); err != nil {
		if errors.Is(err, domainErrors.ErrReportThrottled) {
			return models.DelayReport{}, fmt.Errorf("%s: %w", op, err)
		}
		log.Error("failed to insert report", zap.Error(err))
		return models.DelayReport{}, fmt.Errorf("%s: insert: %w", op, err)
	}

	log.Info("delay report recorded")
	return report, nil
}
