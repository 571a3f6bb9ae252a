package delay

import (
	"context"
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"go.uber.org/zap"
)

// PurgeExpired drops reports older than the retention period.
func (t *Throttle) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	const op = "delay.Throttle.PurgeExpired"

	n, err := t.repo.DeleteBefore(ctx, now.Add(-t.retention))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (t *Throttle) PurgeAll(ctx context.Context) (int64, error) {
	const op = "delay.Throttle.PurgeAll"

	n, err := t.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	t.log.Info("delay reports purged", zap.String("op", op), zap.Int64("deleted", n))
	return n, nil
}

func (t *Throttle) PurgeSchedule(ctx context.Context, scheduleID models.ScheduleID) (int64, error) {
	const op = "delay.Throttle.PurgeSchedule"

	n, err := t.repo.DeleteBySchedule(ctx, scheduleID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// RecentCounts purges expired reports, then counts reports in [now-retention, now] per schedule.
// A failed purge is logged and counting goes ahead.
func (t *Throttle) RecentCounts(ctx context.Context, now time.Time) (map[models.ScheduleID]int, error) {
	const op = "delay.Throttle.RecentCounts"

	if _, err := t.PurgeExpired(ctx, now); err != nil {
		t.log.Warn("opportunistic purge failed", zap.String("op", op), zap.Error(err))
	}

	counts, err := t.repo.CountBetween(ctx, now.Add(-t.retention), now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return counts, nil
}
