package ports

import (
	"context"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

type DelayReportRepository interface {
	ExistsSince(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, since time.Time) (bool, error)
	Insert(ctx context.Context, report models.DelayReport) error
	// CountBetween counts reports per schedule with from <= reported_at <= to.
	CountBetween(ctx context.Context, from, to time.Time) (map[models.ScheduleID]int, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteBySchedule(ctx context.Context, scheduleID models.ScheduleID) (int64, error)
}

// ReportLock is an optional atomic guard for one (schedule, fingerprint) pair.
type ReportLock interface {
	Acquire(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, ttl time.Duration) (bool, error)
}
