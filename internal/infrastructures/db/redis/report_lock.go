package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

type ReportLock struct {
	redis *redis.Client
}

func NewReportLock(redis *redis.Client) *ReportLock {
	return &ReportLock{redis: redis}
}

func reportLockKey(scheduleID models.ScheduleID, fingerprint string) string {
	return fmt.Sprintf("report:lock:%s:%s", scheduleID, fingerprint)
}

// Acquire reports whether this caller is the first to claim the pair within ttl.
func (l *ReportLock) Acquire(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, ttl time.Duration) (bool, error) {
	ok, err := l.redis.SetNX(ctx, reportLockKey(scheduleID, fingerprint), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx report lock: %w", err)
	}
	return ok, nil
}
