package postgres

import (
	"context"
	"fmt"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

// reportBucketSeconds sizes the bucket behind the per-device uniqueness index.
const reportBucketSeconds = int64(15 * 60)

func reportBucket(t time.Time) int64 {
	return t.Unix() / reportBucketSeconds
}

func (r *Repository) ExistsSince(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, since time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM bus_delay_reports
			WHERE bus_schedule_id = $1
			  AND device_fingerprint = $2
			  AND reported_at >= $3
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, string(scheduleID), fingerprint, since.UTC()).Scan(&exists); err != nil {
		return false, fmt.Errorf("query recent report: %w", err)
	}
	return exists, nil
}

// Insert stores one report. A second report from the same device in the same
// bucket is rejected with ErrReportThrottled.
func (r *Repository) Insert(ctx context.Context, report models.DelayReport) error {
	const query = `
		INSERT INTO bus_delay_reports (id, bus_schedule_id, device_fingerprint, reported_at, report_bucket)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (bus_schedule_id, device_fingerprint, report_bucket) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		report.ID,
		string(report.ScheduleID),
		report.Fingerprint,
		report.ReportedAt.UTC(),
		reportBucket(report.ReportedAt),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return derr.ErrReportThrottled
	}
	return nil
}

func (r *Repository) CountBetween(ctx context.Context, from, to time.Time) (map[models.ScheduleID]int, error) {
	const query = `
		SELECT bus_schedule_id, COUNT(*)
		FROM bus_delay_reports
		WHERE reported_at >= $1 AND reported_at <= $2
		GROUP BY bus_schedule_id
	`

	rows, err := r.db.Query(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ScheduleID]int)
	for rows.Next() {
		var (
			id    string
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("scan report count: %w", err)
		}
		counts[models.ScheduleID(id)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report counts: %w", err)
	}
	return counts, nil
}

func (r *Repository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bus_delay_reports WHERE reported_at < $1`, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired reports: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bus_delay_reports`)
	if err != nil {
		return 0, fmt.Errorf("delete all reports: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) DeleteBySchedule(ctx context.Context, scheduleID models.ScheduleID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bus_delay_reports WHERE bus_schedule_id = $1`, string(scheduleID))
	if err != nil {
		return 0, fmt.Errorf("delete schedule reports: %w", err)
	}
	return tag.RowsAffected(), nil
}
