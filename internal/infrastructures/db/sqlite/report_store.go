package sqlite

import (
	"context"
	"fmt"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

func (s *Store) ExistsSince(ctx context.Context, scheduleID models.ScheduleID, fingerprint string, since time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM bus_delay_reports
			WHERE bus_schedule_id = ?
			  AND device_fingerprint = ?
			  AND reported_at >= ?
		)
	`

	var exists int
	if err := s.conn.QueryRowContext(ctx, query, string(scheduleID), fingerprint, formatTime(since)).Scan(&exists); err != nil {
		return false, fmt.Errorf("query recent report: %w", err)
	}
	return exists != 0, nil
}

func (s *Store) Insert(ctx context.Context, report models.DelayReport) error {
	const query = `
		INSERT INTO bus_delay_reports (id, bus_schedule_id, device_fingerprint, reported_at, report_bucket)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (bus_schedule_id, device_fingerprint, report_bucket) DO NOTHING
	`

	s.lockWrite()
	defer s.unlockWrite()

	res, err := s.conn.ExecContext(ctx, query,
		report.ID,
		string(report.ScheduleID),
		report.Fingerprint,
		formatTime(report.ReportedAt),
		report.ReportedAt.Unix()/reportBucketSeconds,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert report rows affected: %w", err)
	}
	if n == 0 {
		return derr.ErrReportThrottled
	}
	return nil
}

func (s *Store) CountBetween(ctx context.Context, from, to time.Time) (map[models.ScheduleID]int, error) {
	const query = `
		SELECT bus_schedule_id, COUNT(*)
		FROM bus_delay_reports
		WHERE reported_at >= ? AND reported_at <= ?
		GROUP BY bus_schedule_id
	`

	rows, err := s.conn.QueryContext(ctx, query, formatTime(from), formatTime(to))
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

func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	return s.deleteReports(ctx, "delete expired reports", `DELETE FROM bus_delay_reports WHERE reported_at < ?`, formatTime(before))
}

func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	return s.deleteReports(ctx, "delete all reports", `DELETE FROM bus_delay_reports`)
}

func (s *Store) DeleteBySchedule(ctx context.Context, scheduleID models.ScheduleID) (int64, error) {
	return s.deleteReports(ctx, "delete schedule reports", `DELETE FROM bus_delay_reports WHERE bus_schedule_id = ?`, string(scheduleID))
}

func (s *Store) deleteReports(ctx context.Context, what, query string, args ...any) (int64, error) {
	s.lockWrite()
	defer s.unlockWrite()

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", what, err)
	}
	return n, nil
}
