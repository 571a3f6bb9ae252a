package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"go.uber.org/zap"
)

const scheduleColumns = `id, route_type, destination, via, departure_time, days_filter, symbols, is_cancelled`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) ListSchedules(ctx context.Context) ([]models.ScheduleEntry, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+scheduleColumns+` FROM bus_schedules ORDER BY departure_time, id`)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	var entries []models.ScheduleEntry
	for rows.Next() {
		var raw codec.RawSchedule
		if err := scanSchedule(rows, &raw); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}

		entry, err := codec.DecodeSchedule(raw)
		if err != nil {
			s.log.Warn("skipping malformed schedule row",
				zap.String("schedule_id", raw.ID),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return entries, nil
}

func (s *Store) GetSchedule(ctx context.Context, id models.ScheduleID) (models.ScheduleEntry, error) {
	row := s.conn.QueryRowContext(ctx, `SELECT `+scheduleColumns+` FROM bus_schedules WHERE id = ?`, string(id))

	var raw codec.RawSchedule
	if err := scanSchedule(row, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ScheduleEntry{}, derr.ErrScheduleNotFound
		}
		return models.ScheduleEntry{}, fmt.Errorf("query schedule by id: %w", err)
	}

	entry, err := codec.DecodeSchedule(raw)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("decode schedule: %w", err)
	}
	return entry, nil
}

// UpsertSchedule writes one entry, replacing any row with the same id.
func (s *Store) UpsertSchedule(ctx context.Context, entry models.ScheduleEntry) error {
	if entry.Days.IsEmpty() {
		return derr.ErrEmptyDayFilter
	}
	raw := codec.EncodeSchedule(entry)

	s.lockWrite()
	defer s.unlockWrite()

	return s.upsertRaw(ctx, raw)
}

// UpsertRaw writes a row as stored text, without decoding it first.
func (s *Store) UpsertRaw(ctx context.Context, raw codec.RawSchedule) error {
	s.lockWrite()
	defer s.unlockWrite()

	return s.upsertRaw(ctx, raw)
}

func (s *Store) upsertRaw(ctx context.Context, raw codec.RawSchedule) error {
	const query = `
		INSERT INTO bus_schedules (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			route_type = excluded.route_type,
			destination = excluded.destination,
			via = excluded.via,
			departure_time = excluded.departure_time,
			days_filter = excluded.days_filter,
			symbols = excluded.symbols,
			is_cancelled = excluded.is_cancelled
	`

	_, err := s.conn.ExecContext(ctx, query,
		raw.ID,
		raw.RouteCategory,
		raw.Destination,
		raw.Via,
		raw.DepartureTime,
		raw.DayFilter,
		raw.Symbols,
		boolToInt(raw.Cancelled),
	)
	if err != nil {
		return fmt.Errorf("upsert schedule %s: %w", raw.ID, err)
	}
	return nil
}

func scanSchedule(row rowScanner, raw *codec.RawSchedule) error {
	var cancelled int
	if err := row.Scan(
		&raw.ID,
		&raw.RouteCategory,
		&raw.Destination,
		&raw.Via,
		&raw.DepartureTime,
		&raw.DayFilter,
		&raw.Symbols,
		&cancelled,
	); err != nil {
		return err
	}
	raw.Cancelled = cancelled != 0
	return nil
}
