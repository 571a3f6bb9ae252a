package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"go.uber.org/zap"
)

const scheduleColumns = `
	id,
	route_type,
	destination,
	COALESCE(via, ''),
	departure_time,
	days_filter,
	COALESCE(symbols, ''),
	is_cancelled
`

// ListSchedules returns every decodable row; rows that fail decoding are logged and skipped.
func (r *Repository) ListSchedules(ctx context.Context) ([]models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM bus_schedules`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query schedules: %w", err)
	}
	defer rows.Close()

	entries := make([]models.ScheduleEntry, 0, 128)
	for rows.Next() {
		var raw codec.RawSchedule
		if err := scanSchedule(rows, &raw); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}

		entry, err := codec.DecodeSchedule(raw)
		if err != nil {
			r.log.Warn("skipping malformed schedule row",
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

func (r *Repository) GetSchedule(ctx context.Context, id models.ScheduleID) (models.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM bus_schedules WHERE id = $1`

	var raw codec.RawSchedule
	if err := scanSchedule(r.db.QueryRow(ctx, query, string(id)), &raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

func scanSchedule(row pgx.Row, raw *codec.RawSchedule) error {
	return row.Scan(
		&raw.ID,
		&raw.RouteCategory,
		&raw.Destination,
		&raw.Via,
		&raw.DepartureTime,
		&raw.DayFilter,
		&raw.Symbols,
		&raw.Cancelled,
	)
}
