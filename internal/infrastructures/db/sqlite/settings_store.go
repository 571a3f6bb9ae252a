package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

func (s *Store) GetOverrides(ctx context.Context) (models.CalendarOverrides, error) {
	const query = `
		SELECT force_holiday_mode, force_break_mode, updated_at
		FROM calendar_settings
		WHERE id = 1
	`

	var (
		holiday, brk int
		updatedAt    string
	)
	if err := s.conn.QueryRowContext(ctx, query).Scan(&holiday, &brk, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CalendarOverrides{}, derr.ErrSettingsNotFound
		}
		return models.CalendarOverrides{}, fmt.Errorf("query calendar settings: %w", err)
	}

	ts, err := parseTime(updatedAt)
	if err != nil {
		return models.CalendarOverrides{}, err
	}
	return models.CalendarOverrides{
		ForceHoliday: holiday != 0,
		ForceBreak:   brk != 0,
		UpdatedAt:    ts,
	}, nil
}

func (s *Store) SaveOverrides(ctx context.Context, o models.CalendarOverrides) error {
	const query = `
		INSERT INTO calendar_settings (id, force_holiday_mode, force_break_mode, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			force_holiday_mode = excluded.force_holiday_mode,
			force_break_mode = excluded.force_break_mode,
			updated_at = excluded.updated_at
	`

	s.lockWrite()
	defer s.unlockWrite()

	if _, err := s.conn.ExecContext(ctx, query, boolToInt(o.ForceHoliday), boolToInt(o.ForceBreak), formatTime(o.UpdatedAt)); err != nil {
		return fmt.Errorf("upsert calendar settings: %w", err)
	}
	return nil
}
