package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

func (r *Repository) GetOverrides(ctx context.Context) (models.CalendarOverrides, error) {
	const query = `
		SELECT force_holiday_mode, force_break_mode, updated_at
		FROM calendar_settings
		WHERE id = 1
	`

	var o models.CalendarOverrides
	err := r.db.QueryRow(ctx, query).Scan(&o.ForceHoliday, &o.ForceBreak, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CalendarOverrides{}, derr.ErrSettingsNotFound
		}
		return models.CalendarOverrides{}, fmt.Errorf("query calendar settings: %w", err)
	}
	return o, nil
}

func (r *Repository) SaveOverrides(ctx context.Context, o models.CalendarOverrides) error {
	const query = `
		INSERT INTO calendar_settings (id, force_holiday_mode, force_break_mode, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			force_holiday_mode = EXCLUDED.force_holiday_mode,
			force_break_mode = EXCLUDED.force_break_mode,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, o.ForceHoliday, o.ForceBreak, o.UpdatedAt.UTC()); err != nil {
		return fmt.Errorf("upsert calendar settings: %w", err)
	}
	return nil
}
