package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"go.uber.org/zap"
)

func (r *Repository) ListParishes(ctx context.Context) ([]models.Parish, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, address FROM parishes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query parishes: %w", err)
	}
	defer rows.Close()

	var parishes []models.Parish
	for rows.Next() {
		var (
			id string
			p  models.Parish
		)
		if err := rows.Scan(&id, &p.Name, &p.Address); err != nil {
			return nil, fmt.Errorf("scan parish: %w", err)
		}
		p.ID = models.ParishID(id)
		parishes = append(parishes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parishes: %w", err)
	}
	return parishes, nil
}

func (r *Repository) ListMassSchedules(ctx context.Context) ([]models.MassSchedule, error) {
	const query = `
		SELECT parish_id, day_type, time, title, duration_minutes
		FROM mass_schedules
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query mass schedules: %w", err)
	}
	defer rows.Close()

	var out []models.MassSchedule
	for rows.Next() {
		var (
			parishID, dayType, rawTime string
			m                          models.MassSchedule
		)
		if err := rows.Scan(&parishID, &dayType, &rawTime, &m.Title, &m.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan mass schedule: %w", err)
		}
		t, err := codec.ParseClockTime(rawTime)
		if err != nil {
			r.log.Warn("skipping malformed mass schedule", zap.String("parish_id", parishID), zap.Error(err))
			continue
		}
		m.ParishID = models.ParishID(parishID)
		m.DayType = models.DayType(dayType)
		m.Time = t
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mass schedules: %w", err)
	}
	return out, nil
}

// ListMassExceptions returns exceptions dated from..to, both inclusive.
func (r *Repository) ListMassExceptions(ctx context.Context, from, to time.Time) ([]models.MassException, error) {
	const query = `
		SELECT parish_id, date, time, title, duration_minutes
		FROM mass_schedule_exceptions
		WHERE date BETWEEN $1::date AND $2::date
	`

	rows, err := r.db.Query(ctx, query, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("query mass exceptions: %w", err)
	}
	defer rows.Close()

	var out []models.MassException
	for rows.Next() {
		var (
			parishID, rawTime string
			e                 models.MassException
		)
		if err := rows.Scan(&parishID, &e.Date, &rawTime, &e.Title, &e.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan mass exception: %w", err)
		}
		t, err := codec.ParseClockTime(rawTime)
		if err != nil {
			r.log.Warn("skipping malformed mass exception", zap.String("parish_id", parishID), zap.Error(err))
			continue
		}
		e.ParishID = models.ParishID(parishID)
		e.Time = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mass exceptions: %w", err)
	}
	return out, nil
}
