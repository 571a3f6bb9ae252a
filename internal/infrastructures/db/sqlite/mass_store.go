package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func (s *Store) ListParishes(ctx context.Context) ([]models.Parish, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT id, name, address FROM parishes ORDER BY name`)
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

func (s *Store) ListMassSchedules(ctx context.Context) ([]models.MassSchedule, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT parish_id, day_type, time, title, duration_minutes FROM mass_schedules`)
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
			s.log.Warn("skipping malformed mass schedule", zap.String("parish_id", parishID), zap.Error(err))
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
func (s *Store) ListMassExceptions(ctx context.Context, from, to time.Time) ([]models.MassException, error) {
	const query = `
		SELECT parish_id, date, time, title, duration_minutes
		FROM mass_schedule_exceptions
		WHERE date BETWEEN ? AND ?
	`

	rows, err := s.conn.QueryContext(ctx, query, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query mass exceptions: %w", err)
	}
	defer rows.Close()

	var out []models.MassException
	for rows.Next() {
		var (
			parishID, rawDate, rawTime string
			e                          models.MassException
		)
		if err := rows.Scan(&parishID, &rawDate, &rawTime, &e.Title, &e.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scan mass exception: %w", err)
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			s.log.Warn("skipping mass exception with bad date", zap.String("parish_id", parishID), zap.Error(err))
			continue
		}
		t, err := codec.ParseClockTime(rawTime)
		if err != nil {
			s.log.Warn("skipping malformed mass exception", zap.String("parish_id", parishID), zap.Error(err))
			continue
		}
		e.ParishID = models.ParishID(parishID)
		e.Date = date
		e.Time = t
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mass exceptions: %w", err)
	}
	return out, nil
}

func (s *Store) UpsertParish(ctx context.Context, p models.Parish) error {
	const query = `
		INSERT INTO parishes (id, name, address) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, address = excluded.address
	`

	s.lockWrite()
	defer s.unlockWrite()

	if _, err := s.conn.ExecContext(ctx, query, string(p.ID), p.Name, p.Address); err != nil {
		return fmt.Errorf("upsert parish %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) AddMassSchedule(ctx context.Context, m models.MassSchedule) error {
	const query = `
		INSERT INTO mass_schedules (parish_id, day_type, time, title, duration_minutes)
		VALUES (?, ?, ?, ?, ?)
	`

	s.lockWrite()
	defer s.unlockWrite()

	if _, err := s.conn.ExecContext(ctx, query, string(m.ParishID), string(m.DayType), codec.FormatClockTime(m.Time), m.Title, m.DurationMinutes); err != nil {
		return fmt.Errorf("insert mass schedule: %w", err)
	}
	return nil
}

func (s *Store) AddMassException(ctx context.Context, e models.MassException) error {
	const query = `
		INSERT INTO mass_schedule_exceptions (parish_id, date, time, title, duration_minutes)
		VALUES (?, ?, ?, ?, ?)
	`

	s.lockWrite()
	defer s.unlockWrite()

	if _, err := s.conn.ExecContext(ctx, query, string(e.ParishID), e.Date.Format(dateLayout), codec.FormatClockTime(e.Time), e.Title, e.DurationMinutes); err != nil {
		return fmt.Errorf("insert mass exception: %w", err)
	}
	return nil
}
