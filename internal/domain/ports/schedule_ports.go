package ports

import (
	"context"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

type ScheduleRepository interface {
	ListSchedules(ctx context.Context) ([]models.ScheduleEntry, error)
	GetSchedule(ctx context.Context, id models.ScheduleID) (models.ScheduleEntry, error)
}

type CatalogueCache interface {
	GetCatalogue(ctx context.Context) ([]models.ScheduleEntry, error)
	SetCatalogue(ctx context.Context, entries []models.ScheduleEntry, ttl time.Duration) error
}

type CalendarSettingsRepository interface {
	GetOverrides(ctx context.Context) (models.CalendarOverrides, error)
	SaveOverrides(ctx context.Context, overrides models.CalendarOverrides) error
}

type MassRepository interface {
	ListParishes(ctx context.Context) ([]models.Parish, error)
	ListMassSchedules(ctx context.Context) ([]models.MassSchedule, error)
	ListMassExceptions(ctx context.Context, from, to time.Time) ([]models.MassException, error)
}
