package calendar

import (
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

// BreakPeriods returns the school breaks of year. Periods are disjoint.
func BreakPeriods(year int) []models.BreakPeriod {
	return []models.BreakPeriod{
		{
			Start: time.Date(year, time.January, 20, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.February, 2, 0, 0, 0, 0, time.UTC),
			Name:  "Ferie zimowe (woj. mazowieckie)",
		},
		{
			Start: time.Date(year, time.June, 21, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.August, 31, 0, 0, 0, 0, time.UTC),
			Name:  "Wakacje letnie",
		},
	}
}

// IsSchoolBreak returns the first break period containing date, bounds inclusive.
func IsSchoolBreak(date time.Time) models.BreakInfo {
	key := dateKey(date)
	for _, p := range BreakPeriods(date.Year()) {
		if key >= dateKey(p.Start) && key <= dateKey(p.End) {
			return models.BreakInfo{IsBreak: true, PeriodName: p.Name}
		}
	}
	return models.BreakInfo{}
}

func IsSchoolDay(date time.Time) bool {
	if IsHoliday(date).IsHoliday {
		return false
	}
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !IsSchoolBreak(date).IsBreak
}
