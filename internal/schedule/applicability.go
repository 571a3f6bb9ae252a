// Package schedule decides which departures run on a date and builds the board window.
package schedule

import (
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/symbols"
)

const reasonWrongColumn = "Kurs nie jest w odpowiedniej kolumnie rozkładu dla tego dnia"

type Decision struct {
	Visible bool
	Reason  string
}

// Bucket is the timetable column in force on date; forced holiday mode means the holiday column.
func Bucket(date time.Time, overrides models.CalendarOverrides) models.DayFilter {
	if overrides.ForceHoliday {
		return models.SundaysAndHolidays
	}
	return calendar.ClassifyDayFilterBucket(date)
}

// InColumn reports whether an entry printed in days belongs to date's timetable column.
// A named holiday on a Saturday also admits the holiday column.
func InColumn(days models.DayFilterSet, date time.Time, overrides models.CalendarOverrides) bool {
	if days.Contains(Bucket(date, overrides)) {
		return true
	}
	return calendar.IsNamedHoliday(date) && days.Contains(models.SundaysAndHolidays)
}

// Evaluate decides whether entry runs on date.
// Cancelled entries stay listed. The column gate runs before any symbol rule.
func Evaluate(entry models.ScheduleEntry, date time.Time, overrides models.CalendarOverrides) Decision {
	if entry.Cancelled {
		return Decision{Visible: true}
	}

	if !InColumn(entry.Days, date, overrides) {
		return Decision{Reason: reasonWrongColumn}
	}

	return fromVerdict(symbols.Evaluate(symbols.Tokenize(entry.Symbols), date, overrides))
}

func fromVerdict(v symbols.Verdict) Decision {
	return Decision{Visible: !v.Hidden, Reason: v.Reason}
}
