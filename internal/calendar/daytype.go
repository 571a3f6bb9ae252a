package calendar

import (
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

var weekdayTypes = map[time.Weekday]models.DayType{
	time.Monday:    models.Monday,
	time.Tuesday:   models.Tuesday,
	time.Wednesday: models.Wednesday,
	time.Thursday:  models.Thursday,
	time.Friday:    models.Friday,
	time.Saturday:  models.Saturday,
	time.Sunday:    models.Sunday,
}

// ClassifyDayFilterBucket maps a date to its timetable column.
// Saturday wins over a named holiday falling on it.
func ClassifyDayFilterBucket(date time.Time) models.DayFilter {
	switch {
	case date.Weekday() == time.Saturday:
		return models.Saturdays
	case date.Weekday() == time.Sunday, IsNamedHoliday(date):
		return models.SundaysAndHolidays
	default:
		return models.Workdays
	}
}

// ClassifyWeekday is used for worship-service lookups, not for bus applicability.
func ClassifyWeekday(date time.Time) models.DayType {
	if IsNamedHoliday(date) {
		return models.HolidayDT
	}
	return weekdayTypes[date.Weekday()]
}

// Classify collects every calendar fact about date.
func Classify(date time.Time) models.DayInfo {
	return models.DayInfo{
		Date:      DateOf(date),
		Holiday:   IsHoliday(date),
		Bucket:    ClassifyDayFilterBucket(date),
		DayType:   ClassifyWeekday(date),
		SchoolDay: IsSchoolDay(date),
		Break:     IsSchoolBreak(date),
	}
}
