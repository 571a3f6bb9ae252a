package schedule

import (
	"fmt"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

// NoCoursesMessage is the board notice for days on which part of the timetable does not run.
func NoCoursesMessage(date time.Time, overrides models.CalendarOverrides) string {
	if overrides.ForceHoliday {
		return "Wymuszony tryb świąteczny. Większość kursów nie jest realizowana."
	}
	if overrides.ForceBreak {
		return "Wymuszony tryb feryjny. Kursy szkolne nie są realizowane."
	}

	holiday := calendar.IsHoliday(date)
	switch {
	case holiday.Name != "":
		return fmt.Sprintf("Dzisiaj jest %s. Część kursów nie jest realizowana.", holiday.Name)
	case holiday.IsHoliday:
		return "Dzisiaj jest niedziela. Część kursów nie jest realizowana."
	case date.Weekday() == time.Saturday:
		return "Dzisiaj jest sobota. Część kursów nie jest realizowana."
	}

	if brk := calendar.IsSchoolBreak(date); brk.IsBreak {
		return fmt.Sprintf("%s. Kursy szkolne nie są realizowane.", brk.PeriodName)
	}
	return ""
}
