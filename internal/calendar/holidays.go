package calendar

import (
	"sort"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

// Easter calculates Easter Sunday using the Meeus/Jones/Butcher algorithm.
// Every Easter-relative date in the module derives from this function.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func calcFixed(h *cal.Holiday, year int) time.Time {
	return time.Date(year, h.Month, h.Day, 0, 0, 0, 0, time.UTC)
}

func calcEasterOffset(h *cal.Holiday, year int) time.Time {
	return Easter(year).AddDate(0, 0, h.Offset)
}

func fixed(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{Name: name, Month: month, Day: day, Func: calcFixed}
}

func easterRelative(name string, offset int) *cal.Holiday {
	return &cal.Holiday{Name: name, Offset: offset, Func: calcEasterOffset}
}

var (
	NewYear          = fixed("Nowy Rok", time.January, 1)
	Epiphany         = fixed("Trzech Króli", time.January, 6)
	EasterSunday     = easterRelative("Wielkanoc", 0)
	EasterMonday     = easterRelative("Poniedziałek Wielkanocny", 1)
	LabourDay        = fixed("Święto Pracy", time.May, 1)
	ConstitutionDay  = fixed("Święto Konstytucji 3 Maja", time.May, 3)
	CorpusChristi    = easterRelative("Boże Ciało", 60)
	Assumption       = fixed("Wniebowzięcie NMP", time.August, 15)
	AllSaints        = fixed("Wszystkich Świętych", time.November, 1)
	IndependenceDay  = fixed("Narodowe Święto Niepodległości", time.November, 11)
	ChristmasDay     = fixed("Boże Narodzenie", time.December, 25)
	SecondChristmas  = fixed("Drugi Dzień Bożego Narodzenia", time.December, 26)
	publicHolidays   = []*cal.Holiday{NewYear, Epiphany, EasterSunday, EasterMonday, LabourDay, ConstitutionDay, CorpusChristi, Assumption, AllSaints, IndependenceDay, ChristmasDay, SecondChristmas}
	businessCalendar = newBusinessCalendar()
)

func newBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(publicHolidays...)
	return c
}

// Holidays returns the public holidays of year ordered by date.
func Holidays(year int) []models.Holiday {
	out := make([]models.Holiday, 0, len(publicHolidays))
	for _, h := range publicHolidays {
		out = append(out, models.Holiday{
			Date:  h.Func(h, year),
			Name:  h.Name,
			Fixed: h.Month != 0,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// IsHoliday reports named holidays by name and every Sunday as an unnamed holiday.
func IsHoliday(date time.Time) models.HolidayInfo {
	if actual, _, h := businessCalendar.IsHoliday(civil(date)); actual && h != nil {
		return models.HolidayInfo{Name: h.Name, IsHoliday: true}
	}
	if date.Weekday() == time.Sunday {
		return models.HolidayInfo{IsHoliday: true}
	}
	return models.HolidayInfo{}
}

// IsNamedHoliday is IsHoliday without the Sunday rule.
func IsNamedHoliday(date time.Time) bool {
	return IsHoliday(date).Name != ""
}

func IsEasterSunday(date time.Time) bool {
	return SameDay(date, Easter(date.Year()))
}

func IsEasterMonday(date time.Time) bool {
	return SameDay(date, Easter(date.Year()).AddDate(0, 0, 1))
}

func IsHolySaturday(date time.Time) bool {
	return SameDay(date, Easter(date.Year()).AddDate(0, 0, -1))
}

func IsChristmasEve(date time.Time) bool {
	return IsSpecificDate(date, time.December, 24)
}

func IsNewYearsEve(date time.Time) bool {
	return IsSpecificDate(date, time.December, 31)
}

func IsSpecificDate(date time.Time, month time.Month, day int) bool {
	return date.Month() == month && date.Day() == day
}
