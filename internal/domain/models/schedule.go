package models

import (
	"fmt"
	"strings"
)

type ScheduleID string

type RouteCategory string

const (
	RoutePKS  RouteCategory = "PKS"
	RouteBusy RouteCategory = "BUSY"
)

// DayFilter is one printed timetable column.
type DayFilter uint8

const (
	Workdays DayFilter = 1 << iota
	Saturdays
	SundaysAndHolidays
)

var dayFilterNames = map[DayFilter]string{
	Workdays:           "WORKDAYS",
	Saturdays:          "SATURDAYS",
	SundaysAndHolidays: "SUNDAYS_HOLIDAYS",
}

func (f DayFilter) String() string {
	if name, ok := dayFilterNames[f]; ok {
		return name
	}
	return fmt.Sprintf("DayFilter(%d)", uint8(f))
}

// DayFilterSet is a bit set of DayFilter columns.
type DayFilterSet uint8

func NewDayFilterSet(filters ...DayFilter) DayFilterSet {
	var s DayFilterSet
	for _, f := range filters {
		s |= DayFilterSet(f)
	}
	return s
}

func (s DayFilterSet) Contains(f DayFilter) bool {
	return s&DayFilterSet(f) != 0
}

func (s DayFilterSet) IsEmpty() bool {
	return s&DayFilterSet(Workdays|Saturdays|SundaysAndHolidays) == 0
}

// Filters returns the members in column order.
func (s DayFilterSet) Filters() []DayFilter {
	out := make([]DayFilter, 0, 3)
	for _, f := range []DayFilter{Workdays, Saturdays, SundaysAndHolidays} {
		if s.Contains(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s DayFilterSet) String() string {
	filters := s.Filters()
	names := make([]string, 0, len(filters))
	for _, f := range filters {
		names = append(names, f.String())
	}
	return strings.Join(names, ",")
}

// ClockTime is a wall-clock time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

func (t ClockTime) MinuteOfDay() int {
	return t.Hour*60 + t.Minute
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

type ScheduleEntry struct {
	ID          ScheduleID
	Route       RouteCategory
	Destination string
	Via         string
	Departure   ClockTime
	Days        DayFilterSet
	Symbols     string
	Cancelled   bool
}
