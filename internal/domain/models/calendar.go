package models

import "time"

// CalendarOverrides is the operator's manual correction of the computed calendar.
type CalendarOverrides struct {
	ForceHoliday bool
	ForceBreak   bool
	UpdatedAt    time.Time
}

type HolidayInfo struct {
	Name      string
	IsHoliday bool
}

type Holiday struct {
	Date  time.Time
	Name  string
	Fixed bool
}

type BreakPeriod struct {
	Start time.Time
	End   time.Time
	Name  string
}

type BreakInfo struct {
	IsBreak    bool
	PeriodName string
}

type DayType string

const (
	Monday    DayType = "monday"
	Tuesday   DayType = "tuesday"
	Wednesday DayType = "wednesday"
	Thursday  DayType = "thursday"
	Friday    DayType = "friday"
	Saturday  DayType = "saturday"
	Sunday    DayType = "sunday"
	HolidayDT DayType = "holiday"
)

// DayInfo is the full calendar classification of a single date.
type DayInfo struct {
	Date      time.Time
	Holiday   HolidayInfo
	Bucket    DayFilter
	DayType   DayType
	SchoolDay bool
	Break     BreakInfo
	Notice    string
}
