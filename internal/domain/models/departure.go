package models

import "time"

type DepartureView struct {
	Entry           ScheduleEntry
	MinutesUntil    int
	DepartureMinute int
	FromTomorrow    bool
	ReportCount     int
}

type DepartureWindow struct {
	Departures             []DepartureView
	TodayRemainingCount    int
	IsTomorrow             bool
	TomorrowOnly           bool
	TomorrowAvailableCount int
	SearchActive           bool
}

type LegendEntry struct {
	Symbol      string
	Description string
}

type DepartureBoard struct {
	Window DepartureWindow
	Legend []LegendEntry
	Notice string
	At     time.Time
}
