package models

import "time"

type ParishID string

type Parish struct {
	ID      ParishID
	Name    string
	Address string
}

type MassSchedule struct {
	ParishID        ParishID
	DayType         DayType
	Time            ClockTime
	Title           string
	DurationMinutes int
}

type MassException struct {
	ParishID        ParishID
	Date            time.Time
	Time            ClockTime
	Title           string
	DurationMinutes int
}

type MassStatus string

const (
	MassPast     MassStatus = "past"
	MassOngoing  MassStatus = "ongoing"
	MassUpcoming MassStatus = "upcoming"
)

type MassSlot struct {
	Time            ClockTime
	Title           string
	DurationMinutes int
	Status          MassStatus
	Exception       bool
}

type ParishMasses struct {
	Parish            Parish
	Today             []MassSlot
	TomorrowFirstMass *ClockTime
}
