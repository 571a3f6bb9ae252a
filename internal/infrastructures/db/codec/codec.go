// Package codec converts stored schedule rows to domain entries and back.
package codec

import (
	"fmt"
	"strconv"
	"strings"

	domainErrors "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

// RawSchedule mirrors one bus_schedules row as stored.
type RawSchedule struct {
	ID            string
	RouteCategory string
	Destination   string
	Via           string
	DepartureTime string
	DayFilter     string
	Symbols       string
	Cancelled     bool
}

var dayFilterTokens = map[string]models.DayFilter{
	"WORKDAYS":         models.Workdays,
	"SATURDAYS":        models.Saturdays,
	"SUNDAYS_HOLIDAYS": models.SundaysAndHolidays,
}

// ParseDayFilterSet parses a comma-separated column list such as "WORKDAYS,SATURDAYS".
func ParseDayFilterSet(raw string) (models.DayFilterSet, error) {
	var set models.DayFilterSet
	for _, part := range strings.Split(raw, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		f, ok := dayFilterTokens[strings.ToUpper(token)]
		if !ok {
			return 0, fmt.Errorf("%w: %q", domainErrors.ErrUnknownDayFilter, token)
		}
		set |= models.NewDayFilterSet(f)
	}
	if set.IsEmpty() {
		return 0, domainErrors.ErrEmptyDayFilter
	}
	return set, nil
}

func FormatDayFilterSet(set models.DayFilterSet) string {
	return set.String()
}

// ParseClockTime accepts HH:MM and HH:MM:SS; seconds are dropped.
func ParseClockTime(raw string) (models.ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return models.ClockTime{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidDepartureTime, raw)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return models.ClockTime{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidDepartureTime, raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return models.ClockTime{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidDepartureTime, raw)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return models.ClockTime{}, fmt.Errorf("%w: %q", domainErrors.ErrInvalidDepartureTime, raw)
		}
	}

	return models.ClockTime{Hour: hour, Minute: minute}, nil
}

func FormatClockTime(t models.ClockTime) string {
	return t.String()
}

func ParseRouteCategory(raw string) (models.RouteCategory, error) {
	switch models.RouteCategory(strings.ToUpper(strings.TrimSpace(raw))) {
	case models.RoutePKS:
		return models.RoutePKS, nil
	case models.RouteBusy:
		return models.RouteBusy, nil
	default:
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidRouteCategory, raw)
	}
}

func DecodeSchedule(raw RawSchedule) (models.ScheduleEntry, error) {
	route, err := ParseRouteCategory(raw.RouteCategory)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("schedule %s: %w", raw.ID, err)
	}
	dep, err := ParseClockTime(raw.DepartureTime)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("schedule %s: %w", raw.ID, err)
	}
	days, err := ParseDayFilterSet(raw.DayFilter)
	if err != nil {
		return models.ScheduleEntry{}, fmt.Errorf("schedule %s: %w", raw.ID, err)
	}

	return models.ScheduleEntry{
		ID:          models.ScheduleID(raw.ID),
		Route:       route,
		Destination: raw.Destination,
		Via:         raw.Via,
		Departure:   dep,
		Days:        days,
		Symbols:     raw.Symbols,
		Cancelled:   raw.Cancelled,
	}, nil
}

func EncodeSchedule(e models.ScheduleEntry) RawSchedule {
	return RawSchedule{
		ID:            string(e.ID),
		RouteCategory: string(e.Route),
		Destination:   e.Destination,
		Via:           e.Via,
		DepartureTime: FormatClockTime(e.Departure),
		DayFilter:     FormatDayFilterSet(e.Days),
		Symbols:       e.Symbols,
		Cancelled:     e.Cancelled,
	}
}
