package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

const minutesPerDay = 24 * 60

type WindowOptions struct {
	ShowAll           bool
	Query             string
	Overrides         models.CalendarOverrides
	DisplayCount      int
	PastLimit         int
	PastWindowMinutes int
	ReportCounts      map[models.ScheduleID]int
}

func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		DisplayCount:      7,
		PastLimit:         3,
		PastWindowMinutes: 30,
	}
}

// BuildWindow assembles the departures shown at now. It reads now's wall clock
// as-is, so callers pass now already in the board's timezone.
func BuildWindow(catalogue []models.ScheduleEntry, now time.Time, opts WindowOptions) models.DepartureWindow {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	searchActive := query != ""
	nowMinute := now.Hour()*60 + now.Minute()

	today := eligible(catalogue, now, query, opts, func(dep int) int { return dep - nowMinute })
	tomorrow := eligible(catalogue, now.AddDate(0, 0, 1), query, opts, func(dep int) int { return minutesPerDay - nowMinute + dep })
	for i := range tomorrow {
		tomorrow[i].FromTomorrow = true
	}

	window := models.DepartureWindow{
		SearchActive:           searchActive,
		TomorrowAvailableCount: len(tomorrow),
	}

	if opts.ShowAll || searchActive {
		extra := excluding(tomorrow, today)
		list := make([]models.DepartureView, 0, len(today)+len(extra))
		list = append(list, today...)
		list = append(list, extra...)
		sortByMinutesUntil(list)

		window.Departures = list
		window.IsTomorrow = len(today) == 0 && len(extra) > 0
		window.TomorrowOnly = window.IsTomorrow
		return window
	}

	recent := make([]models.DepartureView, 0, len(today))
	for _, v := range today {
		if v.MinutesUntil >= -opts.PastWindowMinutes {
			recent = append(recent, v)
		}
	}

	var past, future []models.DepartureView
	for _, v := range recent {
		if v.MinutesUntil < 0 {
			past = append(past, v)
		} else {
			future = append(future, v)
		}
	}

	if len(past) > opts.PastLimit {
		past = past[len(past)-opts.PastLimit:]
	}
	slots := max(opts.DisplayCount-len(past), 0)
	upcoming := future[:min(slots, len(future))]

	shown := make([]models.DepartureView, 0, opts.DisplayCount)
	shown = append(shown, past...)
	shown = append(shown, upcoming...)
	window.TodayRemainingCount = len(future) - len(upcoming)

	if need := opts.DisplayCount - len(shown); need > 0 {
		extra := excluding(tomorrow, shown)
		fill := extra[:min(need, len(extra))]

		window.IsTomorrow = len(shown) == 0 && len(fill) > 0
		window.TomorrowOnly = len(shown) == 0 && len(extra) > 0
		shown = append(shown, fill...)
	}

	window.Departures = shown
	return window
}

// eligible returns the entries running on date that match query, in departure order.
func eligible(catalogue []models.ScheduleEntry, date time.Time, query string, opts WindowOptions, until func(dep int) int) []models.DepartureView {
	out := make([]models.DepartureView, 0, len(catalogue))
	for _, e := range catalogue {
		if !matches(e, query) {
			continue
		}
		if !Evaluate(e, date, opts.Overrides).Visible {
			continue
		}

		dep := e.Departure.MinuteOfDay()
		out = append(out, models.DepartureView{
			Entry:           e,
			MinutesUntil:    until(dep),
			DepartureMinute: dep,
			ReportCount:     opts.ReportCounts[e.ID],
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DepartureMinute < out[j].DepartureMinute
	})
	return out
}

func matches(e models.ScheduleEntry, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Destination), query) ||
		strings.Contains(strings.ToLower(e.Via), query)
}

func excluding(views, present []models.DepartureView) []models.DepartureView {
	ids := make(map[models.ScheduleID]struct{}, len(present))
	for _, v := range present {
		ids[v.Entry.ID] = struct{}{}
	}

	out := make([]models.DepartureView, 0, len(views))
	for _, v := range views {
		if _, ok := ids[v.Entry.ID]; !ok {
			out = append(out, v)
		}
	}
	return out
}

func sortByMinutesUntil(views []models.DepartureView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].MinutesUntil < views[j].MinutesUntil
	})
}
