package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

var (
	visibleColor = color.New(color.FgGreen, color.Bold)
	hiddenColor  = color.New(color.FgRed)
	headerColor  = color.New(color.FgCyan, color.Bold)
	mutedColor   = color.New(color.Faint)
)

// resolveDate parses YYYY-MM-DD in loc; empty means today.
func resolveDate(raw string, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		y, m, d := time.Now().In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	date, err := calendar.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return date, nil
}

// resolveInstant accepts RFC3339 or "YYYY-MM-DD HH:MM" in loc; empty means now.
func resolveInstant(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now().In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: expected RFC3339 or YYYY-MM-DD HH:MM", raw)
	}
	return t, nil
}

func printVerdict(out io.Writer, visible bool, reason string) {
	if visible {
		visibleColor.Fprintln(out, "visible")
		return
	}
	hiddenColor.Fprintf(out, "hidden: %s\n", reason)
}

func printDeparture(out io.Writer, v models.DepartureView, timeUntil string) {
	line := fmt.Sprintf("%s  %-4s %-24s %s", v.Entry.Departure, v.Entry.Route, v.Entry.Destination, timeUntil)
	if v.Entry.Symbols != "" {
		line += "  [" + v.Entry.Symbols + "]"
	}
	switch {
	case v.Entry.Cancelled:
		hiddenColor.Fprintln(out, line+"  ODWOŁANY")
	case v.FromTomorrow:
		mutedColor.Fprintln(out, line+"  (jutro)")
	default:
		fmt.Fprintln(out, line)
	}
}
