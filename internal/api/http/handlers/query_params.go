package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
)

func parsePositiveIntQuery(r *http.Request, key string) (value int, present bool, errMsg string) {
	raw, present := lookupQuery(r, key)
	if !present {
		return 0, false, ""
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return 0, true, key + " must be a positive integer"
	}
	return parsed, true, ""
}

// parseBoolQuery treats a bare key (?show_all) as true.
func parseBoolQuery(r *http.Request, key string) (value bool, errMsg string) {
	values, ok := r.URL.Query()[key]
	if !ok {
		return false, ""
	}
	raw := strings.TrimSpace(values[0])
	if raw == "" {
		return true, ""
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, key + " must be a boolean"
	}
	return parsed, ""
}

// parseInstantQuery accepts RFC3339; a missing key yields the zero time.
func parseInstantQuery(r *http.Request, key string) (value time.Time, errMsg string) {
	raw, present := lookupQuery(r, key)
	if !present {
		return time.Time{}, ""
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, key + " must be an RFC3339 timestamp"
	}
	return parsed, ""
}

// parseDateQuery accepts YYYY-MM-DD in loc; a missing key yields the zero time.
func parseDateQuery(r *http.Request, key string, loc *time.Location) (value time.Time, errMsg string) {
	raw, present := lookupQuery(r, key)
	if !present {
		return time.Time{}, ""
	}
	parsed, err := calendar.ParseDate(raw, loc)
	if err != nil {
		return time.Time{}, key + " must be a date in YYYY-MM-DD format"
	}
	return parsed, ""
}

func lookupQuery(r *http.Request, key string) (string, bool) {
	values, ok := r.URL.Query()[key]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(values[0]), true
}
