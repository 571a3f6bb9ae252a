package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps domain sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, derr.ErrScheduleNotFound):
		return http.StatusNotFound
	case errors.Is(err, derr.ErrReportThrottled):
		return http.StatusTooManyRequests
	case errors.Is(err, derr.ErrReportWindowClosed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, derr.ErrInvalidDate), errors.Is(err, derr.ErrInvalidFingerprint):
		return http.StatusBadRequest
	case errors.Is(err, derr.ErrEmptyDayFilter), errors.Is(err, derr.ErrUnknownDayFilter):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
