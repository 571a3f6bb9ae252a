package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"go.uber.org/zap"
)

type calendarReader interface {
	Today() time.Time
	Holidays(year int) []models.Holiday
	Day(ctx context.Context, date time.Time) (models.DayInfo, error)
	Overrides(ctx context.Context) (models.CalendarOverrides, error)
	UpdateOverrides(ctx context.Context, forceHoliday, forceBreak bool) (models.CalendarOverrides, error)
}

type CalendarHandler struct {
	log     *zap.Logger
	service calendarReader
	loc     *time.Location
	timeout time.Duration
}

type holidayResponse struct {
	Date  string `json:"date"`
	Name  string `json:"name"`
	Fixed bool   `json:"fixed"`
}

type dayResponse struct {
	Date        string `json:"date"`
	IsHoliday   bool   `json:"is_holiday"`
	HolidayName string `json:"holiday_name,omitempty"`
	DayFilter   string `json:"day_filter"`
	DayType     string `json:"day_type"`
	SchoolDay   bool   `json:"school_day"`
	IsBreak     bool   `json:"is_break"`
	BreakName   string `json:"break_name,omitempty"`
	Notice      string `json:"notice,omitempty"`
}

type overridesPayload struct {
	ForceHolidayMode bool   `json:"force_holiday_mode"`
	ForceBreakMode   bool   `json:"force_break_mode"`
	UpdatedAt        string `json:"updated_at,omitempty"`
}

func NewCalendarHandler(log *zap.Logger, service calendarReader, loc *time.Location, timeout time.Duration) *CalendarHandler {
	return &CalendarHandler{log: log, service: service, loc: loc, timeout: timeout}
}

func (h *CalendarHandler) GetHolidays(w http.ResponseWriter, r *http.Request) {
	year, present, errMsg := parsePositiveIntQuery(r, "year")
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	if !present {
		year = h.service.Today().Year()
	}

	holidays := h.service.Holidays(year)
	out := make([]holidayResponse, 0, len(holidays))
	for _, hd := range holidays {
		out = append(out, holidayResponse{
			Date:  hd.Date.Format(time.DateOnly),
			Name:  hd.Name,
			Fixed: hd.Fixed,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year":     year,
		"holidays": out,
	})
}

func (h *CalendarHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, errMsg := parseDateQuery(r, "date", h.loc)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	if date.IsZero() {
		date = h.service.Today()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	info, err := h.service.Day(ctx, date)
	if err != nil {
		h.log.Error("classify day failed", zap.Error(err))
		writeError(w, statusFor(err), "calendar unavailable")
		return
	}

	writeJSON(w, http.StatusOK, dayResponse{
		Date:        date.Format(time.DateOnly),
		IsHoliday:   info.Holiday.IsHoliday,
		HolidayName: info.Holiday.Name,
		DayFilter:   info.Bucket.String(),
		DayType:     string(info.DayType),
		SchoolDay:   info.SchoolDay,
		IsBreak:     info.Break.IsBreak,
		BreakName:   info.Break.PeriodName,
		Notice:      info.Notice,
	})
}

func (h *CalendarHandler) GetOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, err := h.service.Overrides(ctx)
	if err != nil {
		h.log.Error("load overrides failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "calendar settings unavailable")
		return
	}
	writeJSON(w, http.StatusOK, mapOverrides(o))
}

func (h *CalendarHandler) UpdateOverrides(w http.ResponseWriter, r *http.Request) {
	var req overridesPayload
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, err := h.service.UpdateOverrides(ctx, req.ForceHolidayMode, req.ForceBreakMode)
	if err != nil {
		h.log.Error("update overrides failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "calendar settings update failed")
		return
	}
	writeJSON(w, http.StatusOK, mapOverrides(o))
}

func mapOverrides(o models.CalendarOverrides) overridesPayload {
	out := overridesPayload{
		ForceHolidayMode: o.ForceHoliday,
		ForceBreakMode:   o.ForceBreak,
	}
	if !o.UpdatedAt.IsZero() {
		out.UpdatedAt = o.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return out
}
