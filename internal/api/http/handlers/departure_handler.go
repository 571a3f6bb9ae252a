package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/application/service"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
	"go.uber.org/zap"
)

type departureBoard interface {
	Board(ctx context.Context, q service.BoardQuery) (models.DepartureBoard, error)
	Applicability(ctx context.Context, id models.ScheduleID, date time.Time) (models.ScheduleEntry, schedule.Decision, error)
	Location() *time.Location
	Now(at time.Time) time.Time
}

type DepartureHandler struct {
	log     *zap.Logger
	service departureBoard
	timeout time.Duration
}

type departureResponse struct {
	ID              string `json:"id"`
	RouteType       string `json:"route_type"`
	Destination     string `json:"destination"`
	Via             string `json:"via,omitempty"`
	DepartureTime   string `json:"departure_time"`
	MinutesUntil    int    `json:"minutes_until"`
	DepartureMinute int    `json:"departure_minute"`
	FromTomorrow    bool   `json:"from_tomorrow"`
	Cancelled       bool   `json:"cancelled"`
	Symbols         string `json:"symbols,omitempty"`
	TimeUntil       string `json:"time_until"`
	ReportCount     int    `json:"report_count"`
	ReportStatus    string `json:"report_status"`
	ReportMessage   string `json:"report_message,omitempty"`
	CanReport       bool   `json:"can_report"`
	ReportBlocked   string `json:"report_blocked_reason,omitempty"`
}

type legendResponse struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

type boardResponse struct {
	At                     string              `json:"at"`
	Departures             []departureResponse `json:"departures"`
	TodayRemainingCount    int                 `json:"today_remaining_count"`
	TomorrowOnly           bool                `json:"tomorrow_only"`
	IsTomorrow             bool                `json:"is_tomorrow"`
	TomorrowAvailableCount int                 `json:"tomorrow_available_count"`
	SearchActive           bool                `json:"search_active"`
	Notice                 string              `json:"notice,omitempty"`
	Legend                 []legendResponse    `json:"legend"`
}

type applicabilityResponse struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Visible bool   `json:"visible"`
	Reason  string `json:"reason,omitempty"`
}

func NewDepartureHandler(log *zap.Logger, service departureBoard, timeout time.Duration) *DepartureHandler {
	return &DepartureHandler{log: log, service: service, timeout: timeout}
}

func (h *DepartureHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	showAll, errMsg := parseBoolQuery(r, "show_all")
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	at, errMsg := parseInstantQuery(r, "at")
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	board, err := h.service.Board(ctx, service.BoardQuery{
		At:      at,
		ShowAll: showAll,
		Query:   r.URL.Query().Get("q"),
	})
	if err != nil {
		h.log.Error("build board failed", zap.Error(err))
		writeError(w, statusFor(err), "departures unavailable")
		return
	}

	writeJSON(w, http.StatusOK, mapBoard(board))
}

func (h *DepartureHandler) GetApplicability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	loc := h.service.Location()
	date, errMsg := parseDateQuery(r, "date", loc)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	if date.IsZero() {
		date = calendar.DateOf(h.service.Now(time.Time{}))
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	entry, decision, err := h.service.Applicability(ctx, models.ScheduleID(id), date)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			writeError(w, status, "schedule not found")
			return
		}
		h.log.Error("applicability failed", zap.Error(err), zap.String("schedule_id", id))
		writeError(w, status, "applicability unavailable")
		return
	}

	writeJSON(w, http.StatusOK, applicabilityResponse{
		ID:      string(entry.ID),
		Date:    date.Format(time.DateOnly),
		Visible: decision.Visible,
		Reason:  decision.Reason,
	})
}

func mapBoard(b models.DepartureBoard) boardResponse {
	out := boardResponse{
		At:                     b.At.Format(time.RFC3339),
		Departures:             make([]departureResponse, 0, len(b.Window.Departures)),
		TodayRemainingCount:    b.Window.TodayRemainingCount,
		TomorrowOnly:           b.Window.TomorrowOnly,
		IsTomorrow:             b.Window.IsTomorrow,
		TomorrowAvailableCount: b.Window.TomorrowAvailableCount,
		SearchActive:           b.Window.SearchActive,
		Notice:                 b.Notice,
		Legend:                 make([]legendResponse, 0, len(b.Legend)),
	}
	for _, v := range b.Window.Departures {
		out.Departures = append(out.Departures, mapDeparture(v))
	}
	for _, l := range b.Legend {
		out.Legend = append(out.Legend, legendResponse{Symbol: l.Symbol, Description: l.Description})
	}
	return out
}

func mapDeparture(v models.DepartureView) departureResponse {
	canReport := schedule.CanReport(v)
	out := departureResponse{
		ID:              string(v.Entry.ID),
		RouteType:       string(v.Entry.Route),
		Destination:     v.Entry.Destination,
		Via:             v.Entry.Via,
		DepartureTime:   v.Entry.Departure.String(),
		MinutesUntil:    v.MinutesUntil,
		DepartureMinute: v.DepartureMinute,
		FromTomorrow:    v.FromTomorrow,
		Cancelled:       v.Entry.Cancelled,
		Symbols:         v.Entry.Symbols,
		TimeUntil:       schedule.FormatTimeUntil(v.MinutesUntil),
		ReportCount:     v.ReportCount,
		ReportStatus:    string(schedule.StatusForCount(v.ReportCount)),
		ReportMessage:   schedule.StatusMessage(v.ReportCount),
		CanReport:       canReport,
	}
	if !canReport {
		out.ReportBlocked = schedule.BlockedReportMessage(v)
	}
	return out
}
