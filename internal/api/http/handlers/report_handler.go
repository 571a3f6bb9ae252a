package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/application/service"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/delay"
	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"go.uber.org/zap"
)

const maxReportBodyBytes = 4 << 10

type reportSubmitter interface {
	Submit(ctx context.Context, id models.ScheduleID, fingerprint string) (models.DelayReport, error)
	Eligibility(ctx context.Context, id models.ScheduleID, fingerprint string, at time.Time) models.ReportEligibility
	Clear(ctx context.Context, id models.ScheduleID) (int64, error)
	ThrottledReason() string
}

type ReportHandler struct {
	log     *zap.Logger
	service reportSubmitter
	timeout time.Duration
}

type submitReportRequest struct {
	ScheduleID  string `json:"schedule_id"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

type submitReportResponse struct {
	ID         string `json:"id"`
	ScheduleID string `json:"schedule_id"`
	ReportedAt string `json:"reported_at"`
	Message    string `json:"message"`
}

type eligibilityResponse struct {
	ScheduleID string `json:"schedule_id"`
	Eligible   bool   `json:"eligible"`
	Reason     string `json:"reason,omitempty"`
}

func NewReportHandler(log *zap.Logger, service reportSubmitter, timeout time.Duration) *ReportHandler {
	return &ReportHandler{log: log, service: service, timeout: timeout}
}

func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReportRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxReportBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	scheduleID := strings.TrimSpace(req.ScheduleID)
	if scheduleID == "" {
		writeError(w, http.StatusBadRequest, "schedule_id is required")
		return
	}

	fingerprint, err := resolveFingerprint(r, req.Fingerprint)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fingerprint")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	report, err := h.service.Submit(ctx, models.ScheduleID(scheduleID), fingerprint)
	if err != nil {
		var windowErr *service.ReportWindowError
		switch {
		case errors.As(err, &windowErr):
			writeError(w, http.StatusUnprocessableEntity, windowErr.Message)
		case errors.Is(err, derr.ErrReportThrottled):
			writeError(w, http.StatusTooManyRequests, h.service.ThrottledReason())
		case errors.Is(err, derr.ErrScheduleNotFound):
			writeError(w, http.StatusNotFound, "schedule not found")
		default:
			h.log.Error("submit report failed", zap.Error(err), zap.String("schedule_id", scheduleID))
			writeError(w, http.StatusInternalServerError, service.ReportFailedMessage)
		}
		return
	}

	writeJSON(w, http.StatusCreated, submitReportResponse{
		ID:         report.ID,
		ScheduleID: string(report.ScheduleID),
		ReportedAt: report.ReportedAt.UTC().Format(time.RFC3339),
		Message:    service.ReportAcceptedMessage,
	})
}

func (h *ReportHandler) Eligibility(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	fingerprint, err := resolveFingerprint(r, r.URL.Query().Get("fingerprint"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid fingerprint")
		return
	}
	at, errMsg := parseInstantQuery(r, "at")
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	e := h.service.Eligibility(ctx, models.ScheduleID(scheduleID), fingerprint, at)
	writeJSON(w, http.StatusOK, eligibilityResponse{
		ScheduleID: scheduleID,
		Eligible:   e.Eligible,
		Reason:     e.Reason,
	})
}

func (h *ReportHandler) Clear(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "id")
	if scheduleID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	n, err := h.service.Clear(ctx, models.ScheduleID(scheduleID))
	if err != nil {
		h.log.Error("clear reports failed", zap.Error(err), zap.String("schedule_id", scheduleID))
		writeError(w, http.StatusInternalServerError, "clear reports failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"schedule_id": scheduleID,
		"deleted":     n,
	})
}

// resolveFingerprint prefers an explicit client value and otherwise derives
// one from the request's browser traits.
func resolveFingerprint(r *http.Request, explicit string) (string, error) {
	if strings.TrimSpace(explicit) != "" {
		return delay.NormalizeFingerprint(explicit)
	}
	return delay.Fingerprint(
		r.Header.Get("User-Agent"),
		r.Header.Get("Accept-Language"),
		r.Header.Get("Sec-CH-UA"),
		r.Header.Get("Sec-CH-UA-Platform"),
		r.Header.Get("Sec-CH-UA-Mobile"),
	), nil
}
