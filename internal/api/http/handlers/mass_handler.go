package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"go.uber.org/zap"
)

type massLister interface {
	Today(ctx context.Context, at time.Time) ([]models.ParishMasses, error)
}

type MassHandler struct {
	log     *zap.Logger
	service massLister
	timeout time.Duration
}

type massSlotResponse struct {
	Time            string `json:"time"`
	Title           string `json:"title,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	Status          string `json:"status"`
	Exception       bool   `json:"exception"`
}

type parishMassesResponse struct {
	ParishID          string             `json:"parish_id"`
	Name              string             `json:"name"`
	Address           string             `json:"address,omitempty"`
	Today             []massSlotResponse `json:"today"`
	TomorrowFirstMass string             `json:"tomorrow_first_mass,omitempty"`
}

func NewMassHandler(log *zap.Logger, service massLister, timeout time.Duration) *MassHandler {
	return &MassHandler{log: log, service: service, timeout: timeout}
}

func (h *MassHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	at, errMsg := parseInstantQuery(r, "at")
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	parishes, err := h.service.Today(ctx, at)
	if err != nil {
		h.log.Error("list masses failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "masses unavailable")
		return
	}

	out := make([]parishMassesResponse, 0, len(parishes))
	for _, p := range parishes {
		item := parishMassesResponse{
			ParishID: string(p.Parish.ID),
			Name:     p.Parish.Name,
			Address:  p.Parish.Address,
			Today:    make([]massSlotResponse, 0, len(p.Today)),
		}
		for _, s := range p.Today {
			item.Today = append(item.Today, massSlotResponse{
				Time:            s.Time.String(),
				Title:           s.Title,
				DurationMinutes: s.DurationMinutes,
				Status:          string(s.Status),
				Exception:       s.Exception,
			})
		}
		if p.TomorrowFirstMass != nil {
			item.TomorrowFirstMass = p.TomorrowFirstMass.String()
		}
		out = append(out, item)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"parishes": out})
}
