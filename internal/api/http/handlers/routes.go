package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Departures *DepartureHandler
	Reports    *ReportHandler
	Calendar   *CalendarHandler
	Masses     *MassHandler
}

// Register mounts the JSON API on r. Admin routes rely on the fronting proxy for auth.
func (h Handlers) Register(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/departures", h.Departures.GetBoard)
		r.Get("/departures/{id}/applicability", h.Departures.GetApplicability)

		r.Post("/reports", h.Reports.Submit)
		r.Get("/reports/{id}/eligibility", h.Reports.Eligibility)

		r.Get("/calendar/holidays", h.Calendar.GetHolidays)
		r.Get("/calendar/day", h.Calendar.GetDay)

		if h.Masses != nil {
			r.Get("/masses", h.Masses.GetToday)
		}

		r.Route("/admin", func(r chi.Router) {
			r.Delete("/reports/{id}", h.Reports.Clear)
			r.Get("/calendar", h.Calendar.GetOverrides)
			r.Put("/calendar", h.Calendar.UpdateOverrides)
		})
	})
}
