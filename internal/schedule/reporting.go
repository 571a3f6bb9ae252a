package schedule

import (
	"fmt"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
)

const (
	// ReportWindowMinutes is how long after departure a delay can still be reported.
	ReportWindowMinutes = 30

	possibleDelayReports  = 1
	confirmedDelayReports = 3
)

// CanReport gates delay reports to today's departures that left at most
// ReportWindowMinutes ago. Cancelled and next-day entries never qualify.
func CanReport(v models.DepartureView) bool {
	if v.Entry.Cancelled || v.FromTomorrow {
		return false
	}
	return v.MinutesUntil <= 0 && v.MinutesUntil >= -ReportWindowMinutes
}

// BlockedReportMessage explains why CanReport is false; empty when reporting is allowed.
func BlockedReportMessage(v models.DepartureView) string {
	switch {
	case CanReport(v):
		return ""
	case v.Entry.Cancelled:
		return "Kurs jest odwołany. Zgłoszenie opóźnienia nie jest możliwe."
	case v.FromTomorrow || v.MinutesUntil > 0:
		return fmt.Sprintf("Zgłoszenie opóźnienia możliwe od godziny %s", v.Entry.Departure)
	default:
		return "Minęło zbyt dużo czasu od odjazdu. Zgłoszenie opóźnienia nie jest możliwe."
	}
}

func StatusForCount(count int) models.ReportStatus {
	switch {
	case count >= confirmedDelayReports:
		return models.ReportStatusConfirmed
	case count >= possibleDelayReports:
		return models.ReportStatusPossible
	default:
		return models.ReportStatusNone
	}
}

func StatusMessage(count int) string {
	switch StatusForCount(count) {
	case models.ReportStatusConfirmed:
		return fmt.Sprintf("Potwierdzone opóźnienie (%d)", count)
	case models.ReportStatusPossible:
		return fmt.Sprintf("Możliwe opóźnienie (%d)", count)
	default:
		return ""
	}
}
