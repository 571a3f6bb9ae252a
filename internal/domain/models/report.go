package models

import "time"

type DelayReport struct {
	ID          string
	ScheduleID  ScheduleID
	Fingerprint string
	ReportedAt  time.Time
}

type ReportEligibility struct {
	Eligible bool
	Reason   string
}

type ReportStatus string

const (
	ReportStatusNone      ReportStatus = "none"
	ReportStatusPossible  ReportStatus = "possible"
	ReportStatusConfirmed ReportStatus = "confirmed"
)
