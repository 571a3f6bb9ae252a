package errors

import "errors"

var (
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrEmptyDayFilter       = errors.New("empty day filter")
	ErrUnknownDayFilter     = errors.New("unknown day filter")
	ErrInvalidDepartureTime = errors.New("invalid departure time")
	ErrInvalidRouteCategory = errors.New("invalid route category")
	ErrInvalidDate          = errors.New("invalid date")
	ErrSettingsNotFound     = errors.New("calendar settings not found")
	ErrCacheMiss            = errors.New("cache miss")
	ErrReportThrottled      = errors.New("report throttled")
	ErrReportWindowClosed   = errors.New("report window closed")
	ErrInvalidFingerprint   = errors.New("invalid device fingerprint")
)
