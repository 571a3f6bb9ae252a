package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	derr "github.com/rosloniecroberto-oss/grojecnacito/internal/domain/errors"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"go.uber.org/zap"
)

type throttleMock struct {
	eligible    bool
	submitErr   error
	submitCalls int
	purged      int64
}

func (m *throttleMock) CanReport(context.Context, models.ScheduleID, string, time.Time) bool {
	return m.eligible
}

func (m *throttleMock) Submit(_ context.Context, id models.ScheduleID, fp string, now time.Time) (models.DelayReport, error) {
	m.submitCalls++
	if m.submitErr != nil {
		return models.DelayReport{}, m.submitErr
	}
	return models.DelayReport{ID: "r-1", ScheduleID: id, Fingerprint: fp, ReportedAt: now}, nil
}

func (m *throttleMock) PurgeSchedule(context.Context, models.ScheduleID) (int64, error) {
	return m.purged, nil
}

func (m *throttleMock) ThrottledReason() string { return "throttled" }

func newReportService(th *throttleMock) *ReportService {
	repo := &scheduleRepoMock{entries: []models.ScheduleEntry{
		sched("left", 9, 50, workdays, ""),
		sched("later", 10, 20, workdays, ""),
		sched("old", 9, 0, workdays, ""),
		sched("sunday", 9, 55, holidays, ""),
	}}
	return NewReportService(zap.NewNop(), newDepartureService(repo, nil, nil, nil), th)
}

func TestReportSubmit_Accepted(t *testing.T) {
	th := &throttleMock{eligible: true}
	svc := newReportService(th)

	report, err := svc.Submit(context.Background(), "left", "fp_a")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.ScheduleID != "left" || !report.ReportedAt.Equal(tuesday) {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestReportSubmit_WindowGating(t *testing.T) {
	tests := []struct {
		id      models.ScheduleID
		message string
	}{
		{"later", "Zgłoszenie opóźnienia możliwe od godziny 10:20"},
		{"old", "Minęło zbyt dużo czasu od odjazdu. Zgłoszenie opóźnienia nie jest możliwe."},
		{"sunday", notRunningMessage},
	}
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			th := &throttleMock{eligible: true}
			svc := newReportService(th)

			_, err := svc.Submit(context.Background(), tt.id, "fp_a")
			if !errors.Is(err, derr.ErrReportWindowClosed) {
				t.Fatalf("expected ErrReportWindowClosed, got %v", err)
			}
			var werr *ReportWindowError
			if !errors.As(err, &werr) || werr.Message != tt.message {
				t.Fatalf("expected message %q, got %v", tt.message, err)
			}
			if th.submitCalls != 0 {
				t.Fatalf("expected no submit, got %d", th.submitCalls)
			}
		})
	}
}

func TestReportSubmit_Throttled(t *testing.T) {
	th := &throttleMock{submitErr: fmt.Errorf("delay: %w", derr.ErrReportThrottled)}
	svc := newReportService(th)

	_, err := svc.Submit(context.Background(), "left", "fp_a")
	if !errors.Is(err, derr.ErrReportThrottled) {
		t.Fatalf("expected ErrReportThrottled, got %v", err)
	}
}

func TestReportSubmit_NotFound(t *testing.T) {
	svc := newReportService(&throttleMock{eligible: true})

	_, err := svc.Submit(context.Background(), "missing", "fp_a")
	if !errors.Is(err, derr.ErrScheduleNotFound) {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestReportEligibility(t *testing.T) {
	svc := newReportService(&throttleMock{eligible: false})

	got := svc.Eligibility(context.Background(), "left", "fp_a", time.Time{})
	if got.Eligible || got.Reason != "throttled" {
		t.Fatalf("unexpected eligibility %+v", got)
	}

	svc = newReportService(&throttleMock{eligible: true})
	if got := svc.Eligibility(context.Background(), "left", "fp_a", time.Time{}); !got.Eligible {
		t.Fatalf("expected eligible, got %+v", got)
	}
}

func TestReportClear(t *testing.T) {
	svc := newReportService(&throttleMock{purged: 4})

	n, err := svc.Clear(context.Background(), "left")
	if err != nil || n != 4 {
		t.Fatalf("expected 4 cleared, got %d (%v)", n, err)
	}
}
