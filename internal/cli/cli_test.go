package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/sqlite"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) string {
	t.Helper()

	cmd := NewRootCommand(context.Background())
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute %v: %v", args, err)
	}
	return buf.String()
}

func TestHolidaysCommand(t *testing.T) {
	output := execute(t, "holidays", "2026")

	if !strings.Contains(output, "2026-06-04  Boże Ciało") {
		t.Fatalf("output missing Corpus Christi: %q", output)
	}
	if strings.Index(output, "Nowy Rok") > strings.Index(output, "Drugi Dzień Bożego Narodzenia") {
		t.Fatalf("expected date order: %q", output)
	}
}

func TestHolidaysCommandRejectsBadYear(t *testing.T) {
	cmd := NewRootCommand(context.Background())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"holidays", "twenty"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for invalid year")
	}
}

func TestDayCommand(t *testing.T) {
	output := execute(t, "day", "2026-04-06")

	if !strings.Contains(output, "Poniedziałek Wielkanocny") {
		t.Fatalf("output missing holiday name: %q", output)
	}
	if !strings.Contains(output, "SUNDAYS_HOLIDAYS") {
		t.Fatalf("output missing column: %q", output)
	}
}

func TestExplainCommand(t *testing.T) {
	visible := execute(t, "explain", "--days", "WORKDAYS", "--symbols", "S", "--date", "2026-03-17")
	if !strings.Contains(visible, "visible") {
		t.Fatalf("expected school course visible on a school Tuesday: %q", visible)
	}

	hidden := execute(t, "explain", "--days", "WORKDAYS,SATURDAYS", "--symbols", "S", "--date", "2026-07-04")
	if !strings.Contains(hidden, "hidden: ") {
		t.Fatalf("expected school course hidden in summer: %q", hidden)
	}
	if !strings.Contains(hidden, "kursuje w dni nauki szkolnej") {
		t.Fatalf("expected legend line for S: %q", hidden)
	}

	forced := execute(t, "explain", "--days", "WORKDAYS", "--symbols", "S", "--date", "2026-03-17", "--force-break")
	if !strings.Contains(forced, "hidden: ") {
		t.Fatalf("expected forced break to hide school course: %q", forced)
	}
}

func TestExplainCommandRejectsUnknownColumn(t *testing.T) {
	cmd := NewRootCommand(context.Background())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"explain", "--days", "WEEKENDS"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestDeparturesCommand(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "board.db")

	st, err := sqlite.Open(ctx, path, zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := st.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	entries := []models.ScheduleEntry{
		{
			ID:          "S1",
			Route:       models.RoutePKS,
			Destination: "Warszawa",
			Departure:   models.ClockTime{Hour: 10, Minute: 15},
			Days:        models.NewDayFilterSet(models.Workdays),
		},
		{
			ID:          "S2",
			Route:       models.RouteBusy,
			Destination: "Mogielnica",
			Departure:   models.ClockTime{Hour: 11, Minute: 0},
			Days:        models.NewDayFilterSet(models.SundaysAndHolidays),
		},
	}
	for _, e := range entries {
		if err := st.UpsertSchedule(ctx, e); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}
	_ = st.Close()

	output := execute(t, "departures", "--sqlite", path, "--at", "2026-03-17 10:00")
	if !strings.Contains(output, "10:15") || !strings.Contains(output, "Za 15 min") {
		t.Fatalf("output missing workday departure: %q", output)
	}
	if strings.Contains(output, "Mogielnica") {
		t.Fatalf("sunday-only course shown on a Tuesday board: %q", output)
	}
}

func TestDeparturesCommandRequiresPath(t *testing.T) {
	cmd := NewRootCommand(context.Background())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"departures"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without --sqlite")
	}
}
