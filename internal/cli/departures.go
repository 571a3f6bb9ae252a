package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/application/service"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/delay"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/memory"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/sqlite"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
)

func newDeparturesCommand(ctx context.Context, opts *options) *cobra.Command {
	var (
		dbPath, atRaw, query string
		showAll               bool
	)

	cmd := &cobra.Command{
		Use:   "departures",
		Short: "Print the departure board built from a SQLite timetable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return errors.New("--sqlite is required")
			}
			loc, err := opts.location()
			if err != nil {
				return err
			}
			at, err := resolveInstant(atRaw, loc)
			if err != nil {
				return err
			}

			log := zap.NewNop()
			st, err := sqlite.Open(ctx, dbPath, log)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.EnsureSchema(ctx); err != nil {
				return err
			}

			throttle := delay.NewThrottle(log, st, nil, delay.DefaultThrottleWindow, delay.DefaultRetention)
			departures := service.NewDepartureService(log, st, memory.NewCatalogueCache(1), time.Minute, st, throttle, loc, schedule.DefaultWindowOptions())

			board, err := departures.Board(ctx, service.BoardQuery{At: at, ShowAll: showAll, Query: query})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			headerColor.Fprintf(out, "Odjazdy %s\n", board.At.Format("2006-01-02 15:04"))
			if board.Notice != "" {
				fmt.Fprintln(out, board.Notice)
			}
			if len(board.Window.Departures) == 0 {
				mutedColor.Fprintln(out, "Brak odjazdów.")
			}
			for _, v := range board.Window.Departures {
				printDeparture(out, v, schedule.FormatTimeUntil(v.MinutesUntil))
			}
			if board.Window.TodayRemainingCount > 0 {
				mutedColor.Fprintf(out, "+%d kolejnych kursów dzisiaj\n", board.Window.TodayRemainingCount)
			}
			for _, l := range board.Legend {
				mutedColor.Fprintf(out, "%s  %s\n", l.Symbol, l.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "sqlite", "", "Path to the SQLite timetable")
	cmd.Flags().StringVar(&atRaw, "at", "", "Board time, RFC3339 or \"YYYY-MM-DD HH:MM\" (default: now)")
	cmd.Flags().BoolVar(&showAll, "all", false, "Show the whole day instead of the compact window")
	cmd.Flags().StringVar(&query, "q", "", "Filter by destination or via")

	return cmd
}
