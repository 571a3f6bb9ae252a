package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/infrastructures/db/codec"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/symbols"
)

func newExplainCommand(opts *options) *cobra.Command {
	var (
		days, symbolsRaw, dateRaw string
		cancelled                 bool
		forceHoliday, forceBreak  bool
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain whether a course with the given columns and symbols runs on a date.",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := opts.location()
			if err != nil {
				return err
			}
			set, err := codec.ParseDayFilterSet(days)
			if err != nil {
				return fmt.Errorf("invalid --days: %w", err)
			}
			date, err := resolveDate(dateRaw, loc)
			if err != nil {
				return err
			}

			entry := models.ScheduleEntry{
				ID:        "explain",
				Days:      set,
				Symbols:   symbolsRaw,
				Cancelled: cancelled,
			}
			overrides := models.CalendarOverrides{ForceHoliday: forceHoliday, ForceBreak: forceBreak}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  kolumna dnia: %s  kolumny kursu: %s\n",
				date.Format(calendar.DateLayout), schedule.Bucket(date, overrides), set)
			for _, l := range symbols.Legend(symbolsRaw) {
				mutedColor.Fprintf(out, "  %s  %s\n", l.Symbol, l.Description)
			}

			d := schedule.Evaluate(entry, date, overrides)
			printVerdict(out, d.Visible, d.Reason)
			return nil
		},
	}

	cmd.Flags().StringVar(&days, "days", "WORKDAYS", "Comma-separated columns: WORKDAYS,SATURDAYS,SUNDAYS_HOLIDAYS")
	cmd.Flags().StringVar(&symbolsRaw, "symbols", "", "Timetable symbols, e.g. \"S\" or \"D,g\"")
	cmd.Flags().StringVar(&dateRaw, "date", "", "Date in YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&cancelled, "cancelled", false, "Mark the course as cancelled")
	cmd.Flags().BoolVar(&forceHoliday, "force-holiday", false, "Apply the forced holiday override")
	cmd.Flags().BoolVar(&forceBreak, "force-break", false, "Apply the forced school-break override")

	return cmd
}
