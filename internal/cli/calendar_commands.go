package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/domain/models"
	"github.com/rosloniecroberto-oss/grojecnacito/internal/schedule"
)

func newHolidaysCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays [year]",
		Short: "List the public holidays of a year in date order.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := opts.location()
			if err != nil {
				return err
			}
			year := time.Now().In(loc).Year()
			if len(args) == 1 {
				year, err = strconv.Atoi(args[0])
				if err != nil || year <= 0 {
					return fmt.Errorf("invalid year %q", args[0])
				}
			}

			out := cmd.OutOrStdout()
			headerColor.Fprintf(out, "Święta %d\n", year)
			for _, h := range calendar.Holidays(year) {
				kind := "ruchome"
				if h.Fixed {
					kind = "stałe"
				}
				fmt.Fprintf(out, "%s  %-40s %s\n", h.Date.Format(calendar.DateLayout), h.Name, kind)
			}
			return nil
		},
	}
}

func newDayCommand(opts *options) *cobra.Command {
	var forceHoliday, forceBreak bool

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Classify a date: holiday, timetable column, day type, school day and break.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := opts.location()
			if err != nil {
				return err
			}
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			}
			date, err := resolveDate(raw, loc)
			if err != nil {
				return err
			}

			overrides := models.CalendarOverrides{ForceHoliday: forceHoliday, ForceBreak: forceBreak}
			info := calendar.Classify(date)

			out := cmd.OutOrStdout()
			headerColor.Fprintln(out, date.Format(calendar.DateLayout))
			holiday := "nie"
			if info.Holiday.IsHoliday {
				holiday = "tak"
				if info.Holiday.Name != "" {
					holiday += " (" + info.Holiday.Name + ")"
				}
			}
			brk := "nie"
			if info.Break.IsBreak {
				brk = info.Break.PeriodName
			}
			fmt.Fprintf(out, "święto:       %s\n", holiday)
			fmt.Fprintf(out, "kolumna:      %s\n", schedule.Bucket(date, overrides))
			fmt.Fprintf(out, "typ dnia:     %s\n", info.DayType)
			fmt.Fprintf(out, "dzień nauki:  %t\n", info.SchoolDay)
			fmt.Fprintf(out, "ferie:        %s\n", brk)
			if notice := schedule.NoCoursesMessage(date, overrides); notice != "" {
				fmt.Fprintf(out, "komunikat:    %s\n", notice)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceHoliday, "force-holiday", false, "Apply the forced holiday override")
	cmd.Flags().BoolVar(&forceBreak, "force-break", false, "Apply the forced school-break override")

	return cmd
}
