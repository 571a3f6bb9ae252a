// Package cli implements boardctl, the operator console for the departure board engine.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rosloniecroberto-oss/grojecnacito/internal/calendar"
)

type options struct {
	timezone string
}

func (o *options) location() (*time.Location, error) {
	return calendar.LoadLocation(o.timezone)
}

// NewRootCommand creates the boardctl command tree.
func NewRootCommand(ctx context.Context) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "boardctl",
		Short:         "Inspect holidays, day types and departure visibility for the bus board.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.timezone, "tz", calendar.DefaultTimezone, "Civil timezone of the board")

	cmd.AddCommand(
		newHolidaysCommand(opts),
		newDayCommand(opts),
		newExplainCommand(opts),
		newDeparturesCommand(ctx, opts),
	)

	return cmd
}

// Main is called by cmd/boardctl/main.go.
func Main(ctx context.Context) {
	if err := NewRootCommand(ctx).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
