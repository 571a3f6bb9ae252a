package delay

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const DefaultPurgeSpec = "0 0 * * *"

// PurgeScheduler runs a job on a cron spec in the board's timezone.
// Each run is computed from the wall clock, so a restart re-arms at the next match.
type PurgeScheduler struct {
	log  *zap.Logger
	cron *cron.Cron
}

func NewPurgeScheduler(log *zap.Logger, loc *time.Location, spec string, timeout time.Duration, job func(ctx context.Context) error) (*PurgeScheduler, error) {
	const op = "delay.NewPurgeScheduler"

	if spec == "" {
		spec = DefaultPurgeSpec
	}

	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := job(ctx); err != nil {
			log.Error("scheduled purge failed", zap.String("op", op), zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: parse %q: %w", op, spec, err)
	}

	return &PurgeScheduler{log: log, cron: c}, nil
}

func (s *PurgeScheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info("purge scheduled", zap.Time("next", e.Next))
	}
}

// Stop halts the scheduler and waits for a running job or ctx expiry.
func (s *PurgeScheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun reports when spec fires next after from, in loc.
func NextRun(spec string, loc *time.Location, from time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from.In(loc)), nil
}
