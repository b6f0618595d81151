package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/profleet/fleettrack/internal/pkg/logger"
	"github.com/profleet/fleettrack/services/tracking"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = 20 * time.Second

// StaleSweeper periodically announces trips whose devices stopped reporting
type StaleSweeper struct {
	trackingUC tracking.TrackingUC
	spec       string
	cron       *cron.Cron
}

// NewStaleSweeper creates a sweeper running on the given cron spec, e.g. "@every 30s".
// A sweep still running when the next one is due is skipped.
func NewStaleSweeper(trackingUC tracking.TrackingUC, spec string) *StaleSweeper {
	return &StaleSweeper{
		trackingUC: trackingUC,
		spec:       spec,
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start schedules the sweep
func (s *StaleSweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		return fmt.Errorf("invalid stale sweep schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	logger.Info("Scheduled stale trip sweep", logger.String("spec", s.spec))
	return nil
}

// Sweep runs one pass
func (s *StaleSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	announced, err := s.trackingUC.SweepStale(ctx)
	if err != nil {
		logger.Warn("Stale trip sweep failed", logger.Err(err))
		return
	}
	if announced > 0 {
		logger.Info("Announced stale trips", logger.Int("count", announced))
	}
}

// Stop halts the schedule and waits for a running sweep, bounded by ctx
func (s *StaleSweeper) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
