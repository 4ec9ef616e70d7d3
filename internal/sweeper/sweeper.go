// Package sweeper periodically reclaims abandoned claims on a frontier
// so a crashed worker's claimed-but-never-finished site or page
// doesn't sit claimed forever.
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crawlfrontier/frontier/internal/frontier"
	"github.com/crawlfrontier/frontier/internal/logger"
)

// DefaultSchedule runs the sweep every minute: frequent enough that an
// abandoned claim is reclaimed well inside a typical lease duration,
// cheap enough to run against an idle frontier with no cost worth
// tuning.
const DefaultSchedule = "@every 1m"

// Sweeper runs Frontier.Sweep on a cron schedule until stopped.
type Sweeper struct {
	fr       *frontier.Frontier
	log      logger.Interface
	cron     *cron.Cron
	schedule string

	mu      sync.Mutex
	running bool
}

// New builds a Sweeper over fr using schedule (a robfig/cron
// expression, or the "@every ..." shorthand). An empty schedule falls
// back to DefaultSchedule.
func New(fr *frontier.Frontier, log logger.Interface, schedule string) *Sweeper {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Sweeper{
		fr:       fr,
		log:      log,
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		schedule: schedule,
	}
}

// Start registers the sweep job and starts the cron scheduler. Calling
// Start twice is a no-op.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.running = true
	return nil
}

// Stop halts the cron scheduler and waits for any in-flight sweep to
// finish, up to the context's deadline.
func (s *Sweeper) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.running = false
}

// RunOnce runs a single sweep immediately, outside the cron schedule.
// Exported so callers (and tests) can trigger a sweep deterministically
// instead of waiting on the schedule.
func (s *Sweeper) RunOnce(ctx context.Context) {
	start := time.Now()
	result, err := s.fr.Sweep(ctx)
	if err != nil {
		s.log.Error("sweep failed", "error", err.Error())
		return
	}
	if result.SitesReclaimed > 0 || result.PagesReclaimed > 0 {
		s.log.Info("sweep reclaimed abandoned claims",
			"sites", result.SitesReclaimed, "pages", result.PagesReclaimed,
			"duration", time.Since(start))
	}
}
