package scheduler

import (
	"context"
	"log/slog"
	"time"

	"football_bot/internal/logger"
	"football_bot/internal/service"
)

// Syncer mirrors provider leagues into the row store.
type Syncer interface {
	Sync(ctx context.Context, leagues []string) (service.SyncReport, *service.Error)
}

// Scheduler periodically refreshes the stored catalog.
type Scheduler struct {
	syncer  Syncer
	leagues []string
	log     *slog.Logger
	tick    time.Duration
}

// New creates a Scheduler that syncs leagues every interval.
func New(syncer Syncer, leagues []string, interval time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:  syncer,
		leagues: leagues,
		log:     log,
		tick:    interval,
	}
}

// Enabled reports whether a positive interval was configured.
func (s *Scheduler) Enabled() bool {
	return s.tick > 0
}

// Run starts the sync loop, blocking until ctx is cancelled. It returns at
// once when the scheduler is disabled.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.Enabled() {
		s.log.Info("catalog sync disabled")
		return
	}

	s.syncOnce(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.syncOnce(ctx)
		}
	}
}

func (s *Scheduler) syncOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	ctx = logger.WithLogger(ctx, s.log)
	start := time.Now()
	report, err := s.syncer.Sync(ctx, s.leagues)
	if err != nil {
		s.log.Error("catalog sync", "code", err.Code, "error", err)
		return
	}
	if len(report.FailedLeague) > 0 {
		s.log.Warn("catalog sync incomplete", "failed_leagues", report.FailedLeague)
	}
	s.log.Info("scheduled sync done",
		"leagues", report.Leagues,
		"fetched", report.Fetched,
		"added", report.Added,
		"took", time.Since(start).Round(time.Millisecond),
	)
}
