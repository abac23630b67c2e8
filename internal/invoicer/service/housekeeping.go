package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/invoicer/internal/invoicer/revocation"
	"github.com/aussiebroadwan/invoicer/internal/invoicer/store"
)

const housekeepingTimeout = 30 * time.Second

// HousekeepingService periodically checks the database connection and drops
// revocation entries for tokens that have expired anyway.
type HousekeepingService struct {
	Store    store.Store
	Registry revocation.Registry
	Logger   *slog.Logger
	Interval time.Duration

	// RetainExpired keeps every revocation entry for the process lifetime.
	RetainExpired bool

	started atomic.Bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(st store.Store, reg revocation.Registry, logger *slog.Logger, interval time.Duration, retainExpired bool) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:         st,
		Registry:      reg,
		Logger:        logger,
		Interval:      interval,
		RetainExpired: retainExpired,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "retain_expired", s.RetainExpired)
}

// Stop blocks until any in-progress run has finished. It is a no-op when the
// worker was never started.
func (s *HousekeepingService) Stop() {
	if !s.started.CompareAndSwap(true, false) {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single housekeeping pass and reports how many
// revocation entries were swept. Each step runs even if an earlier one fails.
func (s *HousekeepingService) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, housekeepingTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.Logger.Error("database ping failed", "error", err)
	}

	if s.RetainExpired {
		return 0
	}
	sw, ok := s.Registry.(revocation.Sweeper)
	if !ok {
		return 0
	}

	n, err := sw.Sweep(ctx, time.Now())
	if err != nil {
		s.Logger.Error("failed to sweep revocations", "error", err)
		return 0
	}
	s.Logger.Debug("swept expired revocations", "removed", n)
	return n
}
