// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/navassist/nav-reconciler/internal/config"
	"github.com/navassist/nav-reconciler/internal/service"
)

// refreshTimeout bounds a single symbol cache sweep.
const refreshTimeout = 5 * time.Minute

// Scheduler wraps a cron runner that keeps the symbol resolution cache warm.
type Scheduler struct {
	cron          *cron.Cron
	symbolService *service.SymbolService
	cfg           config.SchedulerConfig
}

// New creates a Scheduler for the given refresh configuration.
func New(symbolService *service.SymbolService, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{
		cron:          cron.New(),
		symbolService: symbolService,
		cfg:           cfg,
	}
}

// Start registers the refresh job and begins the cron loop. Disabled
// schedulers are a no-op so callers can Start/Stop unconditionally.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.SymbolRefreshSpec, s.refresh)
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("symbol refresh scheduled: %s", s.cfg.SymbolRefreshSpec)
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.symbolService.RefreshAll(ctx); err != nil {
		log.Printf("symbol refresh sweep failed: %v", err)
	}
}
