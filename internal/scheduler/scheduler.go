package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/skiphire/skip-browser/internal/config"
	"github.com/skiphire/skip-browser/internal/service/browse"
	cataloguesvc "github.com/skiphire/skip-browser/internal/service/catalogue"
)

// Scheduler runs the periodic janitor that evicts expired catalogue cache
// entries and idle browse sessions.
type Scheduler struct {
	cron         *cron.Cron
	catalogueSvc *cataloguesvc.Service
	browseSvc    *browse.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, catalogueSvc *cataloguesvc.Service, browseSvc *browse.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		catalogueSvc: catalogueSvc,
		browseSvc:    browseSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the janitor on the configured cron schedule and launches
// the cron runner.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Janitor.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Janitor.CronSchedule, s.sweep)
	if err != nil {
		s.logger.Error("failed to schedule janitor", zap.Error(err))
	}

	s.cron.Start()
}

// Stop halts the cron runner.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sweep() {
	s.catalogueSvc.EvictExpired()
	s.browseSvc.EvictIdle(time.Duration(s.cfg.Sessions.IdleMinutes) * time.Minute)
}
