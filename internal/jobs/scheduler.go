package jobs

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/crm-backend/internal/platform/logger"
)

// Scheduler runs the periodic jobs in-process on standard cron specs.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

func NewScheduler(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		log:  log.With("component", "Scheduler"),
	}
}

func (s *Scheduler) Add(spec, name string, run func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := run(context.Background()); err != nil {
			s.log.Warn("Scheduled job failed", "job", name, "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.log.Info("Scheduled job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
