package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// UsageResetter is the statement-cycle operation the scheduler drives
type UsageResetter interface {
	ResetUsage() error
}

// Scheduler runs the statement-cycle reset on a cron spec
type Scheduler struct {
	cron *cron.Cron
	svc  UsageResetter
	spec string
	log  *logrus.Logger
}

// New creates a scheduler for the given reset spec
func New(svc UsageResetter, spec string, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		spec: spec,
		log:  log,
	}
}

// Start registers the reset job and starts the cron loop
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.svc.ResetUsage(); err != nil {
			s.log.Errorf("Statement cycle reset failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid usage reset spec %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Infof("Statement cycle scheduler started: %s", s.spec)
	return nil
}

// Stop halts the cron loop; running jobs finish
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
