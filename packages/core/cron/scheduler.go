package cron

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Sweeper evicts live sessions idle for longer than ttl and reports how
// many were removed.
type Sweeper interface {
	Sweep(ttl time.Duration) int
}

type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	schedule string
	ttl      time.Duration
	log      *logrus.Entry
}

// NewScheduler uses a seconds-precision parser, so schedule has six fields.
func NewScheduler(sweeper Sweeper, schedule string, ttl time.Duration, log *logrus.Entry) *Scheduler {
	c := cron.New(cron.WithSeconds(), cron.WithLogger(cron.PrintfLogger(log)))

	return &Scheduler{
		cron:     c,
		sweeper:  sweeper,
		schedule: schedule,
		ttl:      ttl,
		log:      log,
	}
}

// Start registers the jobs and starts the scheduler
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runSweep); err != nil {
		s.log.WithError(err).WithField("schedule", s.schedule).Error("Error scheduling live session sweep")
		return err
	}

	s.cron.Start()
	s.log.WithFields(logrus.Fields{
		"schedule": s.schedule,
		"ttl":      s.ttl.String(),
	}).Info("Cron scheduler started")
	return nil
}

// Stop waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("Cron scheduler stopped")
}

func (s *Scheduler) runSweep() {
	removed := s.sweeper.Sweep(s.ttl)
	if removed == 0 {
		s.log.Debug("No idle live sessions to sweep")
		return
	}
	s.log.WithField("removed", removed).Info("Swept idle live sessions")
}

// RunNow triggers the sweep outside the schedule
func (s *Scheduler) RunNow() {
	s.runSweep()
}
