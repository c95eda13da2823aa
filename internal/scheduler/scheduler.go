// Package scheduler fires the weekly rollover on a cron expression.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"songboard/internal/app"
	"songboard/internal/logger"
)

type Scheduler struct {
	Weeks  *app.WeekService
	Logger *logger.Logger
	cron   *cron.Cron
}

// New builds a scheduler that triggers a rollover per the cron expression
// (standard five-field format, e.g. "0 0 * * 3" for Wednesday midnight).
func New(weeks *app.WeekService, cronExpr string, log *logger.Logger) (*Scheduler, error) {
	s := &Scheduler{
		Weeks:  weeks,
		Logger: log,
		cron:   cron.New(),
	}

	if _, err := s.cron.AddFunc(cronExpr, s.runRollover); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.Logger.Info("Starting rollover scheduler")
	s.cron.Start()
}

// Stop halts the cron loop and waits for an in-flight rollover to finish.
func (s *Scheduler) Stop() {
	s.Logger.Info("Stopping rollover scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runRollover() {
	s.Logger.Info("Running weekly rollover")
	week, deactivated, err := s.Weeks.Rollover(time.Now())
	if err != nil {
		s.Logger.Error("Weekly rollover failed", "error", err)
		return
	}
	s.Logger.Info("Weekly rollover completed",
		"week_id", week.ID, "songs_deactivated", deactivated)
}
