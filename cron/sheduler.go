package cron

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules every registered job and starts the scheduler.
func StartCron(log *zap.Logger) *cron.Cron {
	c := cron.New()
	for name, j := range Jobs() {
		run := j.Run
		sched := j.Schedule
		if _, err := c.AddFunc(sched, func() { run() }); err != nil {
			log.Fatal("failed to register cron job", zap.String("job", name), zap.Error(err))
		}
		log.Info("cron job scheduled", zap.String("job", name), zap.String("schedule", sched))
	}
	c.Start()
	return c
}
