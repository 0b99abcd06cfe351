package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Job is a named periodic task
type Job struct {
	Name string
	Spec string
	Run  func()
}

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))
}

// AddJob schedules job on the application scheduler
func (a *Application) AddJob(job Job) error {
	_, err := a.sched.AddFunc(job.Spec, func() {
		start := time.Now()
		job.Run()
		zap.L().Debug("job finished", zap.String("job", job.Name), zap.Duration("took", time.Since(start)))
	})
	return err
}
