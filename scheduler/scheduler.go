package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSchedule accepts 6-field expressions with a leading seconds field
// (the "0 0 10 * * *" form), standard 5-field expressions and descriptors
// such as "@daily".
func ParseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid schedule %q", expr)
	}
	return schedule, nil
}

type Scheduler struct {
	logger   *slog.Logger
	expr     string
	schedule cron.Schedule
	runner   *Runner
}

func New(logger *slog.Logger, expr string, runner *Runner) (*Scheduler, error) {
	schedule, err := ParseSchedule(expr)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		logger:   logger,
		expr:     expr,
		schedule: schedule,
		runner:   runner,
	}, nil
}

// Start runs digests on the schedule until ctx is cancelled, then waits for
// an in-flight run to finish.
func (s *Scheduler) Start(ctx context.Context) {
	c := cron.New(
		cron.WithParser(parser),
		cron.WithLogger(cronLogger{s.logger}),
		cron.WithChain(cron.Recover(cronLogger{s.logger})),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() {
		s.runner.TryRun(ctx)
	}))

	c.Start()
	s.logger.Info("starting digest scheduler", "schedule", s.expr, "next_run", s.schedule.Next(time.Now()))

	<-ctx.Done()
	s.logger.Info("stopping digest scheduler")
	<-c.Stop().Done()
}

type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
