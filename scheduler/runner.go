package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kova98/newsdigest/digest"
)

type Pipeline interface {
	Run(ctx context.Context) digest.Report
}

type Observer interface {
	Observe(report digest.Report)
}

// Runner serialises digest runs coming from the cron schedule and from
// manual triggers. A trigger that arrives during a run is dropped.
type Runner struct {
	logger   *slog.Logger
	pipeline Pipeline
	observer Observer
	mu       sync.Mutex
}

func NewRunner(logger *slog.Logger, pipeline Pipeline, observer Observer) *Runner {
	return &Runner{
		logger:   logger,
		pipeline: pipeline,
		observer: observer,
	}
}

// TryRun runs the pipeline unless a run is already in progress, in which
// case it returns false without running.
func (r *Runner) TryRun(ctx context.Context) (digest.Report, bool) {
	if !r.mu.TryLock() {
		r.logger.Warn("digest run already in progress, skipping trigger")
		return digest.Report{}, false
	}
	defer r.mu.Unlock()

	report := r.pipeline.Run(ctx)
	if r.observer != nil {
		r.observer.Observe(report)
	}
	return report, true
}
