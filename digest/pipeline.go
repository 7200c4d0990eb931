package digest

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kova98/newsdigest/enums"
	"github.com/kova98/newsdigest/models"
	"github.com/kova98/newsdigest/notifiers"
)

type ContentSource interface {
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	FetchItems(ctx context.Context, subscriptionID string) ([]models.Item, error)
}

type Sender interface {
	Send(ctx context.Context, email models.Email) error
}

// Pipeline lists subscriptions, then fetches, renders and sends one digest per
// subscription, strictly one after another. Failures are contained to the
// subscription they happen in.
type Pipeline struct {
	logger *slog.Logger
	source ContentSource
	sender Sender
	now    func() time.Time
}

type Option func(*Pipeline)

// WithClock overrides the time source used for run timestamps and the
// subject date.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func NewPipeline(logger *slog.Logger, source ContentSource, sender Sender, opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: logger,
		source: source,
		sender: sender,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one digest pass. It never returns an error: a failure to list
// subscriptions marks the report as aborted, everything else is recorded per
// subscription.
func (p *Pipeline) Run(ctx context.Context) Report {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: p.now(),
	}
	logger := p.logger.With("run_id", report.RunID)

	subs, err := p.source.ListSubscriptions(ctx)
	if err != nil {
		logger.Error("can't get list of emails from content API", "error", err)
		report.Aborted = true
		report.Err = err
		report.FinishedAt = p.now()
		return report
	}
	logger.Info("retrieved subscriptions", "count", len(subs))

	report.Results = make([]Result, 0, len(subs))
	for _, sub := range subs {
		report.Results = append(report.Results, p.process(ctx, logger, sub, report.StartedAt))
	}
	report.FinishedAt = p.now()

	counts := report.Counts()
	logger.Info("digest run finished",
		"subscriptions", len(subs),
		"sent", counts[enums.OutcomeSent],
		"empty", counts[enums.OutcomeEmpty],
		"malformed", counts[enums.OutcomeMalformed],
		"fetch_failed", counts[enums.OutcomeFetchFailed],
		"render_failed", counts[enums.OutcomeRenderFailed],
		"send_failed", counts[enums.OutcomeSendFailed],
		"elapsed", report.Duration().Milliseconds())

	return report
}

func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, sub models.Subscription, date time.Time) Result {
	result := Result{Subscription: sub}

	if sub.DecodeErr != nil {
		logger.Error("malformed subscription record", "title", sub.Title, "error", sub.DecodeErr)
		result.Outcome = enums.OutcomeMalformed
		result.Err = sub.DecodeErr
		return result
	}

	items, err := p.source.FetchItems(ctx, string(sub.ID))
	if err != nil {
		logger.Error("can't retrieve items for subscription", "title", sub.Title, "error", err)
		result.Outcome = enums.OutcomeFetchFailed
		result.Err = err
		return result
	}
	result.Items = len(items)

	if len(items) == 0 {
		logger.Info("no new items for subscription today, skipping", "title", sub.Title)
		result.Outcome = enums.OutcomeEmpty
		return result
	}
	logger.Info("retrieved new items", "title", sub.Title, "count", len(items))

	email, err := notifiers.DigestEmail(sub, items, date)
	if err != nil {
		logger.Error("unable to render digest", "title", sub.Title, "error", err)
		result.Outcome = enums.OutcomeRenderFailed
		result.Err = err
		return result
	}

	if err := p.sender.Send(ctx, email); err != nil {
		logger.Error("unable to send digest", "title", sub.Title, "error", err)
		result.Outcome = enums.OutcomeSendFailed
		result.Err = err
		return result
	}

	logger.Info("sent digest", "title", sub.Title, "recipient", sub.Email)
	result.Outcome = enums.OutcomeSent
	return result
}
