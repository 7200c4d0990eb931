// Package metrics records digest run results as Prometheus metrics, for
// scraping in schedule mode or pushing to a Pushgateway after one-shot runs.
package metrics

import (
	"context"
	"net/http"

	"github.com/kova98/newsdigest/digest"
	"github.com/kova98/newsdigest/enums"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const jobName = "newsdigest"

type Metrics struct {
	registry      *prometheus.Registry
	runs          *prometheus.CounterVec
	subscriptions *prometheus.CounterVec
	items         prometheus.Counter
	lastRun       prometheus.Gauge
	runDuration   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdigest_runs_total",
			Help: "Total number of digest runs, by result (completed or aborted)",
		}, []string{"result"}),
		subscriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsdigest_subscriptions_total",
			Help: "Total number of processed subscriptions, by outcome",
		}, []string{"outcome"}),
		items: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsdigest_items_fetched_total",
			Help: "Total number of new items fetched for subscriptions",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsdigest_last_run_timestamp_seconds",
			Help: "Unix time the last digest run finished",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "newsdigest_run_duration_seconds",
			Help: "Duration of the last digest run",
		}),
	}

	m.registry.MustRegister(m.runs, m.subscriptions, m.items, m.lastRun, m.runDuration)

	m.runs.WithLabelValues("completed")
	m.runs.WithLabelValues("aborted")
	for _, outcome := range enums.Outcomes {
		m.subscriptions.WithLabelValues(string(outcome))
	}

	return m
}

func (m *Metrics) Observe(report digest.Report) {
	if report.Aborted {
		m.runs.WithLabelValues("aborted").Inc()
	} else {
		m.runs.WithLabelValues("completed").Inc()
	}

	for outcome, count := range report.Counts() {
		m.subscriptions.WithLabelValues(string(outcome)).Add(float64(count))
	}
	m.items.Add(float64(report.Items()))
	m.lastRun.Set(float64(report.FinishedAt.Unix()))
	m.runDuration.Set(report.Duration().Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Push replaces the metrics of this job on the Pushgateway at url.
func (m *Metrics) Push(ctx context.Context, url string) error {
	return push.New(url, jobName).Gatherer(m.registry).PushContext(ctx)
}
