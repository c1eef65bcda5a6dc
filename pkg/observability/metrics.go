package observability

import (
	"context"
	"fmt"

	"github.com/aretw0/sitepush/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "sitepush"

// Status label values.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Metrics holds the collectors updated by Hooks.
type Metrics struct {
	runs           *prometheus.CounterVec
	runDuration    prometheus.Histogram
	writers        *prometheus.CounterVec
	writerDuration *prometheus.HistogramVec
	inFlight       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of finished push runs.",
			},
			[]string{"status"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of push runs.",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
			},
		),
		writers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "writer_runs_total",
				Help:      "Total number of writer invocations per domain.",
			},
			[]string{"domain", "status"},
		),
		writerDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "writer_duration_seconds",
				Help:      "Duration of writer invocations per domain.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"domain"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "runs_in_flight",
				Help:      "Number of push runs currently executing.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.runs, m.runDuration, m.writers, m.writerDuration, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(context.Context, *domain.RunEvent) {
			m.inFlight.Inc()
		},
		OnRunFinish: func(_ context.Context, e *domain.RunEvent) {
			m.inFlight.Dec()
			m.runs.WithLabelValues(status(e.Err)).Inc()
			m.runDuration.Observe(e.Duration.Seconds())
		},
		OnWriterFinish: func(_ context.Context, e *domain.WriterEvent) {
			d := string(e.Domain)
			m.writers.WithLabelValues(d, status(e.Err)).Inc()
			m.writerDuration.WithLabelValues(d).Observe(e.Duration.Seconds())
		},
	}
}

func status(err error) string {
	if err != nil {
		return StatusFailed
	}
	return StatusSucceeded
}
