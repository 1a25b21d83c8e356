package jobs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes job system counters to Prometheus. A nil *Metrics is
// valid and records nothing, which keeps tests free of registries.
type Metrics struct {
	enqueued  *prometheus.CounterVec
	completed prometheus.Counter
	failed    prometheus.Counter
	retried   prometheus.Counter
	dead      prometheus.Counter
	duration  prometheus.Histogram
	active    prometheus.Gauge
}

// NewMetrics registers the job metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		enqueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "enqueued_total",
			Help:      "Jobs enqueued, by priority.",
		}, []string{"priority"}),
		completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "completed_total",
			Help:      "Jobs that finished successfully.",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "failed_total",
			Help:      "Job attempts that returned an error.",
		}),
		retried: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "retried_total",
			Help:      "Failed attempts that were scheduled for retry.",
		}),
		dead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "dead_total",
			Help:      "Jobs moved to the dead letter queue.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Execution time of completed jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "savora",
			Subsystem: "jobs",
			Name:      "active_workers",
			Help:      "Workers currently executing a job.",
		}),
	}
	reg.MustRegister(m.enqueued, m.completed, m.failed, m.retried, m.dead, m.duration, m.active)
	return m
}

// RecordEnqueued counts one enqueue.
func (m *Metrics) RecordEnqueued(p Priority) {
	if m == nil {
		return
	}
	m.enqueued.WithLabelValues(p.String()).Inc()
}

// RecordStarted marks a worker busy.
func (m *Metrics) RecordStarted() {
	if m == nil {
		return
	}
	m.active.Inc()
}

// RecordCompleted counts a success and its duration.
func (m *Metrics) RecordCompleted(d time.Duration) {
	if m == nil {
		return
	}
	m.completed.Inc()
	m.duration.Observe(d.Seconds())
	m.active.Dec()
}

// RecordFailed counts a failed attempt.
func (m *Metrics) RecordFailed(willRetry bool) {
	if m == nil {
		return
	}
	m.failed.Inc()
	if willRetry {
		m.retried.Inc()
	} else {
		m.dead.Inc()
	}
	m.active.Dec()
}
