package benchmark

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeLabel       = "outcome"
	outcomeGoalReached = "goal_reached"
	outcomeExhausted   = "node_limit"
)

// Metrics holds the prometheus collectors for planner runs on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	nodes    prometheus.Histogram
	attempts prometheus.Histogram
	duration prometheus.Histogram
}

// NewMetrics returns Metrics registered on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rrt_runs_total",
			Help: "The number of planner runs by outcome.",
		}, []string{outcomeLabel}),
		nodes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rrt_nodes_explored",
			Help:    "The number of tree nodes created per run, root included.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		attempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rrt_attempts",
			Help:    "The number of sampling attempts per run.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "rrt_run_duration_seconds",
			Help: "The time spent planning per run.",
		}),
	}
}

// Observe records one run.
func (m *Metrics) Observe(result RunResult) {
	outcome := outcomeExhausted
	if result.GoalReached {
		outcome = outcomeGoalReached
	}
	m.runs.With(prometheus.Labels{outcomeLabel: outcome}).Inc()
	m.nodes.Observe(float64(result.NodesExplored))
	m.attempts.Observe(float64(result.Attempts))
	m.duration.Observe(result.Duration.Seconds())
}

// Registry exposes the registry, for serving or gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current metrics in the text exposition format, suitable for the node
// exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
