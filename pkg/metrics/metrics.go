package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the background worker's instrumentation.
type Metrics struct {
	SummaryRuns      *prometheus.CounterVec
	SummaryLatency   prometheus.Histogram
	HistoryPruned    prometheus.Counter
	HistoryPruneRuns *prometheus.CounterVec
	BackupObjects    prometheus.Counter
	BackupFailures   prometheus.Counter
}

// NewMetrics creates and registers all worker metrics.
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		SummaryRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "summary_runs_total",
			Help:      "Weekly summary runs by outcome",
		}, []string{"status"}),
		SummaryLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "summary_duration_seconds",
			Help:      "Time spent composing and sending the weekly summary",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		HistoryPruned: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "history_entries_pruned_total",
			Help:      "Assignment history rows removed by retention sweeps",
		}),
		HistoryPruneRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "history_prune_runs_total",
			Help:      "Retention sweep runs by outcome",
		}, []string{"status"}),
		BackupObjects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backup_objects_total",
			Help:      "Objects copied into backup storage",
		}),
		BackupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "backup_object_failures_total",
			Help:      "Objects that failed to copy into backup storage",
		}),
	}
}
