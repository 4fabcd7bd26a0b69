package organize

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for organize runs. They
// live on the default registry and are shared by every Organizer in
// the process.
type Metrics struct {
	movedFiles   *prometheus.CounterVec
	organizeRuns *prometheus.CounterVec
	watchEvents  prometheus.Counter
	watchErrors  prometheus.Counter
}

var (
	metricsOnce   sync.Once
	sharedMetrics *Metrics
)

func metrics() *Metrics {
	metricsOnce.Do(func() {
		sharedMetrics = &Metrics{
			movedFiles: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "fieldkit_organize_moved_files_total",
					Help: "Total number of files moved into category directories",
				},
				[]string{"category"},
			),
			organizeRuns: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "fieldkit_organize_runs_total",
					Help: "Total number of organize runs performed",
				},
				[]string{"mode"},
			),
			watchEvents: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "fieldkit_organize_watch_events_total",
					Help: "Total number of filesystem events accepted by the watcher",
				},
			),
			watchErrors: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "fieldkit_organize_watch_errors_total",
					Help: "Total number of watcher errors",
				},
			),
		}
	})
	return sharedMetrics
}
