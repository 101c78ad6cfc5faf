package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLoadMetrics() {
	r.LinesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstats_edgelist_lines_total",
			Help: "Edge-list lines read, by outcome (header, parsed, skipped)",
		},
		[]string{"outcome"},
	)

	r.LoadDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphstats_load_duration_seconds",
			Help:    "Time to read and build the graph",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	r.LoadFailures = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstats_load_failures_total",
			Help: "Failed loads, by kind (io, format)",
		},
		[]string{"kind"},
	)
}
