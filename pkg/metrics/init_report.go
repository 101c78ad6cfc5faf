package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initReportMetrics() {
	r.SinkWritesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphstats_report_writes_total",
			Help: "Report sink writes, by sink and status",
		},
		[]string{"sink", "status"},
	)

	r.SinkDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphstats_report_write_duration_seconds",
			Help:    "Report sink write duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"sink"},
	)
}
