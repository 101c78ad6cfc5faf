package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_nodes",
			Help: "Nodes in the loaded graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_edges",
			Help: "Edges in the loaded graph, parallel edges included",
		},
	)

	r.GraphComponents = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_connected_components",
			Help: "Connected components in the loaded graph",
		},
	)

	r.GraphAverageDegree = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphstats_graph_average_degree",
			Help: "Average node degree of the loaded graph",
		},
	)

	r.QueryDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphstats_query_duration_seconds",
			Help:    "Analyzer query duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"query"},
	)
}
