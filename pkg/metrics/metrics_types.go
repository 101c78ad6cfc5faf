package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a graphstats run
type Registry struct {
	// Load Metrics
	LinesTotal   *prometheus.CounterVec
	LoadDuration prometheus.Histogram
	LoadFailures *prometheus.CounterVec

	// Graph Metrics
	GraphNodes         prometheus.Gauge
	GraphEdges         prometheus.Gauge
	GraphComponents    prometheus.Gauge
	GraphAverageDegree prometheus.Gauge

	// Query Metrics
	QueryDuration *prometheus.HistogramVec

	// Report Metrics
	SinkWritesTotal *prometheus.CounterVec
	SinkDuration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initLoadMetrics()
	r.initGraphMetrics()
	r.initReportMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
