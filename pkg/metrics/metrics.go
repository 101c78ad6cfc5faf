package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RecordLines records parser counters for one load.
func (r *Registry) RecordLines(header, parsed, skipped int) {
	r.LinesTotal.WithLabelValues("header").Add(float64(header))
	r.LinesTotal.WithLabelValues("parsed").Add(float64(parsed))
	r.LinesTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordLoad records a successful load and the resulting graph size.
func (r *Registry) RecordLoad(nodes, edges int, duration time.Duration) {
	r.LoadDuration.Observe(duration.Seconds())
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// RecordLoadFailure counts a failed load by kind.
func (r *Registry) RecordLoadFailure(kind string) {
	r.LoadFailures.WithLabelValues(kind).Inc()
}

// RecordQuery records the duration of an analyzer query.
func (r *Registry) RecordQuery(query string, duration time.Duration) {
	r.QueryDuration.WithLabelValues(query).Observe(duration.Seconds())
}

// SetComponents sets the connected component gauge.
func (r *Registry) SetComponents(n int) {
	r.GraphComponents.Set(float64(n))
}

// SetAverageDegree sets the average degree gauge.
func (r *Registry) SetAverageDegree(avg float64) {
	r.GraphAverageDegree.Set(avg)
}

// RecordSinkWrite records one report sink write.
func (r *Registry) RecordSinkWrite(sink string, err error, duration time.Duration) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	r.SinkWritesTotal.WithLabelValues(sink, status).Inc()
	r.SinkDuration.WithLabelValues(sink).Observe(duration.Seconds())
}

// WriteTextfile dumps the registry in the Prometheus text format, for the
// node exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
