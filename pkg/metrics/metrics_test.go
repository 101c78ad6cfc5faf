package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if m.Counter != nil {
		return m.Counter.GetValue()
	}
	return m.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.LinesTotal == nil || r.GraphNodes == nil || r.SinkWritesTotal == nil || r.QueryDuration == nil {
		t.Error("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordLinesAndLoad(t *testing.T) {
	r := NewRegistry()
	r.RecordLines(1, 10, 2)
	r.RecordLoad(7, 10, 20*time.Millisecond)

	parsed, _ := r.LinesTotal.GetMetricWithLabelValues("parsed")
	if v := counterValue(t, parsed); v != 10 {
		t.Errorf("parsed lines = %v, want 10", v)
	}
	skipped, _ := r.LinesTotal.GetMetricWithLabelValues("skipped")
	if v := counterValue(t, skipped); v != 2 {
		t.Errorf("skipped lines = %v, want 2", v)
	}
	if v := counterValue(t, r.GraphNodes); v != 7 {
		t.Errorf("nodes gauge = %v, want 7", v)
	}
	if v := counterValue(t, r.GraphEdges); v != 10 {
		t.Errorf("edges gauge = %v, want 10", v)
	}
}

func TestRecordSinkWrite(t *testing.T) {
	r := NewRegistry()
	r.RecordSinkWrite("csv", nil, time.Millisecond)
	r.RecordSinkWrite("csv", nil, time.Millisecond)
	r.RecordSinkWrite("s3", errors.New("denied"), time.Millisecond)

	ok, _ := r.SinkWritesTotal.GetMetricWithLabelValues("csv", StatusSuccess)
	if v := counterValue(t, ok); v != 2 {
		t.Errorf("csv success = %v, want 2", v)
	}
	failed, _ := r.SinkWritesTotal.GetMetricWithLabelValues("s3", StatusError)
	if v := counterValue(t, failed); v != 1 {
		t.Errorf("s3 error = %v, want 1", v)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.SetComponents(3)
	r.SetAverageDegree(2.5)
	r.RecordLoadFailure("format")

	path := filepath.Join(t.TempDir(), "graphstats.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"graphstats_graph_connected_components 3",
		"graphstats_graph_average_degree 2.5",
		`graphstats_load_failures_total{kind="format"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}
}
