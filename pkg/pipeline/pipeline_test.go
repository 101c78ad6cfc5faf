package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
	"github.com/dd0wney/cluso-graphstats/pkg/report"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chain = "id_1,id_2\n0,1\n1,2\n2,3\n"

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T, input string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Input.Path = input
	cfg.Report.Path = filepath.Join(t.TempDir(), "degree_distribution.csv")
	cfg.Report.Styled = false
	return cfg
}

func counter(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

type fakePutter struct {
	key  string
	body string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.key = *in.Key
	f.body = string(data)
	return &s3.PutObjectOutput{}, nil
}

type fakeConn struct {
	rows   [][]any
	closed bool
}

func (f *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeConn) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, src pgx.CopyFromSource) (int64, error) {
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.rows = append(f.rows, values)
	}
	return int64(len(f.rows)), src.Err()
}

func TestRunPrintsAndSaves(t *testing.T) {
	cfg := testConfig(t, writeInput(t, chain))
	var stdout, stderr bytes.Buffer

	result, err := Run(t.Context(), cfg, WithOutput(&stdout, &stderr), WithRunID("run-1"))
	require.NoError(t, err)
	require.NoError(t, result.Err())

	assert.Equal(t, "run-1", result.RunID)
	assert.Equal(t, 4, result.Summary.Nodes)
	assert.Equal(t, 1, result.Summary.Components)
	assert.Empty(t, stderr.String())

	out := stdout.String()
	assert.True(t, strings.HasPrefix(out, "Graph loaded with 4 nodes and 3 edges\n"), out)
	assert.Contains(t, out, "Degree Distribution:\nDegree 1: 2 nodes\nDegree 2: 2 nodes\n")
	assert.Contains(t, out, "Saved degree distribution to file.\n")
	assert.Contains(t, out, "Average node degree: 1.50\n")
	assert.Contains(t, out, "The graph has 1 connected components.\n")
	assert.Less(t, strings.Index(out, "Saved degree"), strings.Index(out, "Average node degree"))

	data, err := os.ReadFile(cfg.Report.Path)
	require.NoError(t, err)
	assert.Equal(t, "degree,count\n1,2\n2,2\n", string(data))
}

func TestRunLoadFailurePrintsNoStatistics(t *testing.T) {
	tests := []struct {
		name  string
		input func(t *testing.T) string
		want  error
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.csv") }, analyzer.ErrIO},
		{"bad identifier", func(t *testing.T) string { return writeInput(t, "h\n0,1\nx,2\n") }, analyzer.ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.input(t))
			var stdout, stderr bytes.Buffer

			result, err := Run(t.Context(), cfg, WithOutput(&stdout, &stderr))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, result)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), "Error loading graph: ")

			_, statErr := os.Stat(cfg.Report.Path)
			assert.True(t, errors.Is(statErr, os.ErrNotExist), "report written after failed load")
		})
	}
}

func TestRunFileSinkFailureContinues(t *testing.T) {
	cfg := testConfig(t, writeInput(t, chain))
	cfg.Report.Path = filepath.Join(t.TempDir(), "no-such-dir", "out.csv")
	reg := metrics.NewRegistry()
	var stdout, stderr bytes.Buffer

	result, err := Run(t.Context(), cfg, WithOutput(&stdout, &stderr), WithMetrics(reg))
	require.NoError(t, err)
	require.Len(t, result.SinkErrors, 1)
	assert.ErrorIs(t, result.Err(), ErrSinks)
	assert.ErrorIs(t, result.Err(), report.ErrSink)

	assert.Contains(t, stderr.String(), "Failed to save degree distribution: ")
	assert.NotContains(t, stdout.String(), "Saved degree distribution")
	assert.Contains(t, stdout.String(), "The graph has 1 connected components.\n")
	assert.Equal(t, 1.0, counter(t, reg.SinkWritesTotal.WithLabelValues("file", metrics.StatusError)))
}

func TestRunRemoteSinks(t *testing.T) {
	cfg := testConfig(t, writeInput(t, chain))
	cfg.Report.S3.Bucket = "analytics"
	cfg.Report.S3.Prefix = "graphstats"
	cfg.Report.Postgres.DSN = "postgres://stats@localhost/stats"

	putter := &fakePutter{}
	conn := &fakeConn{}
	var stdout bytes.Buffer

	result, err := Run(t.Context(), cfg,
		WithOutput(&stdout, io.Discard),
		WithRunID("run-7"),
		WithS3Factory(func(context.Context, report.S3Options) (report.ObjectPutter, error) {
			return putter, nil
		}),
		WithPostgresFactory(func(_ context.Context, dsn string) (report.PgConn, func(context.Context) error, error) {
			assert.Equal(t, cfg.Report.Postgres.DSN, dsn)
			return conn, func(context.Context) error {
				conn.closed = true
				return nil
			}, nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, result.Err())

	assert.Equal(t, "graphstats/run-7/degree_distribution.csv", putter.key)
	assert.Equal(t, "degree,count\n1,2\n2,2\n", putter.body)
	assert.Equal(t, [][]any{{"run-7", 1, 2}, {"run-7", 2, 2}}, conn.rows)
	assert.True(t, conn.closed)

	out := stdout.String()
	assert.Contains(t, out, "Saved degree distribution to s3 (s3://analytics/graphstats/run-7/degree_distribution.csv).\n")
	assert.Contains(t, out, `Saved degree distribution to postgres ("degree_distribution").`)
}

func TestRunUnavailableSink(t *testing.T) {
	cfg := testConfig(t, writeInput(t, chain))
	cfg.Report.S3.Bucket = "analytics"
	refused := errors.New("no credentials")
	var stderr bytes.Buffer

	result, err := Run(t.Context(), cfg,
		WithOutput(io.Discard, &stderr),
		WithS3Factory(func(context.Context, report.S3Options) (report.ObjectPutter, error) {
			return nil, refused
		}),
	)
	require.NoError(t, err)
	require.Len(t, result.SinkErrors, 1)
	assert.ErrorIs(t, result.SinkErrors[0], refused)
	assert.ErrorIs(t, result.SinkErrors[0], report.ErrSink)
	assert.Contains(t, stderr.String(), "s3 sink s3://analytics")

	_, statErr := os.Stat(cfg.Report.Path)
	assert.NoError(t, statErr, "file sink skipped after remote failure")
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	cfg := testConfig(t, writeInput(t, chain))
	cfg.Metrics.Textfile = filepath.Join(t.TempDir(), "graphstats.prom")

	_, err := Run(t.Context(), cfg, WithOutput(io.Discard, io.Discard))
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "graphstats_graph_connected_components 1")
	assert.Contains(t, string(data), `graphstats_report_writes_total{sink="file",status="success"} 1`)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.Workers = 0
	var stdout bytes.Buffer

	_, err := Run(t.Context(), cfg, WithOutput(&stdout, io.Discard))
	require.Error(t, err)
	assert.Empty(t, stdout.String())
}
