package report

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkUploadsReport(t *testing.T) {
	putter := &fakePutter{}
	sink := NewS3Sink(putter, "analytics", "graphstats/facebook")

	err := sink.Write(context.Background(), "run-1", analyzer.DegreeDistribution{1: 2, 2: 2})
	require.NoError(t, err)

	require.NotNil(t, putter.input)
	assert.Equal(t, "analytics", *putter.input.Bucket)
	assert.Equal(t, "graphstats/facebook/run-1/degree_distribution.csv", *putter.input.Key)
	assert.Equal(t, "text/csv", *putter.input.ContentType)
	assert.Equal(t, int64(len(putter.body)), *putter.input.ContentLength)
	assert.Equal(t, "degree,count\n1,2\n2,2\n", putter.body)
	assert.Equal(t, "s3://analytics/graphstats/facebook/run-1/degree_distribution.csv", sink.Target("run-1"))
}

func TestS3SinkWrapsFailure(t *testing.T) {
	denied := errors.New("access denied")
	sink := NewS3Sink(&fakePutter{err: denied}, "b", "")

	err := sink.Write(context.Background(), "run-2", analyzer.DegreeDistribution{})
	require.Error(t, err)
	assert.ErrorIs(t, err, denied)
	assert.ErrorIs(t, err, ErrSink)

	var se *SinkError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "s3", se.Sink)
	assert.Equal(t, "s3://b/run-2/degree_distribution.csv", se.Target)
}

type fakeConn struct {
	execSQL []string
	table   pgx.Identifier
	columns []string
	rows    [][]any
	execErr error
	copyErr error
	shortBy int
}

func (f *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return pgconn.CommandTag{}, f.execErr
}

func (f *fakeConn) CopyFrom(_ context.Context, table pgx.Identifier, columns []string, src pgx.CopyFromSource) (int64, error) {
	if f.copyErr != nil {
		return 0, f.copyErr
	}
	f.table = table
	f.columns = columns
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		f.rows = append(f.rows, values)
	}
	return int64(len(f.rows) - f.shortBy), src.Err()
}

func TestPostgresSinkCopiesRows(t *testing.T) {
	conn := &fakeConn{}
	sink := NewPostgresSink(conn, "stats.degree_distribution")

	err := sink.Write(context.Background(), "run-3", analyzer.DegreeDistribution{3: 1, 1: 2})
	require.NoError(t, err)

	require.Len(t, conn.execSQL, 1)
	assert.Contains(t, conn.execSQL[0], `CREATE TABLE IF NOT EXISTS "stats"."degree_distribution"`)
	assert.Equal(t, pgx.Identifier{"stats", "degree_distribution"}, conn.table)
	assert.Equal(t, []string{"run_id", "degree", "node_count"}, conn.columns)
	assert.Equal(t, [][]any{{"run-3", 1, 2}, {"run-3", 3, 1}}, conn.rows)
}

func TestPostgresSinkFailures(t *testing.T) {
	ddlErr := errors.New("permission denied for schema")
	err := NewPostgresSink(&fakeConn{execErr: ddlErr}, "").Write(context.Background(), "r", analyzer.DegreeDistribution{1: 1})
	assert.ErrorIs(t, err, ddlErr)
	assert.ErrorIs(t, err, ErrSink)

	err = NewPostgresSink(&fakeConn{shortBy: 1}, "").Write(context.Background(), "r", analyzer.DegreeDistribution{1: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "copied 0 of 1 rows")
	assert.Equal(t, `"degree_distribution"`, NewPostgresSink(&fakeConn{}, "").Target(""))
}
