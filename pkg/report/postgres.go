package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DefaultTable receives distribution rows when no table is configured.
const DefaultTable = "degree_distribution"

// PgConn is the part of *pgx.Conn the sink uses.
type PgConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// ConnectPostgres opens a connection for PostgresSink.
func ConnectPostgres(ctx context.Context, dsn string) (*pgx.Conn, error) {
	return pgx.Connect(ctx, dsn)
}

// PostgresSink stores one row per degree, keyed by run id.
type PostgresSink struct {
	conn  PgConn
	table pgx.Identifier
}

// NewPostgresSink writes into table, which may be schema qualified.
func NewPostgresSink(conn PgConn, table string) *PostgresSink {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSink{conn: conn, table: pgx.Identifier(strings.Split(table, "."))}
}

var copyColumns = []string{"run_id", "degree", "node_count"}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Target(string) string { return s.table.Sanitize() }

func (s *PostgresSink) Write(ctx context.Context, runID string, d analyzer.DegreeDistribution) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	run_id     text    NOT NULL,
	degree     integer NOT NULL,
	node_count integer NOT NULL,
	PRIMARY KEY (run_id, degree)
)`, s.table.Sanitize())
	if _, err := s.conn.Exec(ctx, ddl); err != nil {
		return &SinkError{Sink: s.Name(), Target: s.Target(runID), Cause: err}
	}

	degrees := d.Degrees()
	rows := make([][]any, 0, len(degrees))
	for _, degree := range degrees {
		rows = append(rows, []any{runID, degree, d[degree]})
	}

	n, err := s.conn.CopyFrom(ctx, s.table, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return &SinkError{Sink: s.Name(), Target: s.Target(runID), Cause: err}
	}
	if n != int64(len(rows)) {
		return &SinkError{Sink: s.Name(), Target: s.Target(runID),
			Cause: fmt.Errorf("copied %d of %d rows", n, len(rows))}
	}
	return nil
}
