package pipeline

import (
	"context"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/report"
)

// S3Factory builds the client behind the S3 sink.
type S3Factory func(ctx context.Context, opts report.S3Options) (report.ObjectPutter, error)

// PostgresFactory opens the connection behind the Postgres sink and returns
// a function that closes it.
type PostgresFactory func(ctx context.Context, dsn string) (report.PgConn, func(context.Context) error, error)

func defaultS3Factory(ctx context.Context, opts report.S3Options) (report.ObjectPutter, error) {
	return report.NewS3Client(ctx, opts)
}

func defaultPostgresFactory(ctx context.Context, dsn string) (report.PgConn, func(context.Context) error, error) {
	conn, err := report.ConnectPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Close, nil
}

// unavailableSink stands in for a sink whose client could not be built, so
// the failure is reported like any other write failure.
type unavailableSink struct {
	name   string
	target string
	cause  error
}

func (s unavailableSink) Name() string { return s.name }

func (s unavailableSink) Target(string) string { return s.target }

func (s unavailableSink) Write(context.Context, string, analyzer.DegreeDistribution) error {
	return &report.SinkError{Sink: s.name, Target: s.target, Cause: s.cause}
}

// buildSinks returns the file sink first, then S3, then Postgres, then any
// extra sinks. The returned function releases open connections.
func (r *Runner) buildSinks(ctx context.Context, cfg config.Config) ([]report.Sink, func()) {
	sinks := []report.Sink{report.FileSink{Path: cfg.Report.Path}}
	var closers []func(context.Context) error

	if s3cfg := cfg.Report.S3; s3cfg.Enabled() {
		client, err := r.s3(ctx, report.S3Options{
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     s3cfg.AccessKeyID,
			SecretAccessKey: s3cfg.SecretAccessKey,
			UsePathStyle:    s3cfg.UsePathStyle,
		})
		if err != nil {
			sinks = append(sinks, unavailableSink{name: "s3", target: "s3://" + s3cfg.Bucket, cause: err})
		} else {
			sinks = append(sinks, report.NewS3Sink(client, s3cfg.Bucket, s3cfg.Prefix))
		}
	}

	if pg := cfg.Report.Postgres; pg.Enabled() {
		conn, closeConn, err := r.postgres(ctx, pg.DSN)
		if err != nil {
			sinks = append(sinks, unavailableSink{name: "postgres", target: pg.Table, cause: err})
		} else {
			sinks = append(sinks, report.NewPostgresSink(conn, pg.Table))
			if closeConn != nil {
				closers = append(closers, closeConn)
			}
		}
	}

	sinks = append(sinks, r.sinks...)
	return sinks, func() {
		for _, c := range closers {
			_ = c(context.WithoutCancel(ctx))
		}
	}
}
