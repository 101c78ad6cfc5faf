package pipeline

import (
	"io"

	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
	"github.com/dd0wney/cluso-graphstats/pkg/report"
)

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects the console. Statistics go to stdout and failures
// to stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics records into reg instead of a private registry.
func WithMetrics(reg *metrics.Registry) Option {
	return func(r *Runner) {
		r.metrics = reg
	}
}

// WithRunID fixes the run identifier instead of generating a UUID.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// WithS3Factory replaces how the S3 client is built.
func WithS3Factory(f S3Factory) Option {
	return func(r *Runner) {
		r.s3 = f
	}
}

// WithPostgresFactory replaces how the Postgres connection is opened.
func WithPostgresFactory(f PostgresFactory) Option {
	return func(r *Runner) {
		r.postgres = f
	}
}

// WithExtraSinks appends sinks after the configured ones.
func WithExtraSinks(sinks ...report.Sink) Option {
	return func(r *Runner) {
		r.sinks = append(r.sinks, sinks...)
	}
}
