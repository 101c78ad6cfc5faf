// Package pipeline runs one batch analysis: load the edge list, print the
// statistics, deliver the report to every configured sink and dump metrics.
package pipeline

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/dd0wney/cluso-graphstats/pkg/analyzer"
	"github.com/dd0wney/cluso-graphstats/pkg/config"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
	"github.com/dd0wney/cluso-graphstats/pkg/report"
	"github.com/google/uuid"
)

// ErrSinks is returned by Result.Err when at least one sink failed.
var ErrSinks = errors.New("one or more report sinks failed")

// Result describes a finished run.
type Result struct {
	RunID      string
	Summary    analyzer.Summary
	SinkErrors []error
}

// Err joins the sink failures under ErrSinks, or returns nil.
func (r *Result) Err() error {
	if len(r.SinkErrors) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrSinks}, r.SinkErrors...)...)
}

// Runner holds the collaborators of a run. The zero value is not usable;
// build one with New.
type Runner struct {
	stdout   io.Writer
	stderr   io.Writer
	logger   logging.Logger
	metrics  *metrics.Registry
	runID    string
	s3       S3Factory
	postgres PostgresFactory
	sinks    []report.Sink
}

// New returns a Runner printing to the process streams, logging nowhere and
// recording into a fresh metrics registry.
func New(opts ...Option) *Runner {
	r := &Runner{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		logger:   logging.NewNopLogger(),
		s3:       defaultS3Factory,
		postgres: defaultPostgresFactory,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.metrics == nil {
		r.metrics = metrics.NewRegistry()
	}
	return r
}

// Run executes cfg. A load failure is returned before anything is printed
// to stdout. Sink failures never abort the run; they are collected in the
// Result, whose Err reports them.
func (r *Runner) Run(ctx context.Context, cfg config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	runID := r.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := r.logger.With(logging.RunID(runID))
	console := report.NewConsole(r.stdout, r.stderr, cfg.Report.Styled)

	a, err := analyzer.Load(cfg.Input.Path,
		analyzer.WithOpenOptions(cfg.Input.OpenOptions()),
		analyzer.WithWorkers(cfg.Analysis.Workers),
		analyzer.WithLogger(logger),
		analyzer.WithMetrics(r.metrics),
	)
	if err != nil {
		console.Failed("Error loading graph", err)
		r.dumpMetrics(cfg, logger)
		return nil, err
	}

	summary := a.Summary()
	console.Loaded(summary.Nodes, summary.Edges)
	console.Distribution(summary.Distribution)

	result := &Result{RunID: runID, Summary: summary}
	sinks, closeSinks := r.buildSinks(ctx, cfg)
	defer closeSinks()
	for _, sink := range sinks {
		if err := r.deliver(ctx, sink, runID, summary.Distribution, console, logger); err != nil {
			result.SinkErrors = append(result.SinkErrors, err)
		}
	}

	console.Totals(summary)
	logger.Info("analysis complete",
		logging.Nodes(summary.Nodes),
		logging.Edges(summary.Edges),
		logging.Components(summary.Components),
		logging.Float64("average_degree", summary.AverageDegree),
		logging.Int("failed_sinks", len(result.SinkErrors)),
	)
	r.dumpMetrics(cfg, logger)
	return result, nil
}

func (r *Runner) deliver(ctx context.Context, sink report.Sink, runID string, d analyzer.DegreeDistribution, console *report.Console, logger logging.Logger) error {
	target := sink.Target(runID)
	start := time.Now()
	err := sink.Write(ctx, runID, d)
	elapsed := time.Since(start)
	r.metrics.RecordSinkWrite(sink.Name(), err, elapsed)

	if err != nil {
		console.Failed("Failed to save degree distribution", err)
		logger.Warn("sink write failed",
			logging.Sink(sink.Name()),
			logging.String("target", target),
			logging.Error(err),
		)
		return err
	}
	console.Saved(sink.Name(), target)
	logger.Info("sink write complete",
		logging.Sink(sink.Name()),
		logging.String("target", target),
		logging.Latency(elapsed),
	)
	return nil
}

func (r *Runner) dumpMetrics(cfg config.Config, logger logging.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := r.metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("metrics textfile write failed", logging.Path(cfg.Metrics.Textfile), logging.Error(err))
	}
}

// Run executes cfg with a default Runner.
func Run(ctx context.Context, cfg config.Config, opts ...Option) (*Result, error) {
	return New(opts...).Run(ctx, cfg)
}
