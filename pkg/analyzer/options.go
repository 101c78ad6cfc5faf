package analyzer

import (
	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
)

type options struct {
	workers int
	logger  logging.Logger
	metrics *metrics.Registry
	open    edgelist.OpenOptions
}

// Option configures an Analyzer.
type Option func(*options)

// WithWorkers sets how many goroutines tally degrees. One (the default)
// keeps the computation sequential; results are identical either way.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records load and query metrics into r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *options) {
		o.metrics = r
	}
}

// WithOpenOptions controls how Load opens its input file.
func WithOpenOptions(open edgelist.OpenOptions) Option {
	return func(o *options) {
		o.open = open
	}
}

func newOptions(opts []Option) options {
	o := options{
		workers: 1,
		logger:  logging.NewNopLogger(),
		open:    edgelist.OpenOptions{Compression: edgelist.CompressionAuto},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
