// Package analyzer computes descriptive statistics over an undirected
// multigraph read from an edge list: the degree distribution, the average
// degree and the number of connected components.
//
// Load is the only operation that can fail. Every query afterwards is a pure
// read over the immutable graph, recomputed on each call.
package analyzer

import (
	"io"
	"time"

	"github.com/dd0wney/cluso-graphstats/pkg/edgelist"
	"github.com/dd0wney/cluso-graphstats/pkg/graph"
	"github.com/dd0wney/cluso-graphstats/pkg/logging"
	"github.com/dd0wney/cluso-graphstats/pkg/metrics"
	"github.com/dd0wney/cluso-graphstats/pkg/parallel"
)

// Analyzer owns one graph and answers statistical queries over it.
type Analyzer struct {
	graph   *graph.Graph
	lines   edgelist.Stats
	workers int
	logger  logging.Logger
	metrics *metrics.Registry
}

// New wraps an already built graph.
func New(g *graph.Graph, opts ...Option) *Analyzer {
	o := newOptions(opts)
	return newAnalyzer(g, edgelist.Stats{}, o)
}

func newAnalyzer(g *graph.Graph, lines edgelist.Stats, o options) *Analyzer {
	if g == nil {
		g = graph.Empty()
	}
	return &Analyzer{
		graph:   g,
		lines:   lines,
		workers: o.workers,
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// Load opens the edge list at path and builds its graph. It fails with a
// *LoadError matching ErrIO when the file cannot be opened or read, and
// matching ErrFormat when a row holds a non-integer identifier.
func Load(path string, opts ...Option) (*Analyzer, error) {
	o := newOptions(opts)
	timer := logging.StartTimer(o.logger, "load", logging.Path(path))

	rc, err := edgelist.Open(path, o.open)
	if err != nil {
		return nil, o.fail(timer, &LoadError{Op: "open", Path: path, Cause: err})
	}
	defer rc.Close()

	return load(rc, path, o, timer)
}

// LoadReader builds a graph from an edge list already open as r.
func LoadReader(r io.Reader, opts ...Option) (*Analyzer, error) {
	o := newOptions(opts)
	timer := logging.StartTimer(o.logger, "load")
	return load(r, "", o, timer)
}

func load(r io.Reader, path string, o options, timer *logging.TimedOperation) (*Analyzer, error) {
	p := edgelist.NewParser(r)
	b := graph.NewBuilder(0)
	for p.Scan() {
		pair := p.Pair()
		b.Connect(pair.Source, pair.Target)
	}
	lines := p.Stats()
	if err := p.Err(); err != nil {
		return nil, o.fail(timer, &LoadError{Op: "read", Path: path, Cause: err})
	}

	g := b.Build()
	elapsed := timer.End(
		logging.Nodes(g.NodeCount()),
		logging.Edges(g.EdgeCount()),
		logging.Int("lines", lines.Lines),
		logging.Int("skipped_rows", lines.Skipped),
	)
	if o.metrics != nil {
		o.metrics.RecordLines(min(lines.Lines, 1), lines.Pairs, lines.Skipped)
		o.metrics.RecordLoad(g.NodeCount(), g.EdgeCount(), elapsed)
	}
	return newAnalyzer(g, lines, o), nil
}

func (o options) fail(timer *logging.TimedOperation, err *LoadError) error {
	timer.EndError(err)
	if o.metrics != nil {
		o.metrics.RecordLoadFailure(err.Kind())
	}
	return err
}

// NodeCount returns the number of distinct identifiers loaded.
func (a *Analyzer) NodeCount() int {
	return a.graph.NodeCount()
}

// EdgeCount returns the number of edges loaded, parallel edges included.
func (a *Analyzer) EdgeCount() int {
	return a.graph.EdgeCount()
}

// LoadStats returns the parser counters from Load. It is zero for New.
func (a *Analyzer) LoadStats() edgelist.Stats {
	return a.lines
}

func (a *Analyzer) observe(query string, start time.Time) {
	if a.metrics != nil {
		a.metrics.RecordQuery(query, time.Since(start))
	}
}

// DegreeDistribution tallies how many nodes have each degree. An edge adds
// one to each endpoint; a self-loop adds two to its node.
func (a *Analyzer) DegreeDistribution() DegreeDistribution {
	defer a.observe("degree_distribution", time.Now())

	n := a.graph.NodeCount()
	if a.workers <= 1 || n < 2 {
		return a.tally(parallel.Range{Lo: 0, Hi: n})
	}

	partials := make([]DegreeDistribution, a.workers)
	err := parallel.ForEachRange(n, a.workers, func(part int, r parallel.Range) {
		partials[part] = a.tally(r)
	})
	if err != nil {
		a.logger.Warn("parallel degree tally failed, recomputing sequentially", logging.Error(err))
		return a.tally(parallel.Range{Lo: 0, Hi: n})
	}

	merged := make(DegreeDistribution)
	for _, partial := range partials {
		for degree, count := range partial {
			merged[degree] += count
		}
	}
	return merged
}

func (a *Analyzer) tally(r parallel.Range) DegreeDistribution {
	d := make(DegreeDistribution)
	for i := r.Lo; i < r.Hi; i++ {
		d[a.graph.Degree(i)]++
	}
	return d
}

// AverageDegree returns the mean node degree, or 0.0 for a graph with no
// nodes.
func (a *Analyzer) AverageDegree() float64 {
	defer a.observe("average_degree", time.Now())
	return a.DegreeDistribution().Average()
}
