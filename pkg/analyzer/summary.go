package analyzer

import "github.com/dd0wney/cluso-graphstats/pkg/edgelist"

// Summary bundles every statistic a report needs.
type Summary struct {
	Nodes            int
	Edges            int
	Distribution     DegreeDistribution
	AverageDegree    float64
	Components       int
	LargestComponent int
	MaxDegree        int
	MedianDegree     float64
	Lines            edgelist.Stats
}

// Summary computes all statistics in one pass over the queries.
func (a *Analyzer) Summary() Summary {
	dist := a.DegreeDistribution()
	s := Summary{
		Nodes:            a.NodeCount(),
		Edges:            a.EdgeCount(),
		Distribution:     dist,
		AverageDegree:    dist.Average(),
		Components:       a.CountConnectedComponents(),
		LargestComponent: a.LargestComponentSize(),
		MaxDegree:        dist.MaxDegree(),
		MedianDegree:     dist.Median(),
		Lines:            a.lines,
	}
	if a.metrics != nil {
		a.metrics.SetComponents(s.Components)
		a.metrics.SetAverageDegree(s.AverageDegree)
	}
	return s
}
