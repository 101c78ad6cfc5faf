package analyzer

import (
	"sort"
	"time"

	"github.com/dd0wney/cluso-graphstats/pkg/graph"
)

// Component is one maximal set of mutually reachable nodes.
type Component struct {
	ID    int
	Nodes []uint64 // external identifiers, in discovery order
	Size  int
}

func (a *Analyzer) disjointSets() *graph.DisjointSet {
	sets := graph.NewDisjointSet(a.graph.NodeCount())
	a.graph.EachEdge(func(e graph.Edge) bool {
		if !e.IsLoop() {
			sets.Union(e.A, e.B)
		}
		return true
	})
	return sets
}

// CountConnectedComponents returns the number of connected components.
// Isolated nodes are components of their own; an empty graph has none.
func (a *Analyzer) CountConnectedComponents() int {
	defer a.observe("connected_components", time.Now())
	return a.disjointSets().Sets()
}

// LargestComponentSize returns the node count of the biggest component, or
// 0 for an empty graph.
func (a *Analyzer) LargestComponentSize() int {
	sets := a.disjointSets()
	largest := 0
	for i := 0; i < a.graph.NodeCount(); i++ {
		if sets.Find(i) == i {
			largest = max(largest, sets.SizeOf(i))
		}
	}
	return largest
}

// Components lists every connected component, largest first. Components of
// equal size keep the order in which their first node was loaded.
func (a *Analyzer) Components() []*Component {
	defer a.observe("components", time.Now())

	n := a.graph.NodeCount()
	visited := make([]bool, n)
	components := make([]*Component, 0)
	queue := make([]int, 0)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}

		component := &Component{Nodes: make([]uint64, 0)}
		queue = append(queue[:0], start)
		visited[start] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component.Nodes = append(component.Nodes, a.graph.ExternalID(current))

			for _, next := range a.graph.Neighbors(current) {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		component.Size = len(component.Nodes)
		components = append(components, component)
	}

	sort.SliceStable(components, func(i, j int) bool {
		return components[i].Size > components[j].Size
	})
	for i, c := range components {
		c.ID = i
	}
	return components
}
