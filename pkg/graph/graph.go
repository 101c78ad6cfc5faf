package graph

// Graph is an immutable undirected multigraph. Node i's neighbors occupy
// neighbors[offsets[i]:offsets[i+1]]; a self-loop appears there twice.
type Graph struct {
	index     map[uint64]int
	external  []uint64
	edges     []Edge
	offsets   []int
	neighbors []int
}

// Empty returns a graph with no nodes.
func Empty() *Graph {
	return NewBuilder(0).Build()
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.external)
}

// EdgeCount returns the number of edges, parallel edges included.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Degree returns the number of edge endpoints incident to node i.
func (g *Graph) Degree(i int) int {
	return g.offsets[i+1] - g.offsets[i]
}

// Neighbors returns node i's adjacency. The slice must not be modified.
func (g *Graph) Neighbors(i int) []int {
	return g.neighbors[g.offsets[i]:g.offsets[i+1]:g.offsets[i+1]]
}

// ExternalID returns the identifier node i was created from.
func (g *Graph) ExternalID(i int) uint64 {
	return g.external[i]
}

// Index returns the internal index of an external identifier.
func (g *Graph) Index(id uint64) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// EachEdge calls fn for every edge in insertion order until fn returns false.
func (g *Graph) EachEdge(fn func(Edge) bool) {
	for _, e := range g.edges {
		if !fn(e) {
			return
		}
	}
}
