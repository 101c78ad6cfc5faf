package graph

import "fmt"

// Edge is an unordered pair of internal node indices.
type Edge struct {
	A, B int
}

// IsLoop reports whether both endpoints are the same node.
func (e Edge) IsLoop() bool {
	return e.A == e.B
}

// Builder accumulates nodes and edges. It is append-only and not safe for
// concurrent use.
type Builder struct {
	index    map[uint64]int
	external []uint64
	edges    []Edge
}

// NewBuilder returns an empty builder. sizeHint is the expected node count.
func NewBuilder(sizeHint int) *Builder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Builder{
		index:    make(map[uint64]int, sizeHint),
		external: make([]uint64, 0, sizeHint),
	}
}

// EnsureNode returns the internal index of id, allocating the next index the
// first time id is seen.
func (b *Builder) EnsureNode(id uint64) int {
	if idx, ok := b.index[id]; ok {
		return idx
	}
	idx := len(b.external)
	b.index[id] = idx
	b.external = append(b.external, id)
	return idx
}

// AddEdge appends an edge between two indices returned by EnsureNode. An
// existing edge between the same pair is not merged.
func (b *Builder) AddEdge(a, c int) {
	n := len(b.external)
	if a < 0 || a >= n || c < 0 || c >= n {
		panic(fmt.Sprintf("graph: AddEdge(%d, %d) out of range [0, %d)", a, c, n))
	}
	b.edges = append(b.edges, Edge{A: a, B: c})
}

// Connect ensures both identifiers and adds the edge between them.
func (b *Builder) Connect(source, target uint64) {
	b.AddEdge(b.EnsureNode(source), b.EnsureNode(target))
}

// NodeCount returns the number of distinct identifiers seen so far.
func (b *Builder) NodeCount() int {
	return len(b.external)
}

// EdgeCount returns the number of edges added so far.
func (b *Builder) EdgeCount() int {
	return len(b.edges)
}

// Build freezes the builder's contents into a Graph. The builder can still be
// used afterwards; the Graph does not share its slices.
func (b *Builder) Build() *Graph {
	n := len(b.external)

	offsets := make([]int, n+1)
	for _, e := range b.edges {
		offsets[e.A+1]++
		offsets[e.B+1]++
	}
	for i := 1; i <= n; i++ {
		offsets[i] += offsets[i-1]
	}

	neighbors := make([]int, offsets[n])
	cursor := make([]int, n)
	copy(cursor, offsets[:n])
	for _, e := range b.edges {
		neighbors[cursor[e.A]] = e.B
		cursor[e.A]++
		neighbors[cursor[e.B]] = e.A
		cursor[e.B]++
	}

	index := make(map[uint64]int, len(b.index))
	for id, idx := range b.index {
		index[id] = idx
	}

	return &Graph{
		index:     index,
		external:  append([]uint64(nil), b.external...),
		edges:     append([]Edge(nil), b.edges...),
		offsets:   offsets,
		neighbors: neighbors,
	}
}
