package graph

// DisjointSet is a union-find forest over [0, n) with union by size and
// path halving.
type DisjointSet struct {
	parent []int
	size   []int
	sets   int
}

// NewDisjointSet returns n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	d := &DisjointSet{
		parent: make([]int, n),
		size:   make([]int, n),
		sets:   n,
	}
	for i := range d.parent {
		d.parent[i] = i
		d.size[i] = 1
	}
	return d
}

// Find returns the representative of x's set.
func (d *DisjointSet) Find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// Union merges the sets of x and y and reports whether they were distinct.
func (d *DisjointSet) Union(x, y int) bool {
	rx, ry := d.Find(x), d.Find(y)
	if rx == ry {
		return false
	}
	if d.size[rx] < d.size[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	d.size[rx] += d.size[ry]
	d.sets--
	return true
}

// Sets returns the number of disjoint sets.
func (d *DisjointSet) Sets() int {
	return d.sets
}

// SizeOf returns the size of x's set.
func (d *DisjointSet) SizeOf(x int) int {
	return d.size[d.Find(x)]
}
