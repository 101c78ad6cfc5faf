package analyzer

import (
	"maps"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DegreeDistribution maps a degree value to the number of nodes with that
// degree. Only observed degrees are present.
type DegreeDistribution map[int]int

// NodeCount returns the sum of all counts.
func (d DegreeDistribution) NodeCount() int {
	total := 0
	for _, count := range d {
		total += count
	}
	return total
}

// DegreeSum returns the sum of degree*count, which is twice the edge count.
func (d DegreeDistribution) DegreeSum() int {
	total := 0
	for degree, count := range d {
		total += degree * count
	}
	return total
}

// Average returns DegreeSum / NodeCount, or 0 for an empty distribution.
func (d DegreeDistribution) Average() float64 {
	nodes := d.NodeCount()
	if nodes == 0 {
		return 0.0
	}
	return float64(d.DegreeSum()) / float64(nodes)
}

// Degrees returns the observed degree values in ascending order.
func (d DegreeDistribution) Degrees() []int {
	return slices.Sorted(maps.Keys(d))
}

// MaxDegree returns the largest observed degree, or 0 when empty.
func (d DegreeDistribution) MaxDegree() int {
	maxDegree := 0
	for degree := range d {
		maxDegree = max(maxDegree, degree)
	}
	return maxDegree
}

// Median returns the weighted empirical median degree, or 0 when empty.
func (d DegreeDistribution) Median() float64 {
	if len(d) == 0 {
		return 0
	}
	degrees := d.Degrees()
	x := make([]float64, len(degrees))
	weights := make([]float64, len(degrees))
	for i, degree := range degrees {
		x[i] = float64(degree)
		weights[i] = float64(d[degree])
	}
	return stat.Quantile(0.5, stat.Empirical, x, weights)
}

// Equal reports whether both distributions hold the same entries.
func (d DegreeDistribution) Equal(other DegreeDistribution) bool {
	return maps.Equal(d, other)
}
