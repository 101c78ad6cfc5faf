// Package graph holds an immutable undirected multigraph built from external
// node identifiers.
//
// External identifiers are arbitrary uint64 labels. Builder assigns each one a
// dense zero-based index in first-seen order, and Graph stores adjacency as
// contiguous index arrays. Parallel edges are kept and a self-loop contributes
// two endpoints to its node.
package graph
