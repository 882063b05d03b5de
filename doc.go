// Package mst computes minimum spanning trees over point sets using a
// parallel variant of Borůvka's algorithm driven by a KD-tree spatial index.
//
// The metric is either plain Euclidean (K=1) or the density-aware mutual
// reachability distance (K>1), defined as
//
//	max(core(a), core(b), euclidean(a, b))
//
// where core(p) is the distance from p to its K-th nearest neighbor
// (counting p itself). The mutual-reachability MST is the backbone of
// HDBSCAN-style density clustering.
//
// Basic usage:
//
//	cfg := mst.DefaultConfig()
//	cfg.K = 5
//	result, err := mst.Compute(points, cfg)
//	// result.Edges holds the n-1 MST edges
//
// In dendrogram mode the result additionally carries the full
// single-linkage merge hierarchy, reconstructed from the Borůvka edge
// stream by chain decomposition rather than a sequential union-find:
//
//	cfg.Mode = mst.ModeDendrogram
//	result, err := mst.Compute(points, cfg)
//	// result.DendrogramParents, result.DendrogramParentHeights,
//	// result.ChainOffsets, result.ChainLevels
//
// Output is deterministic: the same input produces bit-identical results
// regardless of Config.Workers.
package mst
