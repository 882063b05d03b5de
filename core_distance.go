package mst

// computeCoreDistances returns, for each point, the distance to its k-th
// nearest neighbor, where the point itself counts as its own first
// neighbor. k=1 therefore yields all-zero core distances, collapsing the
// mutual-reachability metric to plain Euclidean.
//
// Queries run in parallel; each worker owns a contiguous range of points
// and a private heap, so no synchronization beyond the final barrier is
// needed. k must satisfy 1 <= k <= n.
func computeCoreDistances(idx *spatialIndex, k, workers int) []float64 {
	n := idx.n
	core := make([]float64, n)
	if k == 1 {
		return core
	}

	// Leaves hold points in tree order; map results back through perm.
	parallelFor(n, workers, func(start, end int) {
		h := make(knnHeap, 0, k)
		for leaf := start; leaf < end; leaf++ {
			h = h[:0]
			idx.knn(idx.point(leaf), k, &h)
			// The heap top is the k-th smallest distance.
			core[idx.perm[leaf]] = h[0].dist
		}
	})

	return core
}
