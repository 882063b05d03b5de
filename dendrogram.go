package mst

import "sort"

// dendrogram is the single-linkage hierarchy reconstructed from the
// Borůvka edge stream. Node ids: leaves are original point indices
// 0..n-1; the internal node created by (reordered) edge slot i is n+i.
type dendrogram struct {
	parents      []int     // 2n-1; -1 at the root
	heights      []float64 // n-1; weight of each internal node's edge
	chainOffsets []int     // chain c covers slots [chainOffsets[c], chainOffsets[c+1])
	chainLevels  []int     // depth of each chain; the root chain is 0
	order        []int     // engine slot -> reordered slot
}

// buildDendrogram assigns every node's dendrogram parent without running
// a union-find over weight-sorted edges. Each edge walks its sided-parent
// links to the first edge that outranks it; edges sharing that stop link
// form one chain, and a chain is an independent parent run: each edge's
// parent is its successor, the chain maximum attaches to the stop edge.
// The chain of edges that outrank everything above them is the root
// chain, and its maximum is the dendrogram root.
//
// Edges are reordered so chains occupy contiguous slots, ascending by
// weight within a chain; chains are emitted in (level, stop link) order.
func buildDendrogram(n int, edges []treeEdge, sidedParents, leafParents, perm []int, workers int) *dendrogram {
	m := len(edges) // n-1

	// Stop-walk. Sided-parent links always point at later slots, so on
	// equal weights the ancestor outranks the edge and the walk stops.
	key := make([]int, m)
	parallelFor(m, workers, func(start, end int) {
		for s := start; s < end; s++ {
			cur := sidedParents[s]
			for cur != -1 {
				a := cur >> 1
				if edges[s].weight <= edges[a].weight {
					break
				}
				cur = sidedParents[a]
			}
			key[s] = cur
		}
	})

	// Chains are runs of equal key once slots are sorted by
	// (key, weight, slot); within a run the order is the merge order.
	bySlot := make([]int, m)
	for s := range bySlot {
		bySlot[s] = s
	}
	sort.Slice(bySlot, func(i, j int) bool {
		a, b := bySlot[i], bySlot[j]
		if key[a] != key[b] {
			return key[a] < key[b]
		}
		if edges[a].weight != edges[b].weight {
			return edges[a].weight < edges[b].weight
		}
		return a < b
	})

	var chainStart []int
	chainOf := make([]int, m)
	for i := 0; i < m; i++ {
		if i == 0 || key[bySlot[i]] != key[bySlot[i-1]] {
			chainStart = append(chainStart, i)
		}
		chainOf[bySlot[i]] = len(chainStart) - 1
	}
	numChains := len(chainStart)
	chainEnd := func(c int) int {
		if c+1 < numChains {
			return chainStart[c+1]
		}
		return m
	}
	chainKey := func(c int) int { return key[bySlot[chainStart[c]]] }

	// Parent runs, still in engine slot space.
	parentOld := make([]int, m)
	parallelFor(numChains, workers, func(start, end int) {
		for c := start; c < end; c++ {
			lo, hi := chainStart[c], chainEnd(c)
			for i := lo; i < hi-1; i++ {
				parentOld[bySlot[i]] = bySlot[i+1]
			}
			if k := chainKey(c); k == -1 {
				parentOld[bySlot[hi-1]] = -1
			} else {
				parentOld[bySlot[hi-1]] = k >> 1
			}
		}
	})

	// Chain levels: one deeper than the chain holding the stop edge.
	levels := make([]int, numChains)
	for c := range levels {
		levels[c] = -1
	}
	var path []int
	for c := 0; c < numChains; c++ {
		g := c
		path = path[:0]
		for levels[g] == -1 {
			if chainKey(g) == -1 {
				levels[g] = 0
				break
			}
			path = append(path, g)
			g = chainOf[chainKey(g)>>1]
		}
		lvl := levels[g]
		for i := len(path) - 1; i >= 0; i-- {
			lvl++
			levels[path[i]] = lvl
		}
	}

	// Emit chains in (level, stop link) order and renumber slots so every
	// chain is contiguous.
	chainOrder := make([]int, numChains)
	for c := range chainOrder {
		chainOrder[c] = c
	}
	sort.Slice(chainOrder, func(i, j int) bool {
		a, b := chainOrder[i], chainOrder[j]
		if levels[a] != levels[b] {
			return levels[a] < levels[b]
		}
		return chainKey(a) < chainKey(b)
	})

	d := &dendrogram{
		parents:      make([]int, 2*n-1),
		heights:      make([]float64, m),
		chainOffsets: make([]int, numChains+1),
		chainLevels:  make([]int, numChains),
		order:        make([]int, m),
	}

	slot := 0
	for rank, c := range chainOrder {
		d.chainOffsets[rank] = slot
		d.chainLevels[rank] = levels[c]
		for i := chainStart[c]; i < chainEnd(c); i++ {
			d.order[bySlot[i]] = slot
			slot++
		}
	}
	d.chainOffsets[numChains] = slot

	parallelFor(m, workers, func(start, end int) {
		for s := start; s < end; s++ {
			ns := d.order[s]
			d.heights[ns] = edges[s].weight
			if parentOld[s] == -1 {
				d.parents[n+ns] = -1
			} else {
				d.parents[n+ns] = n + d.order[parentOld[s]]
			}
		}
	})
	parallelFor(n, workers, func(start, end int) {
		for leaf := start; leaf < end; leaf++ {
			d.parents[perm[leaf]] = n + d.order[leafParents[leaf]]
		}
	})

	return d
}
