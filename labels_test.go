package mst

import (
	"math/rand"
	"testing"
)

func TestComponentLabels_PropagateAndRemap(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	points := randomPoints(rng, 16, 2)
	n := len(points)
	idx := newSpatialIndex(flatten(points), n, 2)

	labels := newComponentLabels(n)
	labels.propagate(idx)

	// With n singleton components every internal node straddles
	// components and must be marked mixed.
	for m := n; m < idx.numNodes(); m++ {
		if labels.node[m] != -1 {
			t.Errorf("internal node %d labeled %d, want -1", m, labels.node[m])
		}
	}

	// Collapse everything into component 0: every node must agree.
	next := make([]int, n)
	labels.remap(next, 4)
	labels.propagate(idx)
	for m := 0; m < idx.numNodes(); m++ {
		if labels.node[m] != 0 {
			t.Errorf("node %d labeled %d, want 0", m, labels.node[m])
		}
	}
}

func TestComponentLabels_PartialMerge(t *testing.T) {
	// Two well-separated pairs on a line: the index splits them at the
	// top, so after merging each pair the two internal pair nodes are
	// single-valued while the root stays mixed.
	points := [][]float64{{0}, {1}, {100}, {101}}
	n := 4
	idx := newSpatialIndex(flatten(points), n, 1)

	labels := newComponentLabels(n)

	// Merge each leaf with its spatial sibling.
	uf := newUnionFind(n)
	for m := n; m < idx.numNodes(); m++ {
		l, r := idx.left[m], idx.right[m]
		if l < n && r < n {
			uf.union(l, r)
		}
	}
	next := make([]int, n)
	for leaf := 0; leaf < n; leaf++ {
		next[leaf] = uf.find(leaf)
	}
	labels.remap(next, 1)
	labels.propagate(idx)

	if labels.node[idx.root()] != -1 {
		t.Errorf("root labeled %d, want -1", labels.node[idx.root()])
	}
	for m := n; m < idx.numNodes(); m++ {
		l, r := idx.left[m], idx.right[m]
		if l < n && r < n && labels.node[m] == -1 {
			t.Errorf("pair node %d still mixed after merge", m)
		}
	}
}
