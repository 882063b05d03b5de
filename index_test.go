package mst

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

func flatten(points [][]float64) []float64 {
	dims := len(points[0])
	flat := make([]float64, len(points)*dims)
	for i, row := range points {
		copy(flat[i*dims:], row)
	}
	return flat
}

func TestSpatialIndex_ArenaStructure(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	points := randomPoints(rng, 53, 3)
	n, dims := len(points), 3

	idx := newSpatialIndex(flatten(points), n, dims)

	if idx.numNodes() != 2*n-1 {
		t.Fatalf("expected %d nodes, got %d", 2*n-1, idx.numNodes())
	}
	if idx.parent[idx.root()] != -1 {
		t.Errorf("root parent = %d, want -1", idx.parent[idx.root()])
	}

	// perm must be a permutation of the points.
	seen := make([]bool, n)
	for _, p := range idx.perm {
		if p < 0 || p >= n || seen[p] {
			t.Fatalf("perm is not a permutation: %v", idx.perm)
		}
		seen[p] = true
	}

	for m := n; m < idx.numNodes(); m++ {
		l, r := idx.left[m], idx.right[m]
		if l == -1 || r == -1 {
			t.Fatalf("internal node %d missing a child", m)
		}
		// Post-order ids: children always precede their parent.
		if l >= m || r >= m {
			t.Errorf("node %d has child id >= its own (%d, %d)", m, l, r)
		}
		if idx.parent[l] != m || idx.parent[r] != m {
			t.Errorf("node %d: child parent links inconsistent", m)
		}
		// The node's box must cover both child boxes.
		for j := 0; j < dims; j++ {
			if idx.boxMin[m*dims+j] > idx.boxMin[l*dims+j] || idx.boxMin[m*dims+j] > idx.boxMin[r*dims+j] {
				t.Errorf("node %d: box min does not cover children in dim %d", m, j)
			}
			if idx.boxMax[m*dims+j] < idx.boxMax[l*dims+j] || idx.boxMax[m*dims+j] < idx.boxMax[r*dims+j] {
				t.Errorf("node %d: box max does not cover children in dim %d", m, j)
			}
		}
	}

	// Leaf ids are 0..n-1 and their boxes are the points themselves.
	for leaf := 0; leaf < n; leaf++ {
		if idx.left[leaf] != -1 || idx.right[leaf] != -1 {
			t.Errorf("leaf %d has children", leaf)
		}
		pt := idx.point(leaf)
		for j := 0; j < dims; j++ {
			if idx.boxMin[leaf*dims+j] != pt[j] || idx.boxMax[leaf*dims+j] != pt[j] {
				t.Errorf("leaf %d box does not equal its point", leaf)
			}
		}
	}
}

func TestSpatialIndex_KNNMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	points := randomPoints(rng, 80, 2)
	n := len(points)

	idx := newSpatialIndex(flatten(points), n, 2)

	for _, k := range []int{1, 3, 7} {
		for i := range points {
			h := make(knnHeap, 0, k)
			idx.knn(points[i], k, &h)
			if h.Len() != k {
				t.Fatalf("k=%d query %d: got %d results", k, i, h.Len())
			}

			dists := make([]float64, n)
			for j := range points {
				dists[j] = euclidDist(points[i], points[j])
			}
			sort.Float64s(dists)

			if got, want := h[0].dist, dists[k-1]; math.Abs(got-want) > 1e-12 {
				t.Errorf("k=%d query %d: k-th distance %g, want %g", k, i, got, want)
			}
		}
	}
}

func TestSpatialIndex_BoxDistance(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	idx := newSpatialIndex(flatten(points), 4, 2)

	root := idx.root()
	if d := idx.boxDistance(root, []float64{0.5, 0.5}); d != 0 {
		t.Errorf("inside point: distance %g, want 0", d)
	}
	if d := idx.boxDistance(root, []float64{4, 1}); math.Abs(d-3) > 1e-12 {
		t.Errorf("outside point: distance %g, want 3", d)
	}
	if d := idx.boxDistance(root, []float64{4, 5}); math.Abs(d-5) > 1e-12 {
		t.Errorf("corner point: distance %g, want 5", d)
	}
}
