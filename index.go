package mst

import (
	"container/heap"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// spatialIndex is a KD-tree over n points with exactly one point per leaf,
// stored as a flat arena of 2n-1 nodes. Leaves occupy ids 0..n-1 (a leaf's
// id is its position in tree order; perm[leaf] is the original point
// index). Internal nodes occupy ids n..2n-2, assigned post-order so that
// every internal node id exceeds both of its child ids; the root is 2n-2.
// That ordering lets consumers run bottom-up passes over the arena as a
// single ascending loop.
type spatialIndex struct {
	data []float64 // flat row-major copy of the input
	n    int
	dims int

	perm   []int // tree-order position -> original point index
	parent []int // per node; -1 at the root
	left   []int // per node; -1 at leaves
	right  []int
	boxMin []float64 // per node per dimension
	boxMax []float64

	nextInternal int
}

// newSpatialIndex builds the index from flat row-major data with n points
// of dimensionality dims. The input is copied; n must be >= 2.
func newSpatialIndex(data []float64, n, dims int) *spatialIndex {
	total := 2*n - 1

	dataCopy := make([]float64, len(data))
	copy(dataCopy, data)

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	t := &spatialIndex{
		data:         dataCopy,
		n:            n,
		dims:         dims,
		perm:         perm,
		parent:       make([]int, total),
		left:         make([]int, total),
		right:        make([]int, total),
		boxMin:       make([]float64, total*dims),
		boxMax:       make([]float64, total*dims),
		nextInternal: n,
	}
	for i := range t.left {
		t.left[i] = -1
		t.right[i] = -1
	}

	root := t.build(0, n)
	t.parent[root] = -1
	return t
}

func (t *spatialIndex) numNodes() int { return 2*t.n - 1 }
func (t *spatialIndex) root() int     { return 2*t.n - 2 }

// point returns the coordinates of the point stored at the given leaf.
func (t *spatialIndex) point(leaf int) []float64 {
	p := t.perm[leaf]
	return t.data[p*t.dims : (p+1)*t.dims]
}

// build constructs the subtree over perm[start:end] and returns its node id.
func (t *spatialIndex) build(start, end int) int {
	if end-start == 1 {
		id := start
		base := id * t.dims
		pt := t.point(id)
		copy(t.boxMin[base:base+t.dims], pt)
		copy(t.boxMax[base:base+t.dims], pt)
		return id
	}

	// Split on the dimension with the greatest spread, at the median.
	dim := t.widestDimension(start, end)
	t.sortByDimension(start, end, dim)
	mid := start + (end-start)/2

	l := t.build(start, mid)
	r := t.build(mid, end)

	id := t.nextInternal
	t.nextInternal++
	t.left[id] = l
	t.right[id] = r
	t.parent[l] = id
	t.parent[r] = id

	base := id * t.dims
	lb, rb := l*t.dims, r*t.dims
	for j := 0; j < t.dims; j++ {
		t.boxMin[base+j] = math.Min(t.boxMin[lb+j], t.boxMin[rb+j])
		t.boxMax[base+j] = math.Max(t.boxMax[lb+j], t.boxMax[rb+j])
	}
	return id
}

func (t *spatialIndex) widestDimension(start, end int) int {
	dim := 0
	maxSpread := -1.0
	for d := 0; d < t.dims; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := start; i < end; i++ {
			v := t.data[t.perm[i]*t.dims+d]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if spread := hi - lo; spread > maxSpread {
			maxSpread = spread
			dim = d
		}
	}
	return dim
}

// sortByDimension sorts perm[start:end] by the given coordinate, breaking
// exact ties by original point index so the tree shape is deterministic.
func (t *spatialIndex) sortByDimension(start, end, dim int) {
	sub := t.perm[start:end]
	data, dims := t.data, t.dims
	sort.Slice(sub, func(i, j int) bool {
		a, b := sub[i], sub[j]
		va, vb := data[a*dims+dim], data[b*dims+dim]
		if va != vb {
			return va < vb
		}
		return a < b
	})
}

// boxDistance returns the Euclidean distance from query to the closest
// point of the node's bounding box (0 if the query lies inside it).
func (t *spatialIndex) boxDistance(node int, query []float64) float64 {
	base := node * t.dims
	var sum float64
	for j := 0; j < t.dims; j++ {
		var d float64
		if v := query[j]; v < t.boxMin[base+j] {
			d = t.boxMin[base+j] - v
		} else if v > t.boxMax[base+j] {
			d = v - t.boxMax[base+j]
		}
		sum += d * d
	}
	return math.Sqrt(sum)
}

// knn fills h with the k nearest points to query (Euclidean, including any
// point at zero distance). h must be empty on entry; on return it holds
// min(k, n) items with the largest distance on top.
func (t *spatialIndex) knn(query []float64, k int, h *knnHeap) {
	t.knnSearch(t.root(), query, k, h)
}

func (t *spatialIndex) knnSearch(node int, query []float64, k int, h *knnHeap) {
	if t.left[node] == -1 {
		p := t.perm[node]
		d := floats.Distance(query, t.point(node), 2)
		if h.Len() < k {
			heap.Push(h, knnItem{index: p, dist: d})
		} else if top := (*h)[0]; d < top.dist || (d == top.dist && p < top.index) {
			(*h)[0] = knnItem{index: p, dist: d}
			heap.Fix(h, 0)
		}
		return
	}

	near, far := t.left[node], t.right[node]
	nearDist := t.boxDistance(near, query)
	farDist := t.boxDistance(far, query)
	if farDist < nearDist {
		near, far = far, near
		farDist = nearDist
	}

	t.knnSearch(near, query, k, h)
	if h.Len() < k || farDist <= (*h)[0].dist {
		t.knnSearch(far, query, k, h)
	}
}

// knnItem pairs an original point index with its distance to the query.
type knnItem struct {
	index int
	dist  float64
}

// knnHeap is a max-heap of knnItem (largest distance on top), used as a
// bounded priority queue during k-NN traversal.
type knnHeap []knnItem

func (h knnHeap) Len() int { return len(h) }
func (h knnHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist > h[j].dist
	}
	return h[i].index > h[j].index
}
func (h knnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *knnHeap) Push(x interface{}) { *h = append(*h, x.(knnItem)) }
func (h *knnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
