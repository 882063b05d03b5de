package mst

import (
	"math"

	"go.uber.org/zap"
)

// treeEdge is an MST edge during construction. Endpoints are leaf ids of
// the spatial index until finalization maps them to original point
// indices.
type treeEdge struct {
	u, w   int
	weight float64
}

// edgeLess is the canonical strict total order on candidate edges:
// by weight, then by smaller endpoint, then by larger endpoint (endpoints
// compared direction-free). Every selection and tie in the loop is
// resolved through this order, which is what makes the output
// bit-identical across runs and worker counts.
func edgeLess(d1 float64, u1, w1 int, d2 float64, u2, w2 int) bool {
	if d1 != d2 {
		return d1 < d2
	}
	if u1 > w1 {
		u1, w1 = w1, u1
	}
	if u2 > w2 {
		u2, w2 = w2, u2
	}
	if u1 != u2 {
		return u1 < u2
	}
	return w1 < w2
}

// boruvkaEngine runs the parallel Borůvka loop over the spatial index.
// All scratch arrays are allocated once, sized from n, and reset in place
// each round; the engine is dropped when the loop finishes.
type boruvkaEngine struct {
	idx     *spatialIndex
	metric  pointMetric
	workers int
	logger  *zap.Logger
	dendro  bool

	labels *componentLabels
	uf     *unionFind
	comps  []int // live component ids, ascending

	// Candidate found by each leaf during the parallel search phase.
	candDist  []float64
	candOther []int

	// Frontier state per component, indexed by component id (a leaf id).
	// radii[c] is the weight of c's pick from the previous round; a
	// radius-seeding optimization can start the next search from it.
	bestDist  []float64
	bestSelf  []int
	bestOther []int
	radii     []float64

	// Accepted edges in slot order, plus dendrogram bookkeeping.
	edges        []treeEdge
	acceptedSlot []int // per component: slot of its own pick this round
	leafParents  []int // per leaf: slot of its first (round-1) edge
	sidedParents []int // per slot: 2*next slot + side, -1 on the root chain
	edgeOffsets  []int // cumulative edge count at each round boundary

	next []int // scratch: pre-merge component id -> survivor
}

func newBoruvkaEngine(idx *spatialIndex, metric pointMetric, workers int, logger *zap.Logger, dendro bool) *boruvkaEngine {
	n := idx.n
	e := &boruvkaEngine{
		idx:     idx,
		metric:  metric,
		workers: workers,
		logger:  logger,
		dendro:  dendro,

		labels: newComponentLabels(n),
		uf:     newUnionFind(n),
		comps:  make([]int, n),

		candDist:  make([]float64, n),
		candOther: make([]int, n),
		bestDist:  make([]float64, n),
		bestSelf:  make([]int, n),
		bestOther: make([]int, n),
		radii:     make([]float64, n),

		edges:        make([]treeEdge, 0, n-1),
		acceptedSlot: make([]int, n),
		edgeOffsets:  []int{0},
		next:         make([]int, n),
	}
	for i := range e.comps {
		e.comps[i] = i
	}
	if dendro {
		e.leafParents = make([]int, n)
		e.sidedParents = make([]int, 0, n-1)
	}
	return e
}

// run executes Borůvka rounds until a single component remains and
// returns the n-1 accepted edges in acceptance order.
func (e *boruvkaEngine) run() []treeEdge {
	round := 0
	prevStart := 0
	for len(e.comps) > 1 {
		round++
		roundStart := len(e.edges)

		e.labels.propagate(e.idx)
		e.resetFrontier()
		e.searchCandidates()
		e.reduceCandidates()
		e.acceptEdges()

		if e.dendro {
			if round == 1 {
				e.assignLeafParents()
			} else {
				e.updateSidedParents(prevStart, roundStart)
			}
		}

		e.mergeComponents(roundStart)
		e.edgeOffsets = append(e.edgeOffsets, len(e.edges))
		prevStart = roundStart

		e.logger.Debug("boruvka round complete",
			zap.Int("round", round),
			zap.Int("components", len(e.comps)),
			zap.Int("edges", len(e.edges)))
	}
	return e.edges
}

func (e *boruvkaEngine) resetFrontier() {
	for _, c := range e.comps {
		e.bestDist[c] = math.Inf(1)
		e.bestSelf[c] = -1
		e.bestOther[c] = -1
		e.radii[c] = math.Inf(1)
	}
}

// searchCandidates finds, for every leaf in parallel, the nearest point
// outside the leaf's component. Each leaf writes only its own slot.
func (e *boruvkaEngine) searchCandidates() {
	parallelFor(e.idx.n, e.workers, func(start, end int) {
		for leaf := start; leaf < end; leaf++ {
			own := e.labels.node[leaf]
			p := e.idx.perm[leaf]
			query := e.idx.point(leaf)

			best := math.Inf(1)
			bestLeaf := -1
			e.searchNode(e.idx.root(), own, p, query, &best, &bestLeaf)

			e.candDist[leaf] = best
			e.candOther[leaf] = bestLeaf
		}
	})
}

// searchNode descends the index, skipping subtrees wholly inside the
// query's component and subtrees whose metric lower bound cannot beat the
// current candidate. Bounds equal to the candidate are still visited so
// exact-tie winners are found regardless of traversal order.
func (e *boruvkaEngine) searchNode(node, own, p int, query []float64, best *float64, bestLeaf *int) {
	if e.labels.node[node] == own {
		return
	}
	if node < e.idx.n {
		d := e.metric.distance(p, e.idx.perm[node])
		if d < *best || (d == *best && node < *bestLeaf) {
			*best = d
			*bestLeaf = node
		}
		return
	}

	near, far := e.idx.left[node], e.idx.right[node]
	nearBound := e.metric.searchBound(e.idx.boxDistance(near, query), p)
	farBound := e.metric.searchBound(e.idx.boxDistance(far, query), p)
	if farBound < nearBound {
		near, far = far, near
		nearBound, farBound = farBound, nearBound
	}

	if nearBound <= *best {
		e.searchNode(near, own, p, query, best, bestLeaf)
	}
	if farBound <= *best {
		e.searchNode(far, own, p, query, best, bestLeaf)
	}
}

// reduceCandidates folds per-leaf candidates into per-component champions.
// The scan runs sequentially in ascending leaf order, so the champion is
// the canonical minimum no matter how the search phase was scheduled.
func (e *boruvkaEngine) reduceCandidates() {
	for leaf := 0; leaf < e.idx.n; leaf++ {
		other := e.candOther[leaf]
		if other == -1 {
			continue
		}
		d := e.candDist[leaf]
		c := e.labels.node[leaf]
		if edgeLess(d, leaf, other, e.bestDist[c], e.bestSelf[c], e.bestOther[c]) {
			e.bestDist[c] = d
			e.bestSelf[c] = leaf
			e.bestOther[c] = other
		}
	}
	for _, c := range e.comps {
		e.radii[c] = e.bestDist[c]
	}
}

// acceptEdges appends each component's champion to the edge list. When two
// components pick each other they necessarily picked the same undirected
// edge (it is the unique minimum of their shared cut), so only the lower
// component id appends it; the higher id inherits the slot.
func (e *boruvkaEngine) acceptEdges() {
	for _, c := range e.comps {
		u, w := e.bestSelf[c], e.bestOther[c]
		if u == -1 {
			continue
		}
		oc := e.labels.node[w]
		if oc < c && e.bestSelf[oc] == w && e.bestOther[oc] == u {
			e.acceptedSlot[c] = e.acceptedSlot[oc]
			continue
		}
		slot := len(e.edges)
		e.edges = append(e.edges, treeEdge{u: u, w: w, weight: e.bestDist[c]})
		if e.dendro {
			e.sidedParents = append(e.sidedParents, -1)
		}
		e.acceptedSlot[c] = slot
	}
}

// assignLeafParents records each point's first merge. In round 1 every
// component is a singleton leaf, so a leaf's parent edge is its own
// component's accepted slot.
func (e *boruvkaEngine) assignLeafParents() {
	parallelFor(e.idx.n, e.workers, func(start, end int) {
		for leaf := start; leaf < end; leaf++ {
			e.leafParents[leaf] = e.acceptedSlot[leaf]
		}
	})
}

// updateSidedParents links every edge of the previous round to the edge
// that merges its component this round, tagging which endpoint component
// of the new edge it sits in. Runs before mergeComponents, while labels
// still describe the pre-merge partition.
func (e *boruvkaEngine) updateSidedParents(prevStart, prevEnd int) {
	parallelFor(prevEnd-prevStart, e.workers, func(start, end int) {
		for s := prevStart + start; s < prevStart+end; s++ {
			c := e.labels.node[e.edges[s].u]
			slot := e.acceptedSlot[c]
			side := 0
			if e.labels.node[e.edges[slot].u] != c {
				side = 1
			}
			e.sidedParents[s] = 2*slot + side
		}
	})
}

// mergeComponents unions the endpoints of this round's edges and rewrites
// leaf labels to the surviving component ids.
func (e *boruvkaEngine) mergeComponents(roundStart int) {
	for s := roundStart; s < len(e.edges); s++ {
		e.uf.union(e.edges[s].u, e.edges[s].w)
	}

	for _, c := range e.comps {
		e.next[c] = e.uf.find(c)
	}

	live := e.comps[:0]
	for _, c := range e.comps {
		if e.next[c] == c {
			live = append(live, c)
		}
	}
	e.comps = live

	e.labels.remap(e.next, e.workers)
}
