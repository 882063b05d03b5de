package mst

// componentLabels tracks the current component id of every spatial-index
// node. Leaves 0..n-1 carry the component of their point; an internal node
// carries the component shared by all of its descendant leaves, or -1
// while its descendants still straddle components. Component ids are leaf
// ids — specifically the minimum leaf id in the component, maintained by
// the min-root union-find.
type componentLabels struct {
	n    int
	node []int
}

func newComponentLabels(n int) *componentLabels {
	l := &componentLabels{n: n, node: make([]int, 2*n-1)}
	for i := 0; i < n; i++ {
		l.node[i] = i
	}
	for i := n; i < len(l.node); i++ {
		l.node[i] = -1
	}
	return l
}

// propagate refreshes internal-node labels from the leaves. Internal ids
// are post-ordered (children always precede parents), so a single
// ascending pass over the arena replaces a recursive traversal.
func (l *componentLabels) propagate(idx *spatialIndex) {
	for m := l.n; m < len(l.node); m++ {
		lc := l.node[idx.left[m]]
		if lc != -1 && lc == l.node[idx.right[m]] {
			l.node[m] = lc
		} else {
			l.node[m] = -1
		}
	}
}

// remap rewrites every leaf's label through next, which maps each
// pre-merge component id to its surviving id. Internal labels become
// stale and are refreshed by the next propagate call.
func (l *componentLabels) remap(next []int, workers int) {
	parallelFor(l.n, workers, func(start, end int) {
		for leaf := start; leaf < end; leaf++ {
			l.node[leaf] = next[l.node[leaf]]
		}
	})
}
