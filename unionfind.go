package mst

// unionFind is a disjoint-set structure whose canonical representative is
// always the minimum element of the set. Component labels in the Borůvka
// loop are union-find roots, so the minimum-root rule is what makes the
// "lower component id wins" tie-break well defined across rounds.
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

// find returns the root of the set containing x, with path halving.
func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union merges the sets containing x and y. The smaller root survives.
// Returns the surviving root.
func (u *unionFind) union(x, y int) int {
	rx := u.find(x)
	ry := u.find(y)
	if rx == ry {
		return rx
	}
	if ry < rx {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	return rx
}
