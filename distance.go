package mst

import "gonum.org/v1/gonum/floats"

// pointMetric measures the distance between two points identified by their
// index into the flat data array. searchBound tightens a spatial lower
// bound (a box-to-point Euclidean distance) into a lower bound under this
// metric, which the neighbor search uses for subtree pruning.
type pointMetric interface {
	distance(a, b int) float64
	searchBound(boxDist float64, query int) float64
}

// euclidean is the plain L2 metric over flat row-major point data.
type euclidean struct {
	data []float64
	dims int
}

func (m euclidean) distance(a, b int) float64 {
	return floats.Distance(m.row(a), m.row(b), 2)
}

func (m euclidean) searchBound(boxDist float64, _ int) float64 { return boxDist }

func (m euclidean) row(i int) []float64 {
	return m.data[i*m.dims : (i+1)*m.dims]
}

// mutualReachability is the density-aware metric
// max(core(a), core(b), euclidean(a, b)). It is symmetric and satisfies
// the triangle inequality, so box lower bounds remain valid for pruning.
type mutualReachability struct {
	euclidean
	core []float64
}

func (m mutualReachability) distance(a, b int) float64 {
	d := m.euclidean.distance(a, b)
	if c := m.core[a]; c > d {
		d = c
	}
	if c := m.core[b]; c > d {
		d = c
	}
	return d
}

// searchBound folds in the query's own core distance: every
// mutual-reachability distance from the query is at least core(query).
func (m mutualReachability) searchBound(boxDist float64, query int) float64 {
	if c := m.core[query]; c > boxDist {
		return c
	}
	return boxDist
}
