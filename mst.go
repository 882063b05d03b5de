package mst

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

// Mode selects the output shape of Compute.
type Mode string

const (
	// ModeMST produces the minimum spanning tree edges only.
	ModeMST Mode = "mst"
	// ModeDendrogram additionally reconstructs the single-linkage merge
	// hierarchy over the MST edges.
	ModeDendrogram Mode = "dendrogram"
)

// Config controls MST computation.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// K is the neighbor count for the density metric. K=1 uses the plain
	// Euclidean metric; K>1 uses mutual reachability with core distances
	// taken at the K-th nearest neighbor (a point counts as its own first
	// neighbor). Must satisfy 1 <= K <= n. Default: 1.
	K int

	// Mode selects MST-only or MST+dendrogram output. Default: ModeMST.
	Mode Mode

	// Workers is the number of goroutines used in parallel stages.
	// Output does not depend on it. 0 means runtime.NumCPU().
	Workers int

	// Logger receives per-round debug instrumentation. nil disables it.
	Logger *zap.Logger
}

// Edge is one MST edge between two input points, identified by their
// positions in the input slice.
type Edge struct {
	Source int
	Target int
	Weight float64
}

// Result contains the output of Compute.
type Result struct {
	// Edges is the n-1 MST edges. In dendrogram mode they are ordered by
	// chain (see ChainOffsets); otherwise in acceptance order.
	Edges []Edge

	// CoreDistances is the K-th nearest-neighbor distance per point.
	// nil when K == 1.
	CoreDistances []float64

	// DendrogramParents has 2n-1 entries in dendrogram mode: point i's
	// first merge node at index i, and edge slot s's merge node n+s at
	// index n+s. The root carries -1. nil otherwise.
	DendrogramParents []int

	// DendrogramParentHeights is the merge weight of internal node n+s,
	// non-decreasing along every leaf-to-root path. nil outside
	// dendrogram mode.
	DendrogramParentHeights []float64

	// ChainOffsets and ChainLevels describe the chain decomposition of
	// the edge slots: chain c covers [ChainOffsets[c], ChainOffsets[c+1])
	// at depth ChainLevels[c]. The root chain has level 0 and its last
	// edge is the dendrogram root. nil outside dendrogram mode.
	ChainOffsets []int
	ChainLevels  []int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{K: 1, Mode: ModeMST}
}

func applyDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = ModeMST
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// validateInput checks cfg and the point set before any work starts.
func validateInput(points [][]float64, cfg *Config) error {
	n := len(points)
	if n < 2 {
		return fmt.Errorf("mst: need at least 2 points, got %d", n)
	}
	if cfg.K < 1 {
		return fmt.Errorf("mst: K must be >= 1, got %d", cfg.K)
	}
	if cfg.K > n {
		return fmt.Errorf("mst: K must be <= number of points (%d), got %d", n, cfg.K)
	}
	if cfg.Mode != ModeMST && cfg.Mode != ModeDendrogram {
		return fmt.Errorf("mst: invalid Mode %q", cfg.Mode)
	}
	dims := len(points[0])
	if dims == 0 {
		return fmt.Errorf("mst: points must have at least one dimension")
	}
	for i, row := range points {
		if len(row) != dims {
			return fmt.Errorf("mst: point %d has %d dimensions, want %d", i, len(row), dims)
		}
	}
	return nil
}

// Compute builds the minimum spanning tree of the given points under the
// metric selected by cfg.K, and in dendrogram mode the single-linkage
// hierarchy on top of it. Each element of points is one fixed-dimension
// coordinate tuple; the input is not modified. The result is
// deterministic for a given input regardless of cfg.Workers.
func Compute(points [][]float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateInput(points, &cfg); err != nil {
		return nil, err
	}

	n := len(points)
	dims := len(points[0])
	flat := make([]float64, n*dims)
	for i, row := range points {
		copy(flat[i*dims:], row)
	}

	idx := newSpatialIndex(flat, n, dims)

	var core []float64
	metric := pointMetric(euclidean{data: idx.data, dims: dims})
	if cfg.K > 1 {
		core = computeCoreDistances(idx, cfg.K, cfg.Workers)
		metric = mutualReachability{
			euclidean: euclidean{data: idx.data, dims: dims},
			core:      core,
		}
	}

	dendro := cfg.Mode == ModeDendrogram
	engine := newBoruvkaEngine(idx, metric, cfg.Workers, cfg.Logger, dendro)
	edges := engine.run()

	res := &Result{
		Edges:         make([]Edge, len(edges)),
		CoreDistances: core,
	}

	// Endpoints are index leaf ids until here; map them back to input
	// point positions.
	if dendro {
		d := buildDendrogram(n, edges, engine.sidedParents, engine.leafParents, idx.perm, cfg.Workers)
		for s, e := range edges {
			res.Edges[d.order[s]] = Edge{Source: idx.perm[e.u], Target: idx.perm[e.w], Weight: e.weight}
		}
		res.DendrogramParents = d.parents
		res.DendrogramParentHeights = d.heights
		res.ChainOffsets = d.chainOffsets
		res.ChainLevels = d.chainLevels
	} else {
		for s, e := range edges {
			res.Edges[s] = Edge{Source: idx.perm[e.u], Target: idx.perm[e.w], Weight: e.weight}
		}
	}

	return res, nil
}
