package mst

import (
	"math/rand"
	"testing"
)

func generateBenchData(n, dims int) [][]float64 {
	rng := rand.New(rand.NewSource(42))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dims)
		for j := range data[i] {
			data[i][j] = rng.Float64() * 100
		}
	}
	return data
}

// --- Index construction ---

func benchBuildIndex(b *testing.B, n int) {
	b.Helper()
	dims := 2
	flat := flatten(generateBenchData(n, dims))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		newSpatialIndex(flat, n, dims)
	}
}

func BenchmarkBuildIndex_1000(b *testing.B)  { benchBuildIndex(b, 1000) }
func BenchmarkBuildIndex_10000(b *testing.B) { benchBuildIndex(b, 10000) }

// --- Core distances ---

func benchCoreDistances(b *testing.B, n int) {
	b.Helper()
	dims := 2
	idx := newSpatialIndex(flatten(generateBenchData(n, dims)), n, dims)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		computeCoreDistances(idx, 5, 0)
	}
}

func BenchmarkCoreDistances_1000(b *testing.B)  { benchCoreDistances(b, 1000) }
func BenchmarkCoreDistances_10000(b *testing.B) { benchCoreDistances(b, 10000) }

// --- Full computation ---

func benchCompute(b *testing.B, n, k int, mode Mode) {
	b.Helper()
	data := generateBenchData(n, 2)
	cfg := DefaultConfig()
	cfg.K = k
	cfg.Mode = mode
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(data, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompute_Euclidean_1000(b *testing.B)   { benchCompute(b, 1000, 1, ModeMST) }
func BenchmarkCompute_Euclidean_5000(b *testing.B)   { benchCompute(b, 5000, 1, ModeMST) }
func BenchmarkCompute_MutualReach_1000(b *testing.B) { benchCompute(b, 1000, 5, ModeMST) }
func BenchmarkCompute_Dendrogram_1000(b *testing.B)  { benchCompute(b, 1000, 5, ModeDendrogram) }
func BenchmarkCompute_Dendrogram_5000(b *testing.B)  { benchCompute(b, 5000, 5, ModeDendrogram) }
