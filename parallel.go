package mst

import "sync"

// parallelFor runs fn over [0, n) split into contiguous chunks, one chunk
// per worker goroutine. Chunks do not overlap, so fn may write per-index
// state without synchronization. Falls back to a plain loop when workers
// <= 1. Returns only after all chunks complete (full barrier).
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
