// Package parallel splits row-wise work across goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultRowThreshold is the row count above which prediction fans out.
const DefaultRowThreshold = 1000

// Parallelize splits [0, items) into one contiguous chunk per CPU and calls fn
// for each chunk concurrently. It returns once every chunk is done.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := min(start+chunk, items)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn over the whole range on the calling goroutine
// when items <= threshold, and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// MapRows fills a slice of length n with fn(i). Chunks write disjoint
// indices, so the result does not depend on scheduling.
func MapRows(n, threshold int, fn func(i int) float64) []float64 {
	out := make([]float64, n)
	ParallelizeWithThreshold(n, threshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = fn(i)
		}
	})
	return out
}
