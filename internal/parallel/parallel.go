// Package parallel provides parallel execution helpers for row-partitioned kernels.
package parallel

import (
	"runtime"
	"sync"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Resolve maps a configured worker count to an effective one.
// Zero or negative means auto-detect.
func Resolve(n int) int {
	if n <= 0 {
		return NumWorkers()
	}
	return n
}

// ForRange splits [start, end) into at most n contiguous ranges of equal size
// and calls fn(rangeStart, rangeEnd) for each, concurrently when n > 1.
func ForRange(start, end, n int, fn func(rangeStart, rangeEnd int)) {
	total := end - start
	if total <= 0 {
		return
	}
	if n <= 1 || total == 1 {
		fn(start, end)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (total + n - 1) / n

	for w := 0; w < n; w++ {
		chunkStart := start + w*chunkSize
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > end {
			chunkEnd = end
		}
		if chunkStart >= chunkEnd {
			break
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(chunkStart, chunkEnd)
	}

	wg.Wait()
}

// ForChunked executes fn for chunks of indices pulled from a shared queue.
// fn receives (chunkStart, chunkEnd) for each chunk. Use it when per-index
// cost is uneven, e.g. triangular loops.
func ForChunked(start, end, chunkSize, n int, fn func(chunkStart, chunkEnd int)) {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	if n <= 1 {
		for s := start; s < end; s += chunkSize {
			e := s + chunkSize
			if e > end {
				e = end
			}
			fn(s, e)
		}
		return
	}

	var wg sync.WaitGroup
	chunks := make(chan [2]int, n)

	// Start workers
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range chunks {
				fn(chunk[0], chunk[1])
			}
		}()
	}

	// Send chunks
	for s := start; s < end; s += chunkSize {
		e := s + chunkSize
		if e > end {
			e = end
		}
		chunks <- [2]int{s, e}
	}
	close(chunks)

	wg.Wait()
}
