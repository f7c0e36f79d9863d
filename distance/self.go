package distance

import (
	"fmt"

	xmath "github.com/nozzle/mdist/internal/math"
	"github.com/nozzle/mdist/internal/parallel"
)

// selfChunkRows is the number of rows a worker takes from the queue at a
// time. Rows shrink towards the end of the triangle, so work is handed out in
// small chunks rather than equal ranges.
const selfChunkRows = 16

// SelfDistance computes the distance of every pair i < j of coordinates in
// condensed order: for i in [0,N), for j in (i,N). The result has
// N*(N-1)/2 elements; no pair is computed twice and no diagonal is produced.
//
// box, result and numWorkers behave as in CrossDistance.
func SelfDistance(coordinates []float32, box *Box, result []float64, numWorkers int) ([]float64, error) {
	n, err := PointCount(coordinates)
	if err != nil {
		return nil, fmt.Errorf("SelfDistance: coordinates: %w", err)
	}
	pairs := CondensedLen(n)
	result, err = prepareResult(result, pairs)
	if err != nil {
		return nil, fmt.Errorf("SelfDistance: %w", err)
	}

	if numWorkers <= 1 || pairs < MinParallelPairs {
		selfRows(coordinates, box, result, 0, n)
		return result, nil
	}

	coords, out := coordinates, result
	parallel.ForChunked(0, n, selfChunkRows, numWorkers, func(lo, hi int) {
		selfRows(coords, box, out, lo, hi)
	})
	return result, nil
}

// selfRows fills the condensed entries of rows [lo, hi).
func selfRows(coordinates []float32, box *Box, out []float64, lo, hi int) {
	n := len(coordinates) / 3
	for i := lo; i < hi; i++ {
		ri := xmath.At(coordinates, i)
		k := rowOffset(n, i)
		for j := i + 1; j < n; j++ {
			d := xmath.Sub(ri, xmath.At(coordinates, j))
			d = MinimumImage(d, box)
			out[k] = xmath.Norm(d)
			k++
		}
	}
}
