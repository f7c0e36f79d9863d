package distance

import (
	"fmt"

	xmath "github.com/nozzle/mdist/internal/math"
	"github.com/nozzle/mdist/internal/parallel"
)

// CrossDistance computes the distance between every reference point i and
// every configuration point j, written row-major to result[i*M+j].
//
// If box is non-nil the minimum-image convention is applied. If result is
// nil a new N*M buffer is allocated; otherwise it must hold exactly N*M
// elements and is overwritten and returned. Inputs are validated before
// anything is written.
//
// numWorkers > 1 splits rows across goroutines once the problem has at least
// MinParallelPairs pairs. The serial path with a supplied result does not
// allocate.
func CrossDistance(reference, configuration []float32, box *Box, result []float64, numWorkers int) ([]float64, error) {
	n, err := PointCount(reference)
	if err != nil {
		return nil, fmt.Errorf("CrossDistance: reference: %w", err)
	}
	m, err := PointCount(configuration)
	if err != nil {
		return nil, fmt.Errorf("CrossDistance: configuration: %w", err)
	}
	result, err = prepareResult(result, n*m)
	if err != nil {
		return nil, fmt.Errorf("CrossDistance: %w", err)
	}

	if numWorkers <= 1 || n < 2 || n*m < MinParallelPairs {
		crossRows(reference, configuration, box, result, 0, n)
		return result, nil
	}

	ref, conf, out := reference, configuration, result
	parallel.ForRange(0, n, numWorkers, func(lo, hi int) {
		crossRows(ref, conf, box, out, lo, hi)
	})
	return result, nil
}

// crossRows fills rows [lo, hi) of the N*M result.
func crossRows(reference, configuration []float32, box *Box, out []float64, lo, hi int) {
	m := len(configuration) / 3
	for i := lo; i < hi; i++ {
		ri := xmath.At(reference, i)
		row := out[i*m : (i+1)*m]
		for j := range row {
			d := xmath.Sub(ri, xmath.At(configuration, j))
			d = MinimumImage(d, box)
			row[j] = xmath.Norm(d)
		}
	}
}
