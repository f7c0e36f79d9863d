// Package distance computes Euclidean distances between sets of 3-D points,
// optionally under the minimum-image convention of an orthogonal periodic box.
//
// Coordinates are flat []float32 buffers holding x, y and z of each point in
// turn. Arithmetic is carried out in float64 and results are float64.
//
// Basic usage:
//
//	d, err := distance.CrossDistance(ref, conf, nil, nil, 1)
//	// d[i*M+j] is the distance between ref point i and conf point j
package distance

import (
	"fmt"

	xmath "github.com/nozzle/mdist/internal/math"
)

// MinParallelPairs is the smallest number of pairs for which a kernel splits
// its outer loop across worker goroutines.
const MinParallelPairs = 1 << 14

// Box holds the edge lengths of an orthogonal periodic cell.
// An axis whose edge is not strictly positive is not periodic.
type Box [3]float32

// NewBox builds a Box from a slice of edge lengths. An empty slice means no
// periodicity and yields a nil Box.
func NewBox(dims []float32) (*Box, error) {
	switch len(dims) {
	case 0:
		return nil, nil
	case 3:
		return &Box{dims[0], dims[1], dims[2]}, nil
	}
	return nil, fmt.Errorf("box has %d components, want 3: %w", len(dims), ErrDimension)
}

// Periodic reports whether axis k wraps.
func (b *Box) Periodic(k int) bool {
	return b != nil && periodicEdge(float64(b[k]))
}

// PairDistance returns the distance between point i of a and point j of b.
// The kernels produce bit-identical values for the same pair.
func PairDistance(a []float32, i int, b []float32, j int, box *Box) float64 {
	d := xmath.Sub(xmath.At(a, i), xmath.At(b, j))
	d = MinimumImage(d, box)
	return xmath.Norm(d)
}
