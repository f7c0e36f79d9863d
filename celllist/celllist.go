// Package celllist finds all pairs of 3-D points closer than a cutoff using a
// uniform grid of cells, with optional orthogonal periodic boundaries.
//
// It is an opt-in acceleration path next to the brute-force kernels of
// package distance: every reported distance is computed by
// distance.PairDistance and is therefore bit-identical to the corresponding
// entry of distance.CrossDistance or distance.SelfDistance.
package celllist

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/nozzle/mdist/distance"
	xmath "github.com/nozzle/mdist/internal/math"
)

// ErrCutoff is returned for a cutoff that is not positive and finite.
var ErrCutoff = errors.New("celllist: cutoff must be positive and finite")

// minPeriodicCells is the smallest number of cells a periodic axis may have.
// With fewer, the 27-cell neighbourhood would visit a cell twice.
const minPeriodicCells = 3

// cellMargin widens cells slightly so that rounding in the cell index
// computation cannot separate two points that are exactly one cutoff apart
// by more than one cell.
const cellMargin = 1 + 1e-6

// Pair is a pair of point indices and the distance between them.
type Pair struct {
	I, J     int
	Distance float64
}

// CappedDistance returns every pair (i, j) of reference point i and
// configuration point j whose distance is at most cutoff, sorted by I then J.
func CappedDistance(reference, configuration []float32, cutoff float64, box *distance.Box) ([]Pair, error) {
	n, err := distance.PointCount(reference)
	if err != nil {
		return nil, fmt.Errorf("CappedDistance: reference: %w", err)
	}
	m, err := distance.PointCount(configuration)
	if err != nil {
		return nil, fmt.Errorf("CappedDistance: configuration: %w", err)
	}
	if err := checkCutoff(cutoff); err != nil {
		return nil, fmt.Errorf("CappedDistance: %w", err)
	}
	if n == 0 || m == 0 {
		return []Pair{}, nil
	}

	g, ok := newGrid(cutoff, box, n+m, reference, configuration)
	if !ok {
		return bruteCross(reference, configuration, cutoff, box), nil
	}
	g.insert(configuration)

	var pairs []Pair
	for i := 0; i < n; i++ {
		g.visitNeighbours(xmath.At(reference, i), func(j int) {
			if d := distance.PairDistance(reference, i, configuration, j, box); d <= cutoff {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
			}
		})
	}
	sortPairs(pairs)
	return nonNil(pairs), nil
}

// SelfCappedDistance returns every pair i < j of coordinates whose distance
// is at most cutoff, sorted by I then J.
func SelfCappedDistance(coordinates []float32, cutoff float64, box *distance.Box) ([]Pair, error) {
	n, err := distance.PointCount(coordinates)
	if err != nil {
		return nil, fmt.Errorf("SelfCappedDistance: coordinates: %w", err)
	}
	if err := checkCutoff(cutoff); err != nil {
		return nil, fmt.Errorf("SelfCappedDistance: %w", err)
	}
	if n < 2 {
		return []Pair{}, nil
	}

	g, ok := newGrid(cutoff, box, n, coordinates)
	if !ok {
		return bruteSelf(coordinates, cutoff, box), nil
	}
	g.insert(coordinates)

	var pairs []Pair
	for i := 0; i < n; i++ {
		g.visitNeighbours(xmath.At(coordinates, i), func(j int) {
			if j <= i {
				return
			}
			if d := distance.PairDistance(coordinates, i, coordinates, j, box); d <= cutoff {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
			}
		})
	}
	sortPairs(pairs)
	return nonNil(pairs), nil
}

func checkCutoff(cutoff float64) error {
	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return fmt.Errorf("cutoff %v: %w", cutoff, ErrCutoff)
	}
	return nil
}

func sortPairs(pairs []Pair) {
	slices.SortFunc(pairs, func(a, b Pair) int {
		if c := cmp.Compare(a.I, b.I); c != 0 {
			return c
		}
		return cmp.Compare(a.J, b.J)
	})
}

func nonNil(pairs []Pair) []Pair {
	if pairs == nil {
		return []Pair{}
	}
	return pairs
}

func bruteCross(reference, configuration []float32, cutoff float64, box *distance.Box) []Pair {
	pairs := []Pair{}
	for i := 0; i < len(reference)/3; i++ {
		for j := 0; j < len(configuration)/3; j++ {
			if d := distance.PairDistance(reference, i, configuration, j, box); d <= cutoff {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
			}
		}
	}
	return pairs
}

func bruteSelf(coordinates []float32, cutoff float64, box *distance.Box) []Pair {
	n := len(coordinates) / 3
	pairs := []Pair{}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if d := distance.PairDistance(coordinates, i, coordinates, j, box); d <= cutoff {
				pairs = append(pairs, Pair{I: i, J: j, Distance: d})
			}
		}
	}
	return pairs
}
