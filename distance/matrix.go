package distance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// CondensedLen returns N*(N-1)/2, the length of the condensed vector of n
// points. It is zero for fewer than two points.
func CondensedLen(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

// rowOffset is the condensed index of pair (i, i+1).
func rowOffset(n, i int) int {
	return i*n - i*(i+1)/2
}

// CondensedIndex returns the position of pair (i, j) in the condensed vector
// of n points. The order of i and j does not matter.
func CondensedIndex(n, i, j int) (int, error) {
	if i > j {
		i, j = j, i
	}
	if i < 0 || j >= n || i == j {
		return 0, fmt.Errorf("CondensedIndex: pair (%d, %d) of %d points: %w", i, j, n, ErrShape)
	}
	return rowOffset(n, i) + j - i - 1, nil
}

// CondensedPoints returns the number of points whose condensed vector has
// length l, or false if l is not a triangular number. Zero maps to one point.
func CondensedPoints(l int) (int, bool) {
	if l < 0 {
		return 0, false
	}
	n := int(math.Round((1 + math.Sqrt(1+8*float64(l))) / 2))
	if CondensedLen(n) != l {
		return 0, false
	}
	return n, true
}

// AsDense wraps an N*M CrossDistance result as an n×m gonum matrix. The
// matrix shares the backing slice; nothing is copied.
func AsDense(result []float64, n, m int) (*mat.Dense, error) {
	if n <= 0 || m <= 0 || len(result) != n*m {
		return nil, fmt.Errorf("AsDense: %d elements as %d×%d: %w", len(result), n, m, ErrShape)
	}
	return mat.NewDense(n, m, result), nil
}

// SquareForm expands a condensed vector into the full symmetric distance
// matrix with a zero diagonal.
func SquareForm(condensed []float64) (*mat.SymDense, error) {
	n, ok := CondensedPoints(len(condensed))
	if !ok {
		return nil, fmt.Errorf("SquareForm: length %d is not N*(N-1)/2: %w", len(condensed), ErrShape)
	}
	sym := mat.NewSymDense(n, nil)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sym.SetSym(i, j, condensed[k])
			k++
		}
	}
	return sym, nil
}

// Condense packs the strict upper triangle of a symmetric matrix into a
// condensed vector. result follows the same rules as in SelfDistance.
func Condense(m mat.Symmetric, result []float64) ([]float64, error) {
	n := m.SymmetricDim()
	result, err := prepareResult(result, CondensedLen(n))
	if err != nil {
		return nil, fmt.Errorf("Condense: %w", err)
	}
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			result[k] = m.At(i, j)
			k++
		}
	}
	return result, nil
}
