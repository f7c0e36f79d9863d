package distance

import "fmt"

// PointCount returns the number of xyz points held in coords, or
// ErrDimension when the buffer cannot be split into 3-component points.
func PointCount(coords []float32) (int, error) {
	if len(coords)%3 != 0 {
		return 0, fmt.Errorf("%d components, not a multiple of 3: %w", len(coords), ErrDimension)
	}
	return len(coords) / 3, nil
}

// prepareResult returns result when it has exactly want elements, or a new
// buffer when result is nil. A buffer of any other length is rejected
// untouched.
func prepareResult(result []float64, want int) ([]float64, error) {
	if result == nil {
		return make([]float64, want), nil
	}
	if len(result) != want {
		return nil, fmt.Errorf("result has %d elements, want %d: %w", len(result), want, ErrShape)
	}
	return result, nil
}
