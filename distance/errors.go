package distance

import "errors"

// Validation failures. Kernels wrap these with call-site context; match them
// with errors.Is.
var (
	// ErrShape is returned when a result buffer does not have exactly the
	// number of elements the operation produces, or when a condensed vector
	// or index does not describe a valid triangle.
	ErrShape = errors.New("distance: wrong result shape")

	// ErrDimension is returned when a coordinate buffer cannot be split into
	// 3-component points or a box does not have exactly 3 edge lengths.
	ErrDimension = errors.New("distance: not a set of 3-D points")
)
