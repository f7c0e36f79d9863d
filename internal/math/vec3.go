// Package math provides float64 3-vector utilities for the distance kernels.
package math

import "math"

// Vec3 is a 3-D vector in double precision.
type Vec3 [3]float64

// At widens point i of a flat xyz buffer to double precision.
func At(coords []float32, i int) Vec3 {
	p := coords[3*i : 3*i+3 : 3*i+3]
	return Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Sub returns a - b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// NormSquared computes the squared L2 norm of v.
func NormSquared(v Vec3) float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Norm computes the L2 norm of v.
func Norm(v Vec3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Wrap maps x into [0, l) for l > 0. Other values of l return x unchanged.
func Wrap(x, l float64) float64 {
	if !(l > 0) {
		return x
	}
	x -= math.Floor(x/l) * l
	// x/l rounding can land just outside [0, l) for values near a multiple of l.
	if x >= l || x < 0 {
		return 0
	}
	return x
}

// MinInt returns the minimum of two int values.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the maximum of two int values.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
