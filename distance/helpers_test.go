package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// requireAlmostEqual fails unless |want-got| < 1.5 * 10^-decimal, the same
// criterion as numpy.testing.assert_almost_equal.
func requireAlmostEqual(t *testing.T, want, got float64, decimal int, msgAndArgs ...any) {
	t.Helper()
	tol := 1.5 * math.Pow(10, -float64(decimal))
	require.Truef(t, math.Abs(want-got) < tol,
		"want %.12f, got %.12f (decimal=%d) %v", want, got, decimal, msgAndArgs)
}

// requireAllAlmostEqual applies requireAlmostEqual element-wise.
func requireAllAlmostEqual(t *testing.T, want, got []float64, decimal int) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		requireAlmostEqual(t, want[i], got[i], decimal, "index", i)
	}
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// naiveDistance is an independent single-pair reference.
func naiveDistance(a, b []float32) float64 {
	var sum float64
	for k := range 3 {
		d := float64(a[k]) - float64(b[k])
		sum += d * d
	}
	return math.Sqrt(sum)
}
