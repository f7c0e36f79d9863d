package distance

import (
	"math"

	xmath "github.com/nozzle/mdist/internal/math"
)

// MinimumImage returns the displacement d corrected for periodic boundaries.
// Each component on a periodic axis of edge L is shifted by a multiple of L
// into (-L/2, L/2]. With a nil box, or on an axis whose edge is zero,
// negative, NaN or infinite, the component is returned unchanged.
func MinimumImage(d [3]float64, box *Box) [3]float64 {
	if box == nil {
		return d
	}
	for k := range 3 {
		l := float64(box[k])
		if !periodicEdge(l) {
			continue
		}
		d[k] -= math.Ceil(d[k]/l-0.5) * l
	}
	return d
}

func periodicEdge(l float64) bool {
	return l > 0 && xmath.IsFinite(l)
}
