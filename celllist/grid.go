package celllist

import (
	"math"

	"github.com/nozzle/mdist/distance"
	xmath "github.com/nozzle/mdist/internal/math"
)

// axis describes the cell decomposition along one dimension.
type axis struct {
	periodic bool
	lo       float64 // origin of a non-periodic axis
	length   float64 // box edge of a periodic axis
	size     float64 // cell edge, never smaller than the cutoff
	cells    int
}

// index returns the cell holding coordinate x.
func (a *axis) index(x float64) int {
	if a.periodic {
		x = xmath.Wrap(x, a.length)
	} else {
		x -= a.lo
	}
	c := int(x / a.size)
	if c < 0 {
		return 0
	}
	if c >= a.cells {
		return a.cells - 1
	}
	return c
}

// neighbour maps a cell index one step outside [0, cells) back into range on
// a periodic axis, and rejects it on a non-periodic one.
func (a *axis) neighbour(c int) (int, bool) {
	if a.periodic {
		return (c + a.cells) % a.cells, true
	}
	return c, c >= 0 && c < a.cells
}

// grid is a cell list: head holds the first point of each cell and next
// chains the remaining points of the same cell. -1 terminates a chain.
type grid struct {
	axes [3]axis
	head []int32
	next []int32
}

// newGrid lays out cells for the given point sets. It reports false when a
// periodic axis is too short for minPeriodicCells cells of at least cutoff,
// in which case the caller must fall back to a full scan.
func newGrid(cutoff float64, box *distance.Box, total int, sets ...[]float32) (*grid, bool) {
	limit := xmath.MaxInt(minPeriodicCells, int(math.Cbrt(float64(total)))+1)
	g := &grid{}
	cells := 1
	for k := range 3 {
		a := &g.axes[k]
		if box.Periodic(k) {
			a.periodic = true
			a.length = float64(box[k])
			a.cells = cellsFor(a.length, cutoff, limit)
			if a.cells < minPeriodicCells {
				return nil, false
			}
			a.size = a.length / float64(a.cells)
		} else {
			lo, hi := bounds(k, sets)
			a.lo = lo
			a.cells = xmath.MaxInt(1, cellsFor(hi-lo, cutoff, limit))
			a.size = (hi - lo) / float64(a.cells)
			if !(a.size >= cutoff) {
				a.size = cutoff
			}
		}
		cells *= a.cells
	}

	g.head = make([]int32, cells)
	for c := range g.head {
		g.head[c] = -1
	}
	return g, true
}

// cellsFor returns how many cells no smaller than cutoff fit in span,
// capped at limit.
func cellsFor(span, cutoff float64, limit int) int {
	f := math.Floor(span / (cutoff * cellMargin))
	if !(f >= 1) {
		return 0
	}
	if f > float64(limit) {
		return limit
	}
	return int(f)
}

// bounds returns the extent of axis k over all point sets.
func bounds(k int, sets [][]float32) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, coords := range sets {
		for i := k; i < len(coords); i += 3 {
			x := float64(coords[i])
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
	}
	if !xmath.IsFinite(lo) || !xmath.IsFinite(hi) {
		return 0, 0
	}
	return lo, hi
}

func (g *grid) flat(x, y, z int) int {
	return (x*g.axes[1].cells+y)*g.axes[2].cells + z
}

func (g *grid) cellOf(p xmath.Vec3) int {
	return g.flat(g.axes[0].index(p[0]), g.axes[1].index(p[1]), g.axes[2].index(p[2]))
}

// insert chains every point of coords into its cell.
func (g *grid) insert(coords []float32) {
	n := len(coords) / 3
	g.next = make([]int32, n)
	for j := 0; j < n; j++ {
		c := g.cellOf(xmath.At(coords, j))
		g.next[j] = g.head[c]
		g.head[c] = int32(j)
	}
}

// visitNeighbours calls fn for every inserted point in the cell of p and the
// 26 cells around it.
func (g *grid) visitNeighbours(p xmath.Vec3, fn func(j int)) {
	var c [3]int
	for k := range 3 {
		c[k] = g.axes[k].index(p[k])
	}
	for dx := -1; dx <= 1; dx++ {
		x, ok := g.axes[0].neighbour(c[0] + dx)
		if !ok {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			y, ok := g.axes[1].neighbour(c[1] + dy)
			if !ok {
				continue
			}
			for dz := -1; dz <= 1; dz++ {
				z, ok := g.axes[2].neighbour(c[2] + dz)
				if !ok {
					continue
				}
				for j := g.head[g.flat(x, y, z)]; j >= 0; j = g.next[j] {
					fn(int(j))
				}
			}
		}
	}
}
