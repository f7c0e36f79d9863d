// Package rand provides random number generation compatible with NumPy's RandomState.
// It is used to build reproducible synthetic coordinate sets. This implements the Mersenne Twister (MT19937) algorithm for exact reproducibility
// with Python's numpy.random.RandomState.
package rand

const (
	mtN        = 624
	mtM        = 397
	matrixA    = 0x9908b0df
	upperMask  = 0x80000000
	lowerMask  = 0x7fffffff
	temperingB = 0x9d2c5680
	temperingC = 0xefc60000
)

// MT19937 is a Mersenne Twister random number generator compatible with NumPy.
type MT19937 struct {
	mt  [mtN]uint32
	mti int
}

// NewMT19937 creates a new Mersenne Twister with the given seed.
// This matches numpy.random.RandomState(seed).
func NewMT19937(seed uint32) *MT19937 {
	mt := &MT19937{}
	mt.Seed(seed)
	return mt
}

// Seed initializes the generator with a seed.
// This matches numpy.random.RandomState(seed) initialization.
func (mt *MT19937) Seed(seed uint32) {
	mt.mt[0] = seed
	for i := 1; i < mtN; i++ {
		mt.mt[i] = 1812433253*(mt.mt[i-1]^(mt.mt[i-1]>>30)) + uint32(i)
	}
	mt.mti = mtN
}

// Uint32 generates a random uint32.
func (mt *MT19937) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0, matrixA}

	if mt.mti >= mtN {
		// Generate N words at a time
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&1]
		}
		for ; kk < mtN-1; kk++ {
			y = (mt.mt[kk] & upperMask) | (mt.mt[kk+1] & lowerMask)
			mt.mt[kk] = mt.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&1]
		}
		y = (mt.mt[mtN-1] & upperMask) | (mt.mt[0] & lowerMask)
		mt.mt[mtN-1] = mt.mt[mtM-1] ^ (y >> 1) ^ mag01[y&1]
		mt.mti = 0
	}

	y = mt.mt[mt.mti]
	mt.mti++

	// Tempering
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18

	return y
}

// Float64 generates a random float64 in [0, 1).
// This matches numpy's random_sample() / uniform(0, 1).
func (mt *MT19937) Float64() float64 {
	// NumPy uses (Uint32() >> 5) * (1.0 / 67108864.0) + (Uint32() >> 6) * (1.0 / 9007199254740992.0)
	// for 53-bit precision. Simplified version:
	a := mt.Uint32() >> 5
	b := mt.Uint32() >> 6
	return (float64(a)*67108864.0 + float64(b)) * (1.0 / 9007199254740992.0)
}

// Uniform generates a random float64 in [low, high).
// This matches numpy.random.uniform(low, high).
func (mt *MT19937) Uniform(low, high float64) float64 {
	return low + (high-low)*mt.Float64()
}

// UniformFloat32 generates a random float32 in [low, high).
func (mt *MT19937) UniformFloat32(low, high float32) float32 {
	return float32(mt.Uniform(float64(low), float64(high)))
}

// UniformPoints returns n points as a flat xyz buffer with every component
// drawn from [low, high). This matches
// numpy.random.RandomState(seed).uniform(low, high, (n, 3)).astype(numpy.float32).
func (mt *MT19937) UniformPoints(n int, low, high float32) []float32 {
	coords := make([]float32, 3*n)
	for i := range coords {
		coords[i] = mt.UniformFloat32(low, high)
	}
	return coords
}

// PointsInBox returns n points uniformly distributed in [0, box[k]) on each axis.
func (mt *MT19937) PointsInBox(n int, box [3]float32) []float32 {
	coords := make([]float32, 3*n)
	for i := range n {
		for k := range 3 {
			coords[3*i+k] = mt.UniformFloat32(0, box[k])
		}
	}
	return coords
}
