package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRangeCoversEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8, 100} {
		hits := make([]int32, 37)
		ForRange(0, len(hits), workers, func(s, e int) {
			for i := s; i < e; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			require.Equalf(t, int32(1), h, "workers=%d index=%d", workers, i)
		}
	}
}

func TestForRangeEmpty(t *testing.T) {
	called := false
	ForRange(5, 5, 4, func(int, int) { called = true })
	assert.False(t, called)
}

func TestForChunkedCoversEveryIndexOnce(t *testing.T) {
	for _, workers := range []int{1, 4} {
		for _, chunk := range []int{0, 1, 7, 64} {
			hits := make([]int32, 50)
			ForChunked(0, len(hits), chunk, workers, func(s, e int) {
				for i := s; i < e; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				require.Equalf(t, int32(1), h, "workers=%d chunk=%d index=%d", workers, chunk, i)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, NumWorkers(), Resolve(0))
	assert.Equal(t, NumWorkers(), Resolve(-3))
	assert.Equal(t, 5, Resolve(5))
}
