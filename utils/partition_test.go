package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Buckets cover the index range exactly with a maximum imbalance of one
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				kMin, kMax := pm.GetBucketRange(np)
				histo[kMax-kMin]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		for n := 64; n < 4000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1]))
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Degree clamps: more workers than items collapses to one bucket
		pm := NewPartitionMap(16, 3)
		assert.Equal(t, 1, pm.ParallelDegree)
		kMin, kMax := pm.GetBucketRange(0)
		assert.Equal(t, 0, kMin)
		assert.Equal(t, 3, kMax)
	}
	{ // RunParallel touches every index exactly once
		var (
			n    = 1000
			pm   = NewPartitionMap(7, n)
			hits = make([]int, n)
		)
		pm.RunParallel(func(kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				hits[k]++
			}
		})
		for k := 0; k < n; k++ {
			assert.Equal(t, 1, hits[k])
		}
	}
}

func TestAtomicFloat64(t *testing.T) {
	{ // Concurrent integer-valued adds are exact
		var (
			sum float64
			pm  = NewPartitionMap(8, 8000)
		)
		pm.RunParallel(func(kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				AtomicAddFloat64(&sum, 1)
			}
		})
		assert.Equal(t, 8000., sum)
	}
	{ // Min and max reductions over a contended target
		var (
			lo = math.Inf(1)
			hi = math.Inf(-1)
			pm = NewPartitionMap(8, 5000)
		)
		pm.RunParallel(func(kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				AtomicMinFloat64(&lo, float64(k))
				AtomicMaxFloat64(&hi, float64(k))
			}
		})
		assert.Equal(t, 0., lo)
		assert.Equal(t, 4999., hi)
	}
}
