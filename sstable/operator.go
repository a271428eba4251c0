package sstable

import (
	"math"
	"sort"
)

// uint32 vector summation
func Uint32VectorSum(data []uint32) uint32 {
	sum := uint32(0)
	for _, d := range data {
		sum += d
	}
	return sum
}

// float32 vector summation
func Float32VectorSum(data []float32) float32 {
	sum := float32(0.0)
	for _, d := range data {
		sum += d
	}
	return sum
}

// TopIndices returns the indices of the n largest values of data in
// descending order. When byAbs is set values are compared by magnitude.
// Equal values keep ascending index order.
func TopIndices(data []float32, n int, byAbs bool) []uint32 {
	idx := make([]uint32, len(data))
	for i := range idx {
		idx[i] = uint32(i)
	}
	key := func(i uint32) float64 {
		if byAbs {
			return math.Abs(float64(data[i]))
		}
		return float64(data[i])
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return key(idx[a]) > key(idx[b])
	})
	if n < 0 {
		n = 0
	}
	if n < len(idx) {
		idx = idx[:n]
	}
	return idx
}
