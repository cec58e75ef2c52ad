package hwy

// This file provides gather and scatter operations. Lane i addresses
// element base + idx[idxOffset+i] of the buffer.

func checkIndexRange(op string, idx []int, idxOffset, lanes int) {
	checkRange(op, idxOffset, lanes, len(idx))
}

func target(op string, base int, idx []int, idxOffset, lane, length int) int {
	j := base + idx[idxOffset+lane]
	if j < 0 || j >= length {
		violate(op, ErrOutOfBounds, "lane %d addresses %d with length %d", lane, j, length)
	}
	return j
}

// Gather loads lane i from src[base+idx[idxOffset+i]].
func Gather[T Floats](s *Species[T], src []T, base int, idx []int, idxOffset int) Vec[T] {
	n := s.NumLanes()
	checkIndexRange("Gather", idx, idxOffset, n)
	v := Vec[T]{s: s}
	for i := range n {
		v.lanes[i] = src[target("Gather", base, idx, idxOffset, i, len(src))]
	}
	return v
}

// GatherMasked is Gather for the lanes set in m. Unset lanes are zero and
// their indices are neither read nor bounds checked.
func GatherMasked[T Floats](s *Species[T], src []T, base int, idx []int, idxOffset int, m Mask[T]) Vec[T] {
	checkSpecies("GatherMasked", s, m.s)
	v := Vec[T]{s: s}
	for i := range s.lanes {
		if !m.isSet(i) {
			continue
		}
		checkLane("GatherMasked", idxOffset+i, len(idx))
		v.lanes[i] = src[target("GatherMasked", base, idx, idxOffset, i, len(src))]
	}
	return v
}

// Scatter stores lane i of v to dst[base+idx[idxOffset+i]]. Lanes are
// written in ascending order, so when two lanes share a destination the
// higher lane wins. Every target is checked before anything is written.
func Scatter[T Floats](v Vec[T], dst []T, base int, idx []int, idxOffset int) {
	if v.s == nil {
		violate("Scatter", ErrSpeciesMismatch, "zero value operand")
	}
	n := v.s.lanes
	checkIndexRange("Scatter", idx, idxOffset, n)
	var to [maxLanes]int
	for i := range n {
		to[i] = target("Scatter", base, idx, idxOffset, i, len(dst))
	}
	for i := range n {
		dst[to[i]] = v.lanes[i]
	}
}

// ScatterMasked is a read-modify-write scatter: it gathers the current
// values at every target, blends in the lanes of v set in m, and scatters
// the blend back in ascending lane order. A colliding unset lane therefore
// still writes back the value it read.
func ScatterMasked[T Floats](v Vec[T], dst []T, base int, idx []int, idxOffset int, m Mask[T]) {
	checkSpecies("ScatterMasked", v.s, m.s)
	old := Gather(v.s, dst, base, idx, idxOffset)
	Scatter(Blend(old, v, m), dst, base, idx, idxOffset)
}

// IndicesIota returns the index table 0, 1, ..., n-1.
func IndicesIota(n int) []int {
	return IndicesStride(n, 0, 1)
}

// IndicesStride returns the index table start, start+stride, ...
// Useful for accessing every Nth element.
func IndicesStride(n, start, stride int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = start + i*stride
	}
	return idx
}
