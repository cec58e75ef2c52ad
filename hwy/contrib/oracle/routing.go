// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package oracle

import "github.com/ajroetker/go-lanes/hwy"

// The functions below compute the expected lanes of one chunk for the
// lane-routing operations. off is the chunk offset in the input buffers,
// lanes the species length, and masks are indexed by lane.

// SliceRef is a slice with zero fill: lane i takes a[off+i+origin] while
// that stays inside the chunk.
func SliceRef[T hwy.Floats](a []T, off, origin, lanes int) []T {
	res := make([]T, lanes)
	for i := range lanes {
		if i+origin < lanes {
			res[i] = a[off+i+origin]
		}
	}
	return res
}

// SliceWithRef continues the slice into the chunk of b.
func SliceWithRef[T hwy.Floats](a, b []T, off, origin, lanes int) []T {
	res := make([]T, lanes)
	for i, j := 0, 0; i < lanes; i++ {
		if i+origin < lanes {
			res[i] = a[off+i+origin]
		} else {
			res[i] = b[off+j]
			j++
		}
	}
	return res
}

// SliceMaskedRef is SliceWithRef with unset lanes zeroed.
func SliceMaskedRef[T hwy.Floats](a, b []T, mask []bool, off, origin, lanes int) []T {
	res := SliceWithRef(a, b, off, origin, lanes)
	for i := range res {
		if !mask[i] {
			res[i] = 0
		}
	}
	return res
}

// UnsliceRef shifts the chunk of a up by origin lanes, zero filling below.
func UnsliceRef[T hwy.Floats](a []T, off, origin, lanes int) []T {
	res := make([]T, lanes)
	for i, j := 0, 0; i < lanes; i++ {
		if i >= origin {
			res[i] = a[off+j]
			j++
		}
	}
	return res
}

// UnsliceWithRef inserts the chunk of a into the chunk of b at origin.
// Part 0 holds the leading lanes of the insertion, part 1 the lanes that
// overflowed past the end.
func UnsliceWithRef[T hwy.Floats](a, b []T, off, origin, part, lanes int) []T {
	res := make([]T, lanes)
	for i, j := 0, 0; i < lanes; i++ {
		switch {
		case part == 0 && i < origin:
			res[i] = b[off+i]
		case part == 0:
			res[i] = a[off+j]
			j++
		case i < origin:
			res[i] = a[off+lanes-origin+i]
		default:
			res[i] = b[off+origin+j]
			j++
		}
	}
	return res
}

// UnsliceMaskedRef is UnsliceWithRef where unset lanes of a are replaced
// by the lanes of b rotated down by origin before the insertion.
func UnsliceMaskedRef[T hwy.Floats](a, b []T, mask []bool, off, origin, part, lanes int) []T {
	t := make([]T, lanes)
	for i, j := 0, 0; i < lanes; i++ {
		if i+origin < lanes {
			t[i] = b[off+i+origin]
		} else {
			t[i] = b[off+j]
			j++
		}
		if mask[i] {
			t[i] = a[off+i]
		}
	}
	res := make([]T, lanes)
	for i, j := 0, 0; i < lanes; i++ {
		switch {
		case part == 0 && i < origin:
			res[i] = b[off+i]
		case part == 0:
			res[i] = t[j]
			j++
		case i < origin:
			res[i] = t[lanes-origin+i]
		default:
			res[i] = b[off+origin+j]
			j++
		}
	}
	return res
}

// ZipRef interleaves the chunks of a and b; part selects the lower or
// upper half of the interleaving.
func ZipRef[T hwy.Floats](a, b []T, off, part, lanes int) []T {
	res := make([]T, lanes)
	for i := range lanes {
		j := part*lanes + i
		if j%2 == 0 {
			res[i] = a[off+j/2]
		} else {
			res[i] = b[off+j/2]
		}
	}
	return res
}

// UnzipRef takes the even (part 0) or odd (part 1) lanes of the
// concatenated chunks of a and b.
func UnzipRef[T hwy.Floats](a, b []T, off, part, lanes int) []T {
	res := make([]T, lanes)
	for i := range lanes {
		j := 2*i + part
		if j < lanes {
			res[i] = a[off+j]
		} else {
			res[i] = b[off+j-lanes]
		}
	}
	return res
}

// GatherRef loads lane i from a[off+idx[idxOff+i]]. Unset lanes are zero
// and their index is not read from a.
func GatherRef[T hwy.Floats](a []T, off int, idx []int, idxOff int, mask []bool, lanes int) []T {
	res := make([]T, lanes)
	for i := range lanes {
		if mask == nil || mask[i] {
			res[i] = a[off+idx[idxOff+i]]
		}
	}
	return res
}

// ScatterRef is the chunk a scatter of a[off:] leaves in a zeroed
// destination chunk. Lanes are stored in ascending order, so the highest
// colliding lane wins.
func ScatterRef[T hwy.Floats](a []T, off int, idx []int, idxOff, lanes int) []T {
	res := make([]T, lanes)
	for i := range lanes {
		res[idx[idxOff+i]] = a[off+i]
	}
	return res
}

// ScatterMaskedRef is the chunk a masked scatter leaves in dst, whose
// contents before the store are given. Every target is read, blended with
// a under the mask and written back in ascending lane order.
func ScatterMaskedRef[T hwy.Floats](dst, a []T, off int, idx []int, idxOff int, mask []bool, lanes int) []T {
	old := GatherRef(dst, off, idx, idxOff, nil, lanes)
	res := make([]T, lanes)
	copy(res, dst[off:off+lanes])
	for i := range lanes {
		v := old[i]
		if mask[i] {
			v = a[off+i]
		}
		res[idx[idxOff+i]] = v
	}
	return res
}
