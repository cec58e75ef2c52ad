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

package hwy

func checkOrigin(op string, origin, lanes int) {
	if origin < 0 || origin > lanes {
		violate(op, ErrOutOfBounds, "origin %d with %d lanes", origin, lanes)
	}
}

// Slice shifts the lanes of v down by origin, filling the vacated top lanes
// with zero: lane i is v[i+origin] if i+origin < NumLanes(), else 0.
func Slice[T Floats](v Vec[T], origin int) Vec[T] {
	return SliceWith(v, origin, Zero(v.s))
}

// SliceWith takes NumLanes() lanes starting at origin from the
// concatenation v|fill.
func SliceWith[T Floats](v Vec[T], origin int, fill Vec[T]) Vec[T] {
	checkSpecies("SliceWith", v.s, fill.s)
	n := v.s.lanes
	checkOrigin("SliceWith", origin, n)
	r := Vec[T]{s: v.s}
	for i := range n {
		if j := i + origin; j < n {
			r.lanes[i] = v.lanes[j]
		} else {
			r.lanes[i] = fill.lanes[j-n]
		}
	}
	return r
}

// SliceMasked is SliceWith where each lane unset in m is zero.
func SliceMasked[T Floats](v Vec[T], origin int, fill Vec[T], m Mask[T]) Vec[T] {
	checkSpecies("SliceMasked", v.s, m.s)
	return IfThenElseZero(m, SliceWith(v, origin, fill))
}

// Unslice is the inverse of Slice: it shifts the lanes of v up by origin and
// zero-fills the bottom lanes.
func Unslice[T Floats](v Vec[T], origin int) Vec[T] {
	return UnsliceWith(v, origin, Zero(v.s), 0)
}

// UnsliceWith inserts v into a window of two vectors w|w at lane origin and
// returns one half of the window: part 0 is the low half, with lanes below
// origin taken from w, and part 1 the high half, with lanes above the
// spill-over of v taken from w.
//
//	part 0: lane i is w[i] if i < origin, else v[i-origin]
//	part 1: lane i is v[n-origin+i] if i < origin, else w[i]
func UnsliceWith[T Floats](v Vec[T], origin int, w Vec[T], part int) Vec[T] {
	checkSpecies("UnsliceWith", v.s, w.s)
	n := v.s.lanes
	checkOrigin("UnsliceWith", origin, n)
	checkPart("UnsliceWith", part)
	r := Vec[T]{s: v.s}
	for i := range n {
		switch {
		case part == 0 && i < origin:
			r.lanes[i] = w.lanes[i]
		case part == 0:
			r.lanes[i] = v.lanes[i-origin]
		case i < origin:
			r.lanes[i] = v.lanes[n-origin+i]
		default:
			r.lanes[i] = w.lanes[i]
		}
	}
	return r
}

// UnsliceMasked is UnsliceWith where a lane of v unset in m is replaced by
// the lane of w it would overwrite, so that the window only changes where
// m is set.
func UnsliceMasked[T Floats](v Vec[T], origin int, w Vec[T], part int, m Mask[T]) Vec[T] {
	checkSpecies("UnsliceMasked", v.s, w.s)
	checkSpecies("UnsliceMasked", v.s, m.s)
	n := v.s.lanes
	checkOrigin("UnsliceMasked", origin, n)
	checkPart("UnsliceMasked", part)

	// t[i] is the lane of w|w that v[i] lands on, blended with v under m.
	var t Vec[T]
	t.s = v.s
	for i := range n {
		if m.isSet(i) {
			t.lanes[i] = v.lanes[i]
		} else {
			t.lanes[i] = w.lanes[(i+origin)%n]
		}
	}
	return UnsliceWith(t, origin, w, part)
}
