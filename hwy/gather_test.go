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

import (
	"testing"
)

func TestGather(t *testing.T) {
	s := Float64x4
	src := []float64{0, 10, 20, 30, 40, 50, 60, 70}
	idx := []int{3, 0, 2, 1, 1, 1, 1, 1}
	lanesEqual(t, "Gather", Gather(s, src, 4, idx, 0), []float64{70, 40, 60, 50})
	lanesEqual(t, "Gather offset", Gather(s, src, 0, idx, 4), []float64{10, 10, 10, 10})

	// Unset lanes are neither read nor checked.
	wild := []int{0, 100, 2, 3}
	m := MaskFromValues(s, true, false, true, true)
	lanesEqual(t, "GatherMasked", GatherMasked(s, src, 1, wild, 0, m), []float64{10, 0, 30, 40})
	expectViolation(t, ErrOutOfBounds, func() { Gather(s, src, 1, wild, 0) })
	expectViolation(t, ErrOutOfBounds, func() { Gather(s, src, 0, idx, 5) })
}

func TestScatterCollision(t *testing.T) {
	s := Float64x4
	v := FromValues(s, 1, 2, 3, 4)
	idx := []int{0, 0, 1, 1}

	dst := make([]float64, 4)
	Scatter(v, dst, 0, idx, 0)
	lanesEqual(t, "Scatter", FromSlice(s, dst, 0), []float64{2, 4, 0, 0})

	dst = []float64{-1, -2, -3, -4}
	ScatterMasked(v, dst, 0, idx, 0, MaskFromValues(s, true, false, false, true))
	lanesEqual(t, "ScatterMasked", FromSlice(s, dst, 0), []float64{-1, 4, -3, -4})

	dst = []float64{-1, -2, -3, -4}
	ScatterMasked(v, dst, 0, []int{3, 2, 2, 0}, 0, MaskFromValues(s, true, true, false, false))
	lanesEqual(t, "ScatterMasked write-back", FromSlice(s, dst, 0), []float64{-1, -2, -3, 1})
}

func TestScatterChecksBeforeWriting(t *testing.T) {
	s := Float32x4
	dst := []float32{9, 9, 9, 9}
	expectViolation(t, ErrOutOfBounds, func() {
		Scatter(Broadcast(s, 1), dst, 0, []int{0, 1, 2, 4}, 0)
	})
	lanesEqual(t, "untouched", FromSlice(s, dst, 0), []float32{9, 9, 9, 9})
}

// Scattering a gather through the same permutation restores the source.
func TestGatherScatterPermutation(t *testing.T) {
	s := Float32x8
	src := []float32{11, 12, 13, 14, 15, 16, 17, 18}
	perm := []int{5, 2, 7, 0, 3, 6, 1, 4}
	dst := make([]float32, len(src))
	Scatter(Gather(s, src, 0, perm, 0), dst, 0, perm, 0)
	lanesEqual(t, "roundtrip", FromSlice(s, dst, 0), src)
}

func TestIndices(t *testing.T) {
	got := IndicesStride(4, 1, 3)
	want := []int{1, 4, 7, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IndicesStride = %v, want %v", got, want)
		}
	}
	if seq := IndicesIota(3); len(seq) != 3 || seq[2] != 2 {
		t.Errorf("IndicesIota = %v", seq)
	}
}
