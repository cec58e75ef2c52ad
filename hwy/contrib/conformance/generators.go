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

package conformance

import (
	"math"
	"math/rand/v2"
	"unsafe"

	"github.com/samber/lo"

	"github.com/ajroetker/go-lanes/hwy"
)

// Generator fills a buffer of n elements.
type Generator[T hwy.Floats] struct {
	Name string
	Fill func(n int) []T
}

func fill[T hwy.Floats](name string, f func(i int) T) Generator[T] {
	return Generator[T]{Name: name, Fill: func(n int) []T {
		buf := make([]T, n)
		for i := range buf {
			buf[i] = f(i)
		}
		return buf
	}}
}

// CornerCaseValue cycles through the largest finite value, the smallest
// subnormal, -Inf, +Inf, NaN, +0 and -0.
func CornerCaseValue[T hwy.Floats](i int) T {
	var zero T
	narrow := unsafe.Sizeof(zero) == 4
	switch i % 7 {
	case 0:
		if narrow {
			mx := float32(math.MaxFloat32)
			return T(mx)
		}
		mx := math.MaxFloat64
		return T(mx)
	case 1:
		if narrow {
			tiny := float32(math.SmallestNonzeroFloat32)
			return T(tiny)
		}
		tiny := math.SmallestNonzeroFloat64
		return T(tiny)
	case 2:
		return T(math.Inf(-1))
	case 3:
		return T(math.Inf(1))
	case 4:
		return T(math.NaN())
	case 5:
		return 0
	}
	return T(math.Copysign(0, -1))
}

// FloatGenerators are the inputs of lanewise, reduction and addressing
// scenarios.
func FloatGenerators[T hwy.Floats]() []Generator[T] {
	return []Generator[T]{
		fill("[-i * 5]", func(i int) T { return T(-i * 5) }),
		fill("[i * 5]", func(i int) T { return T(i * 5) }),
		fill("[i + 1]", func(i int) T { return T(i + 1) }),
		fill("[cornerCaseValue(i)]", CornerCaseValue[T]),
	}
}

// CompareGenerators are the inputs of comparison and test scenarios.
func CompareGenerators[T hwy.Floats]() []Generator[T] {
	return []Generator[T]{
		fill("[i]", func(i int) T { return T(i) }),
		fill("[i + 1]", func(i int) T { return T(i + 1) }),
		fill("[i - 2]", func(i int) T { return T(i - 2) }),
		fill("[zigZag(i)]", func(i int) T {
			switch i % 3 {
			case 0:
				return T(i)
			case 1:
				return T(i + 1)
			}
			return T(i - 2)
		}),
		fill("[cornerCaseValue(i)]", CornerCaseValue[T]),
	}
}

// Pairs combines the first generator with each of the others.
func Pairs[T hwy.Floats](gens []Generator[T]) [][]Generator[T] {
	return lo.Map(gens[1:], func(g Generator[T], _ int) []Generator[T] {
		return []Generator[T]{gens[0], g}
	})
}

// Triples extends every pair with every generator.
func Triples[T hwy.Floats](gens []Generator[T]) [][]Generator[T] {
	return lo.FlatMap(Pairs(gens), func(p []Generator[T], _ int) [][]Generator[T] {
		return lo.Map(gens, func(g Generator[T], _ int) []Generator[T] {
			return []Generator[T]{p[0], p[1], g}
		})
	})
}

// CrossPairs is the full cross product of gens with itself.
func CrossPairs[T hwy.Floats](gens []Generator[T]) [][]Generator[T] {
	return lo.FlatMap(gens, func(a Generator[T], _ int) [][]Generator[T] {
		return lo.Map(gens, func(b Generator[T], _ int) []Generator[T] {
			return []Generator[T]{a, b}
		})
	})
}

// MaskGenerator fills a boolean buffer of n lanes.
type MaskGenerator struct {
	Name string
	Fill func(n int) []bool
}

// MaskGenerators returns the all-true, all-false, alternating and seeded
// random masks.
func MaskGenerators(seed uint64) []MaskGenerator {
	return []MaskGenerator{
		{Name: "mask[true]", Fill: func(n int) []bool {
			return lo.Times(n, func(int) bool { return true })
		}},
		{Name: "mask[false]", Fill: func(n int) []bool { return make([]bool, n) }},
		{Name: "mask[i % 2]", Fill: func(n int) []bool {
			return lo.Times(n, func(i int) bool { return i%2 == 0 })
		}},
		{Name: "mask[random]", Fill: func(n int) []bool {
			r := newRand(seed, 0x6d61736b)
			return lo.Times(n, func(int) bool { return r.IntN(2) == 0 })
		}},
	}
}

// IndexGenerator fills n lane indices in [0, lanes).
type IndexGenerator struct {
	Name string
	Fill func(n, lanes int) []int
}

// IndexGenerators returns random indices, which may collide within a
// chunk, and per-chunk permutations.
func IndexGenerators(seed uint64) []IndexGenerator {
	return []IndexGenerator{
		ShuffleGenerator(seed),
		{Name: "index[permutation]", Fill: func(n, lanes int) []int {
			r := newRand(seed, 0x7065726d)
			idx := make([]int, 0, n)
			for len(idx)+lanes <= n {
				idx = append(idx, r.Perm(lanes)...)
			}
			for len(idx) < n {
				idx = append(idx, 0)
			}
			return idx
		}},
	}
}

// ShuffleGenerator yields random shuffle indices in [0, lanes).
func ShuffleGenerator(seed uint64) IndexGenerator {
	return IndexGenerator{Name: "index[random]", Fill: func(n, lanes int) []int {
		r := newRand(seed, 0x72616e64)
		return lo.Times(n, func(int) int { return r.IntN(lanes) })
	}}
}

func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}
