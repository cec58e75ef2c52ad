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
	"strconv"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/oracle"
)

func namedScenario[T hwy.Floats](op, form, category string, inputs ...string) Scenario[T] {
	return Scenario[T]{Op: op, Form: form, Category: category, Inputs: inputs}
}

// rearrangeScenarios covers Rearrange and SelectFrom with random shuffles,
// plain and masked.
func rearrangeScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	shuffles := ShuffleGenerator(seed)
	for _, g := range FloatGenerators[T]() {
		for _, m := range withMasks(MaskGenerators(seed)) {
			out = append(out, rearrangeScenario(g, shuffles, m), selectFromScenario(g, shuffles, m))
		}
	}
	return out
}

func rearrangeScenario[T hwy.Floats](g Generator[T], sg IndexGenerator, m *MaskGenerator) Scenario[T] {
	sc := namedScenario[T]("REARRANGE", masked("", m), CategoryRearrange,
		append([]string{g.Name, sg.Name}, maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		order := sg.Fill(x.n, x.lanes)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			sh := hwy.ShuffleFromSlice(x.s, order, off)
			if bools == nil {
				hwy.Rearrange(av, sh).IntoSlice(r, off)
			} else {
				hwy.RearrangeMasked(av, sh, mask).IntoSlice(r, off)
			}
		})
		return x.checker(sc).Rearrange(a, order, r, bools)
	}
	return sc
}

func selectFromScenario[T hwy.Floats](g Generator[T], sg IndexGenerator, m *MaskGenerator) Scenario[T] {
	sc := namedScenario[T]("SELECT_FROM", masked("", m), CategoryRearrange,
		append([]string{g.Name, sg.Name}, maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		order := make([]T, x.n)
		for i, o := range sg.Fill(x.n, x.lanes) {
			order[i] = T(o)
		}
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			data := hwy.FromSlice(x.s, a, off)
			idx := hwy.FromSlice(x.s, order, off)
			if bools == nil {
				hwy.SelectFrom(idx, data).IntoSlice(r, off)
			} else {
				hwy.SelectFromMasked(idx, data, mask).IntoSlice(r, off)
			}
		})
		return x.checker(sc).SelectFrom(a, order, r, bools)
	}
	return sc
}

// sliceScenarios covers slice and unslice in their one-vector, two-vector
// and masked forms, and zip and unzip for both parts.
func sliceScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := MaskGenerators(seed)
	for _, g := range FloatGenerators[T]() {
		out = append(out, sliceScenario(g), unsliceScenario(g))
	}
	for _, pair := range Pairs(FloatGenerators[T]()) {
		out = append(out, sliceWithScenario(pair), unsliceWithScenario(pair))
		for i := range masks {
			out = append(out, sliceMaskedScenario(pair, &masks[i]), unsliceMaskedScenario(pair, &masks[i]))
		}
		for part := range 2 {
			out = append(out, zipScenario(pair, part, false), zipScenario(pair, part, true))
		}
	}
	return out
}

func sliceScenario[T hwy.Floats](g Generator[T]) Scenario[T] {
	sc := namedScenario[T]("SLICE", "", CategorySlice, g.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		r := make([]T, x.n)
		origin := x.rng.IntN(x.lanes)
		x.loop(func(off int) {
			hwy.Slice(hwy.FromSlice(x.s, a, off), origin).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.SliceRef(a, off, origin, x.lanes)
		})
	}
	return sc
}

func sliceWithScenario[T hwy.Floats](gens []Generator[T]) Scenario[T] {
	sc := namedScenario[T]("SLICE", "with", CategorySlice, names(gens)...)
	sc.run = func(x *exec[T]) error {
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		origin := x.rng.IntN(x.lanes)
		x.loop(func(off int) {
			hwy.SliceWith(hwy.FromSlice(x.s, a, off), origin, hwy.FromSlice(x.s, b, off)).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.SliceWithRef(a, b, off, origin, x.lanes)
		})
	}
	return sc
}

func sliceMaskedScenario[T hwy.Floats](gens []Generator[T], m *MaskGenerator) Scenario[T] {
	sc := namedScenario[T]("SLICE", "with.masked", CategorySlice, append(names(gens), m.Name)...)
	sc.run = func(x *exec[T]) error {
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		origin := x.rng.IntN(x.lanes)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av, bv := hwy.FromSlice(x.s, a, off), hwy.FromSlice(x.s, b, off)
			hwy.SliceMasked(av, origin, bv, mask).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.SliceMaskedRef(a, b, bools, off, origin, x.lanes)
		})
	}
	return sc
}

func unsliceScenario[T hwy.Floats](g Generator[T]) Scenario[T] {
	sc := namedScenario[T]("UNSLICE", "", CategorySlice, g.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		r := make([]T, x.n)
		origin := x.rng.IntN(x.lanes)
		x.loop(func(off int) {
			hwy.Unslice(hwy.FromSlice(x.s, a, off), origin).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.UnsliceRef(a, off, origin, x.lanes)
		})
	}
	return sc
}

func unsliceWithScenario[T hwy.Floats](gens []Generator[T]) Scenario[T] {
	sc := namedScenario[T]("UNSLICE", "with", CategorySlice, names(gens)...)
	sc.run = func(x *exec[T]) error {
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		origin, part := x.rng.IntN(x.lanes), x.rng.IntN(2)
		x.loop(func(off int) {
			av, bv := hwy.FromSlice(x.s, a, off), hwy.FromSlice(x.s, b, off)
			hwy.UnsliceWith(av, origin, bv, part).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.UnsliceWithRef(a, b, off, origin, part, x.lanes)
		})
	}
	return sc
}

func unsliceMaskedScenario[T hwy.Floats](gens []Generator[T], m *MaskGenerator) Scenario[T] {
	sc := namedScenario[T]("UNSLICE", "with.masked", CategorySlice, append(names(gens), m.Name)...)
	sc.run = func(x *exec[T]) error {
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		origin, part := x.rng.IntN(x.lanes), x.rng.IntN(2)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av, bv := hwy.FromSlice(x.s, a, off), hwy.FromSlice(x.s, b, off)
			hwy.UnsliceMasked(av, origin, bv, part, mask).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.UnsliceMaskedRef(a, b, bools, off, origin, part, x.lanes)
		})
	}
	return sc
}

func zipScenario[T hwy.Floats](gens []Generator[T], part int, unzip bool) Scenario[T] {
	op := "ZIP"
	if unzip {
		op = "UNZIP"
	}
	sc := namedScenario[T](op, "part"+strconv.Itoa(part), CategoryRearrange, names(gens)...)
	sc.run = func(x *exec[T]) error {
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		x.loop(func(off int) {
			av, bv := hwy.FromSlice(x.s, a, off), hwy.FromSlice(x.s, b, off)
			if unzip {
				hwy.Unzip(av, bv, part).IntoSlice(r, off)
			} else {
				hwy.Zip(av, bv, part).IntoSlice(r, off)
			}
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			if unzip {
				return oracle.UnzipRef(a, b, off, part, x.lanes)
			}
			return oracle.ZipRef(a, b, off, part, x.lanes)
		})
	}
	return sc
}

// gatherScenarios covers indexed loads and stores over every index
// generator, plain and masked.
func gatherScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := MaskGenerators(seed)
	gens := FloatGenerators[T]()
	for _, ig := range IndexGenerators(seed) {
		for _, g := range gens {
			out = append(out, gatherScenario(g, ig, nil), scatterScenario(g, ig))
			for i := range masks {
				out = append(out, gatherScenario(g, ig, &masks[i]))
			}
		}
		for _, pair := range CrossPairs(gens) {
			for i := range masks {
				out = append(out, scatterMaskedScenario(pair, ig, &masks[i]))
			}
		}
	}
	return out
}

func gatherScenario[T hwy.Floats](g Generator[T], ig IndexGenerator, m *MaskGenerator) Scenario[T] {
	sc := namedScenario[T]("GATHER", masked("", m), CategoryMemory,
		append([]string{g.Name, ig.Name}, maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		idx := ig.Fill(x.n, x.lanes)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			if bools == nil {
				hwy.Gather(x.s, a, off, idx, off).IntoSlice(r, off)
			} else {
				hwy.GatherMasked(x.s, a, off, idx, off, mask).IntoSlice(r, off)
			}
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.GatherRef(a, off, idx, off, bools, x.lanes)
		})
	}
	return sc
}

func scatterScenario[T hwy.Floats](g Generator[T], ig IndexGenerator) Scenario[T] {
	sc := namedScenario[T]("SCATTER", "", CategoryMemory, g.Name, ig.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		idx := ig.Fill(x.n, x.lanes)
		r := make([]T, x.n)
		x.loop(func(off int) {
			hwy.Scatter(hwy.FromSlice(x.s, a, off), r, off, idx, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.ScatterRef(a, off, idx, off, x.lanes)
		})
	}
	return sc
}

// scatterMaskedScenario stores into a destination pre-filled by the second
// generator.
func scatterMaskedScenario[T hwy.Floats](gens []Generator[T], ig IndexGenerator, m *MaskGenerator) Scenario[T] {
	sc := namedScenario[T]("SCATTER", "masked", CategoryMemory, append(names(gens), ig.Name, m.Name)...)
	sc.run = func(x *exec[T]) error {
		a := gens[0].Fill(x.n)
		dst := gens[1].Fill(x.n)
		idx := ig.Fill(x.n, x.lanes)
		r := make([]T, x.n)
		copy(r, dst)
		_, mask := x.mask(m)
		bools := mask.ToBools()
		x.loop(func(off int) {
			hwy.ScatterMasked(hwy.FromSlice(x.s, a, off), r, off, idx, off, mask)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return oracle.ScatterMaskedRef(dst, a, off, idx, off, bools, x.lanes)
		})
	}
	return sc
}

// memoryScenarios covers masked loads and stores and lane access.
func memoryScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := MaskGenerators(seed)
	for _, g := range FloatGenerators[T]() {
		for i := range masks {
			out = append(out, loadScenario(g, &masks[i], false), loadScenario(g, &masks[i], true))
		}
		out = append(out, withLaneScenario(g), laneScenario(g), broadcastScenario(g))
	}
	return append(out, zeroScenario[T]())
}

// loadScenario checks a masked load, or a masked store into a zeroed
// buffer: both leave zero in the unset lanes.
func loadScenario[T hwy.Floats](g Generator[T], m *MaskGenerator, store bool) Scenario[T] {
	op := "LOAD"
	if store {
		op = "STORE"
	}
	sc := namedScenario[T](op, "masked", CategoryMemory, g.Name, m.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			if store {
				hwy.FromSlice(x.s, a, off).IntoSliceMasked(r, off, mask)
			} else {
				hwy.FromSliceMasked(x.s, a, off, mask).IntoSlice(r, off)
			}
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			want := make([]T, x.lanes)
			for j := range want {
				if bools[j] {
					want[j] = a[off+j]
				}
			}
			return want
		})
	}
	return sc
}

func withLaneScenario[T hwy.Floats](g Generator[T]) Scenario[T] {
	sc := namedScenario[T]("WITH_LANE", "", CategoryMemory, g.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		r := make([]T, x.n)
		x.loop(func(off int) {
			hwy.FromSlice(x.s, a, off).WithLane(0, 4).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			want := append([]T(nil), a[off:off+x.lanes]...)
			want[0] = 4
			return want
		})
	}
	return sc
}

func laneScenario[T hwy.Floats](g Generator[T]) Scenario[T] {
	sc := namedScenario[T]("LANE", "", CategoryMemory, g.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		r := make([]T, x.n)
		x.loop(func(off int) {
			v := hwy.FromSlice(x.s, a, off)
			for j := range x.lanes {
				r[off+j] = v.Lane(j)
			}
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			return a[off : off+x.lanes]
		})
	}
	return sc
}

func broadcastScenario[T hwy.Floats](g Generator[T]) Scenario[T] {
	sc := namedScenario[T]("BROADCAST", "", CategoryMemory, g.Name)
	sc.run = func(x *exec[T]) error {
		a := g.Fill(x.n)
		r := make([]T, x.n)
		x.loop(func(off int) {
			hwy.Broadcast(x.s, a[off]).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(off int) []T {
			want := make([]T, x.lanes)
			for j := range want {
				want[j] = a[off]
			}
			return want
		})
	}
	return sc
}

func zeroScenario[T hwy.Floats]() Scenario[T] {
	sc := namedScenario[T]("ZERO", "", CategoryMemory)
	sc.run = func(x *exec[T]) error {
		r := make([]T, x.n)
		for i := range r {
			r[i] = 1
		}
		x.loop(func(off int) {
			hwy.Zero(x.s).IntoSlice(r, off)
		})
		return x.checker(sc).Chunks(r, func(int) []T {
			return make([]T, x.lanes)
		})
	}
	return sc
}
