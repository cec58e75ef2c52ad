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

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/oracle"
)

var reductionOps = []hwy.Operator{hwy.OpAdd, hwy.OpMul, hwy.OpMin, hwy.OpMax}

// reductionScenarios covers ReduceLanes and ReduceLanesToInt64 for every
// associative operator, plain and masked.
func reductionScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := withMasks(MaskGenerators(seed))
	for _, g := range FloatGenerators[T]() {
		for _, op := range reductionOps {
			for _, m := range masks {
				out = append(out, reduceScenario(op, g, m), reduceInt64Scenario(op, g, m))
			}
		}
	}
	return out
}

func reduceScenario[T hwy.Floats](op hwy.Operator, g Generator[T], m *MaskGenerator) Scenario[T] {
	sc := Scenario[T]{
		Op:       op.String(),
		Form:     masked("reduce", m),
		Category: CategoryReduction,
		Inputs:   append([]string{g.Name}, maskName(m)...),
	}
	sc.run = func(x *exec[T]) error {
		ref, err := oracle.Reduce[T](op)
		if err != nil {
			return err
		}
		a := g.Fill(x.n)
		r := make([]T, x.chunks())
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			if bools == nil {
				r[off/x.lanes] = hwy.ReduceLanes(op, av)
			} else {
				r[off/x.lanes] = hwy.ReduceLanesMasked(op, av, mask)
			}
		})
		whole := hwy.ReductionIdentity[T](op)
		for _, v := range r {
			whole = accumulate(op, whole, v)
		}
		return x.checker(sc).Reduction(a, r, whole, bools, ref)
	}
	return sc
}

func reduceInt64Scenario[T hwy.Floats](op hwy.Operator, g Generator[T], m *MaskGenerator) Scenario[T] {
	sc := Scenario[T]{
		Op:       op.String(),
		Form:     masked("reduce-int64", m),
		Category: CategoryReduction,
		Inputs:   append([]string{g.Name}, maskName(m)...),
	}
	sc.run = func(x *exec[T]) error {
		ref, err := oracle.Reduce[T](op)
		if err != nil {
			return err
		}
		a := g.Fill(x.n)
		r := make([]int64, x.chunks())
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			if bools == nil {
				r[off/x.lanes] = hwy.ReduceLanesToInt64(op, av)
			} else {
				r[off/x.lanes] = hwy.ReduceLanesToInt64Masked(op, av, mask)
			}
		})
		whole := accumulateInt64Identity(op)
		for _, v := range r {
			whole = accumulateInt64(op, whole, v)
		}
		return x.checker(sc).ReductionInt64(a, r, whole, bools, ref)
	}
	return sc
}

// accumulate folds chunk results the way a caller combining per-chunk
// reductions would.
func accumulate[T hwy.Floats](op hwy.Operator, acc, v T) T {
	switch op {
	case hwy.OpAdd:
		return acc + v
	case hwy.OpMul:
		return acc * v
	case hwy.OpMin:
		return hwy.MinOf(acc, v)
	default:
		return hwy.MaxOf(acc, v)
	}
}

func accumulateInt64(op hwy.Operator, acc, v int64) int64 {
	switch op {
	case hwy.OpAdd:
		return acc + v
	case hwy.OpMul:
		return acc * v
	case hwy.OpMin:
		return min(acc, v)
	default:
		return max(acc, v)
	}
}

func accumulateInt64Identity(op hwy.Operator) int64 {
	switch op {
	case hwy.OpMul:
		return 1
	case hwy.OpMin:
		return math.MaxInt64
	case hwy.OpMax:
		return math.MinInt64
	}
	return 0
}

// compareForm says how the second comparison operand is supplied.
type compareForm int

const (
	compareVector compareForm = iota
	compareScalar
	compareInt64
)

func (f compareForm) String() string {
	switch f {
	case compareScalar:
		return "broadcast"
	case compareInt64:
		return "broadcast-int64"
	}
	return ""
}

// compareScenarios covers every comparison over the full cross product of
// compare generators, in vector, scalar and int64 broadcast forms, plain
// and masked, and every test operator.
func compareScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := withMasks(MaskGenerators(seed))
	gens := CompareGenerators[T]()
	for _, pair := range CrossPairs(gens) {
		for _, op := range hwy.OperatorsOf(hwy.CategoryComparison, 2) {
			for _, form := range []compareForm{compareVector, compareScalar, compareInt64} {
				for _, m := range masks {
					out = append(out, compareScenario(op, form, pair, m))
				}
			}
		}
	}
	for _, g := range gens {
		for _, op := range hwy.OperatorsOf(hwy.CategoryTest, 1) {
			for _, m := range masks {
				out = append(out, testScenario(op, g, m))
			}
		}
	}
	return out
}

func compareScenario[T hwy.Floats](op hwy.Operator, form compareForm, gens []Generator[T], m *MaskGenerator) Scenario[T] {
	sc := opScenario[T](op, masked(form.String(), m), append(names(gens), maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		f, err := oracle.Compare[T](op)
		if err != nil {
			return err
		}
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]bool, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			var rm hwy.Mask[T]
			switch {
			case form == compareScalar && bools == nil:
				rm = hwy.CompareScalar(op, av, b[off])
			case form == compareScalar:
				rm = hwy.CompareScalarMasked(op, av, b[off], mask)
			case form == compareInt64 && bools == nil:
				rm = hwy.CompareInt64(op, av, hwy.TruncateToInt64(float64(b[off])))
			case form == compareInt64:
				rm = hwy.CompareInt64Masked(op, av, hwy.TruncateToInt64(float64(b[off])), mask)
			case bools == nil:
				rm = hwy.Compare(op, av, hwy.FromSlice(x.s, b, off))
			default:
				rm = hwy.CompareMasked(op, av, hwy.FromSlice(x.s, b, off), mask)
			}
			rm.IntoBools(r, off)
		})
		bo := oracle.Elems(b)
		switch form {
		case compareScalar:
			bo = oracle.Broadcast(b)
		case compareInt64:
			conv := make([]T, len(b))
			for i, v := range b {
				conv[i] = T(oracle.ToInt64(float64(v)))
			}
			bo = oracle.Broadcast(conv)
		}
		return x.checker(sc).Compare(a, bo, r, bools, f)
	}
	return sc
}

func testScenario[T hwy.Floats](op hwy.Operator, g Generator[T], m *MaskGenerator) Scenario[T] {
	sc := opScenario[T](op, masked("", m), append([]string{g.Name}, maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		f, err := oracle.Test[T](op)
		if err != nil {
			return err
		}
		a := g.Fill(x.n)
		r := make([]bool, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			if bools == nil {
				hwy.Test(op, av).IntoBools(r, off)
			} else {
				hwy.TestMasked(op, av, mask).IntoBools(r, off)
			}
		})
		return x.checker(sc).Test(a, r, bools, f)
	}
	return sc
}
