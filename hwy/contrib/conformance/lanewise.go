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
	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/oracle"
)

// unaryScenarios covers NEG, ABS, SQRT (plain and masked) and the unary
// transcendentals, with masked SIN and EXP.
func unaryScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := withMasks(MaskGenerators(seed))
	for _, g := range FloatGenerators[T]() {
		for _, op := range hwy.OperatorsOf(hwy.CategoryArithmetic, 1) {
			for _, m := range masks {
				out = append(out, unaryScenario(op, g, m))
			}
		}
		for _, op := range hwy.OperatorsOf(hwy.CategoryTranscendental, 1) {
			out = append(out, unaryScenario[T](op, g, nil))
		}
		for _, op := range []hwy.Operator{hwy.OpSin, hwy.OpExp} {
			for _, m := range masks[1:] {
				out = append(out, unaryScenario(op, g, m))
			}
		}
	}
	return out
}

func unaryScenario[T hwy.Floats](op hwy.Operator, g Generator[T], m *MaskGenerator) Scenario[T] {
	sc := opScenario[T](op, masked("", m), append([]string{g.Name}, maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		ref, err := oracle.Unary[T](op)
		if err != nil {
			return err
		}
		a := g.Fill(x.n)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			if bools == nil {
				hwy.Unary(op, av).IntoSlice(r, off)
			} else {
				hwy.UnaryMasked(op, av, mask).IntoSlice(r, off)
			}
		})
		if ref.Strict != nil {
			x.recordUlp(r, bools, func(i int) T { return ref.Strict(a[i]) })
		}
		return x.checker(sc).UnaryUlp(a, r, bools, ref)
	}
	return sc
}

// binaryForm says whether the second operand is a broadcast scalar.
type binaryForm struct {
	name      string
	broadcast bool
}

var (
	binaryPlain     = binaryForm{}
	binaryBroadcast = binaryForm{name: "broadcast", broadcast: true}
)

// binaryScenarios covers the binary arithmetic and transcendental
// operators, their masked and broadcast forms, and BLEND.
func binaryScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := withMasks(MaskGenerators(seed))
	for _, pair := range Pairs(FloatGenerators[T]()) {
		for _, op := range hwy.OperatorsOf(hwy.CategoryArithmetic, 2) {
			for _, m := range masks {
				out = append(out, binaryScenario(op, binaryPlain, pair, m))
			}
			switch op {
			case hwy.OpAdd, hwy.OpSub, hwy.OpMul, hwy.OpDiv:
				for _, m := range masks {
					out = append(out, binaryScenario(op, binaryBroadcast, pair, m))
				}
			case hwy.OpMin, hwy.OpMax:
				out = append(out, binaryScenario(op, binaryBroadcast, pair, nil))
			}
		}
		for _, op := range hwy.OperatorsOf(hwy.CategoryTranscendental, 2) {
			out = append(out, binaryScenario(op, binaryPlain, pair, nil))
			if op == hwy.OpPow {
				out = append(out, binaryScenario(op, binaryBroadcast, pair, nil))
			}
			if op == hwy.OpPow || op == hwy.OpAtan2 {
				for _, m := range masks[1:] {
					out = append(out, binaryScenario(op, binaryPlain, pair, m))
				}
			}
		}
		for _, m := range masks[1:] {
			out = append(out, blendScenario(pair, m))
		}
	}
	return out
}

func binaryScenario[T hwy.Floats](op hwy.Operator, form binaryForm, gens []Generator[T], m *MaskGenerator) Scenario[T] {
	sc := opScenario[T](op, masked(form.name, m), append(names(gens), maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		ref, err := oracle.Binary[T](op)
		if err != nil {
			return err
		}
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			var rv hwy.Vec[T]
			switch {
			case form.broadcast && bools == nil:
				rv = hwy.BinaryScalar(op, av, b[off])
			case form.broadcast:
				rv = hwy.BinaryScalarMasked(op, av, b[off], mask)
			case bools == nil:
				rv = hwy.Binary(op, av, hwy.FromSlice(x.s, b, off))
			default:
				rv = hwy.BinaryMasked(op, av, hwy.FromSlice(x.s, b, off), mask)
			}
			rv.IntoSlice(r, off)
		})
		bo := operand(b, form.broadcast)
		if ref.Strict != nil {
			x.recordUlp(r, bools, func(i int) T { return ref.Strict(a[i], bo.At(i, x.lanes)) })
		}
		return x.checker(sc).BinaryUlp(a, bo, r, bools, ref)
	}
	return sc
}

func blendScenario[T hwy.Floats](gens []Generator[T], m *MaskGenerator) Scenario[T] {
	sc := Scenario[T]{
		Op:       "BLEND",
		Category: CategoryRearrange,
		Inputs:   append(names(gens), m.Name),
	}
	sc.run = func(x *exec[T]) error {
		a, b := gens[0].Fill(x.n), gens[1].Fill(x.n)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			hwy.Blend(hwy.FromSlice(x.s, a, off), hwy.FromSlice(x.s, b, off), mask).IntoSlice(r, off)
		})
		return x.checker(sc).Binary(a, oracle.Elems(b), r, bools, func(_, y T) T { return y })
	}
	return sc
}

// ternaryForm says which FMA operands are broadcast scalars.
type ternaryForm struct {
	name   string
	bcastB bool
	bcastC bool
}

var ternaryForms = []ternaryForm{
	{},
	{name: "broadcast", bcastC: true},
	{name: "alt-broadcast", bcastB: true},
	{name: "double-broadcast", bcastB: true, bcastC: true},
}

// ternaryScenarios covers FMA in every broadcast form, plain and masked.
func ternaryScenarios[T hwy.Floats](seed uint64) []Scenario[T] {
	var out []Scenario[T]
	masks := withMasks(MaskGenerators(seed))
	for _, triple := range Triples(FloatGenerators[T]()) {
		for _, op := range hwy.OperatorsOf(hwy.CategoryArithmetic, 3) {
			for _, form := range ternaryForms {
				for _, m := range masks {
					out = append(out, ternaryScenario(op, form, triple, m))
				}
			}
		}
	}
	return out
}

func ternaryScenario[T hwy.Floats](op hwy.Operator, form ternaryForm, gens []Generator[T], m *MaskGenerator) Scenario[T] {
	sc := opScenario[T](op, masked(form.name, m), append(names(gens), maskName(m)...)...)
	sc.run = func(x *exec[T]) error {
		f, err := oracle.Ternary[T](op)
		if err != nil {
			return err
		}
		a, b, c := gens[0].Fill(x.n), gens[1].Fill(x.n), gens[2].Fill(x.n)
		r := make([]T, x.n)
		bools, mask := x.mask(m)
		x.loop(func(off int) {
			av := hwy.FromSlice(x.s, a, off)
			var rv hwy.Vec[T]
			switch {
			case form.bcastB && form.bcastC:
				if bools == nil {
					rv = hwy.TernaryDoubleBroadcast(op, av, b[off], c[off])
				} else {
					rv = hwy.TernaryDoubleBroadcastMasked(op, av, b[off], c[off], mask)
				}
			case form.bcastB:
				cv := hwy.FromSlice(x.s, c, off)
				if bools == nil {
					rv = hwy.TernaryAltBroadcast(op, av, b[off], cv)
				} else {
					rv = hwy.TernaryAltBroadcastMasked(op, av, b[off], cv, mask)
				}
			case form.bcastC:
				bv := hwy.FromSlice(x.s, b, off)
				if bools == nil {
					rv = hwy.TernaryBroadcast(op, av, bv, c[off])
				} else {
					rv = hwy.TernaryBroadcastMasked(op, av, bv, c[off], mask)
				}
			default:
				bv, cv := hwy.FromSlice(x.s, b, off), hwy.FromSlice(x.s, c, off)
				if bools == nil {
					rv = hwy.Ternary(op, av, bv, cv)
				} else {
					rv = hwy.TernaryMasked(op, av, bv, cv, mask)
				}
			}
			rv.IntoSlice(r, off)
		})
		return x.checker(sc).Ternary(a, operand(b, form.bcastB), operand(c, form.bcastC), r, bools, f)
	}
	return sc
}

func operand[T hwy.Floats](buf []T, broadcast bool) oracle.Operand[T] {
	if broadcast {
		return oracle.Broadcast(buf)
	}
	return oracle.Elems(buf)
}
