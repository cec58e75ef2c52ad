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
	"math"
	"sync"
	"testing"
)

func TestSpeciesShapes(t *testing.T) {
	tests := []struct {
		name  string
		lanes int
		bits  int
		elem  int
		got32 *Species[float32]
		got64 *Species[float64]
	}{
		{"float32x2", 2, 64, 4, Float32x2, nil},
		{"float32x4", 4, 128, 4, Float32x4, nil},
		{"float32x8", 8, 256, 4, Float32x8, nil},
		{"float32x16", 16, 512, 4, Float32x16, nil},
		{"float64x1", 1, 64, 8, nil, Float64x1},
		{"float64x2", 2, 128, 8, nil, Float64x2},
		{"float64x4", 4, 256, 8, nil, Float64x4},
		{"float64x8", 8, 512, 8, nil, Float64x8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var name string
			var lanes, bits, elem int
			if tt.got32 != nil {
				s := tt.got32
				name, lanes, bits, elem = s.Name(), s.NumLanes(), s.VectorBits(), s.ElementSize()
			} else {
				s := tt.got64
				name, lanes, bits, elem = s.Name(), s.NumLanes(), s.VectorBits(), s.ElementSize()
			}
			if name != tt.name || lanes != tt.lanes || bits != tt.bits || elem != tt.elem {
				t.Errorf("got %s: %d lanes, %d bits, %d byte lanes", name, lanes, bits, elem)
			}
			if lanes*elem*8 != bits {
				t.Errorf("%s: lanes * element bits != vector bits", name)
			}
		})
	}
}

func TestSpeciesOfIsUnique(t *testing.T) {
	if SpeciesOf[float64](Shape256) != Float64x4 {
		t.Error("SpeciesOf(float64, 256) is not Float64x4")
	}
	type myFloat float64
	if s := SpeciesOf[myFloat](Shape128); s.NumLanes() != 2 || s != SpeciesOf[myFloat](Shape128) {
		t.Errorf("named float species %v is not unique", s)
	}

	var wg sync.WaitGroup
	got := make([]*Species[float32], 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = SpeciesOf[float32](Shape512)
		}()
	}
	wg.Wait()
	for i, s := range got {
		if s != Float32x16 {
			t.Errorf("goroutine %d got a distinct species", i)
		}
	}
}

func TestSpeciesOfInvalidShape(t *testing.T) {
	expectViolation(t, ErrInvalidShape, func() { SpeciesOf[float32](Shape(96)) })
}

func TestShapeForWidth(t *testing.T) {
	tests := []struct {
		width int
		want  Shape
	}{
		{4, Shape64}, {8, Shape64}, {16, Shape128}, {32, Shape256}, {64, Shape512}, {256, Shape512},
	}
	for _, tt := range tests {
		if got := ShapeForWidth(tt.width); got != tt.want {
			t.Errorf("ShapeForWidth(%d) = %v, want %v", tt.width, got, tt.want)
		}
	}
	if Shape256.String() != "S_256_BIT" || Shape256.Width() != 32 {
		t.Errorf("Shape256 = %v, %d bytes", Shape256, Shape256.Width())
	}
}

func TestPreferredSpecies(t *testing.T) {
	s := PreferredSpecies[float32]()
	if s.VectorBits() != ShapeForWidth(CurrentWidth()).Bits() {
		t.Errorf("preferred %v does not match %d byte registers", s, CurrentWidth())
	}
	if MaxLanes[float32]() != s.NumLanes() {
		t.Errorf("MaxLanes = %d, preferred species has %d", MaxLanes[float32](), s.NumLanes())
	}
}

func TestDispatchLevelString(t *testing.T) {
	levels := map[DispatchLevel]string{
		DispatchScalar: "scalar", DispatchAVX2: "avx2", DispatchAVX512: "avx512",
		DispatchNEON: "neon", DispatchSVE: "sve", DispatchLevel(99): "unknown",
	}
	for l, want := range levels {
		if l.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(l), l.String(), want)
		}
	}
	if CurrentName() == "" || CurrentWidth() < 16 {
		t.Errorf("current level %q with %d byte registers", CurrentName(), CurrentWidth())
	}
}

func TestNoSimdEnv(t *testing.T) {
	for val, want := range map[string]bool{"": false, "1": true, "false": false, "yes": true} {
		t.Setenv("HWY_NO_SIMD", val)
		if got := NoSimdEnv(); got != want {
			t.Errorf("HWY_NO_SIMD=%q: got %v, want %v", val, got, want)
		}
	}
}

func TestOperatorCatalog(t *testing.T) {
	ops := Operators()
	if len(ops) != numOperators {
		t.Fatalf("got %d operators", len(ops))
	}
	for _, op := range ops {
		back, ok := ParseOperator(op.String())
		if !ok || back != op {
			t.Errorf("ParseOperator(%q) = %v, %v", op.String(), back, ok)
		}
	}
	if _, ok := ParseOperator("NOPE"); ok {
		t.Error("parsed an unknown operator")
	}
	tests := []struct {
		op    Operator
		cat   Category
		arity int
		eq    Equivalence
	}{
		{OpAdd, CategoryArithmetic, 2, ExactBits},
		{OpSqrt, CategoryArithmetic, 1, ExactBits},
		{OpFMA, CategoryArithmetic, 3, ExactBits},
		{OpSin, CategoryTranscendental, 1, WithinOneUlp},
		{OpPow, CategoryTranscendental, 2, WithinOneUlp},
		{OpLE, CategoryComparison, 2, ExactBits},
		{OpIsNaN, CategoryTest, 1, ExactBits},
	}
	for _, tt := range tests {
		if tt.op.Category() != tt.cat || tt.op.Arity() != tt.arity || tt.op.Equivalence() != tt.eq {
			t.Errorf("%v: %v, arity %d, %v", tt.op, tt.op.Category(), tt.op.Arity(), tt.op.Equivalence())
		}
	}
	for _, op := range ops {
		want := op == OpAdd || op == OpMul || op == OpMin || op == OpMax
		if op.Associative() != want {
			t.Errorf("%v.Associative() = %v", op, op.Associative())
		}
	}
	if n := len(OperatorsOf(CategoryComparison, 2)); n != 6 {
		t.Errorf("%d comparisons", n)
	}
}

func TestCompare(t *testing.T) {
	s := Float64x4
	nan := math.NaN()
	a := FromValues(s, 1, 2, nan, 4)
	b := FromValues(s, 1, 3, nan, 3)
	tests := []struct {
		op   Operator
		want string
	}{
		{OpEQ, "[T...]"},
		{OpNE, "[.TTT]"},
		{OpLT, "[.T..]"},
		{OpLE, "[TT..]"},
		{OpGT, "[...T]"},
		{OpGE, "[T..T]"},
	}
	for _, tt := range tests {
		if got := Compare(tt.op, a, b).String(); got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.op, got, tt.want)
		}
	}
	m := MaskFromValues(s, false, true, true, true)
	if got := CompareMasked(OpNE, a, b, m).String(); got != "[.TTT]" {
		t.Errorf("masked NE: %s", got)
	}
	if got := CompareMasked(OpEQ, a, b, m).String(); got != "[....]" {
		t.Errorf("masked EQ: %s", got)
	}
	if got := CompareScalar(OpGT, a, 1.5).String(); got != "[.T.T]" {
		t.Errorf("GT scalar: %s", got)
	}
	if got := CompareInt64(OpEQ, a, 4).String(); got != "[...T]" {
		t.Errorf("EQ int64: %s", got)
	}
	if got := CompareInt64Masked(OpGE, a, 2, m).String(); got != "[.T.T]" {
		t.Errorf("GE int64 masked: %s", got)
	}
}

func TestCornerCaseTests(t *testing.T) {
	corner := []float64{math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(-1), math.Inf(1), math.NaN(), 0, negZero}
	tests := []struct {
		op   Operator
		want []bool
	}{
		{OpIsFinite, []bool{true, true, false, false, false, true, true}},
		{OpIsNaN, []bool{false, false, false, false, true, false, false}},
		{OpIsInfinite, []bool{false, false, true, true, false, false, false}},
		{OpIsNegative, []bool{false, false, true, false, false, false, true}},
		{OpIsDefault, []bool{false, false, false, false, false, true, false}},
	}
	for _, tt := range tests {
		for i, x := range corner {
			if got := Test(tt.op, Broadcast(Float64x1, x)).GetBit(0); got != tt.want[i] {
				t.Errorf("%v(%v) = %v, want %v", tt.op, x, got, tt.want[i])
			}
		}
	}
	v := FromValues(Float32x4, 1, float32(math.Inf(1)), float32(math.NaN()), -2)
	m := MaskFromValues(Float32x4, true, false, true, true)
	if got := TestMasked(OpIsFinite, v, m).String(); got != "[T..T]" {
		t.Errorf("masked IS_FINITE: %s", got)
	}
	if IsNaN(v).String() != "[..T.]" || IsInf(v).String() != "[.T..]" || IsFinite(v).String() != "[T..T]" {
		t.Errorf("IsNaN %v, IsInf %v, IsFinite %v", IsNaN(v), IsInf(v), IsFinite(v))
	}
}

func TestMaskOps(t *testing.T) {
	s := Float32x4
	a := MaskFromValues(s, true, true, false, false)
	b := MaskFromValues(s, true, false, true, false)
	tests := []struct {
		name string
		got  Mask[float32]
		want string
	}{
		{"And", a.And(b), "[T...]"},
		{"Or", a.Or(b), "[TTT.]"},
		{"Xor", a.Xor(b), "[.TT.]"},
		{"AndNot", a.AndNot(b), "[.T..]"},
		{"Not", a.Not(), "[..TT]"},
	}
	for _, tt := range tests {
		if tt.got.String() != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
	if a.CountTrue() != 2 || !a.AnyTrue() || a.AllTrue() || !MaskAll(s, true).AllTrue() || MaskAll(s, false).AnyTrue() {
		t.Error("mask predicates")
	}
	dst := make([]bool, 6)
	b.IntoBools(dst, 2)
	want := []bool{false, false, true, false, true, false}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("IntoBools: got %v, want %v", dst, want)
		}
	}
	expectViolation(t, ErrOutOfBounds, func() { b.IntoBools(dst, 3) })
	expectViolation(t, ErrSpeciesMismatch, func() { a.And(MaskAll(Float32x8, true)) })
}

func TestReduceLanes(t *testing.T) {
	v := FromValues(Float64x4, 3, -1.5, 8, 2)
	tests := []struct {
		op   Operator
		want float64
	}{
		{OpAdd, 11.5},
		{OpMul, -72},
		{OpMin, -1.5},
		{OpMax, 8},
	}
	m := MaskFromValues(Float64x4, true, false, false, true)
	masked := map[Operator]float64{OpAdd: 5, OpMul: 6, OpMin: 2, OpMax: 3}
	for _, tt := range tests {
		if got := ReduceLanes(tt.op, v); got != tt.want {
			t.Errorf("%v: got %v, want %v", tt.op, got, tt.want)
		}
		if got := ReduceLanesMasked(tt.op, v, m); got != masked[tt.op] {
			t.Errorf("%v masked: got %v, want %v", tt.op, got, masked[tt.op])
		}
		if got := ReduceLanesMasked(tt.op, v, MaskAll(Float64x4, false)); got != ReductionIdentity[float64](tt.op) {
			t.Errorf("%v with no lanes: got %v", tt.op, got)
		}
	}
	if ReduceSum(v) != 11.5 || ReduceMin(v) != -1.5 || ReduceMax(v) != 8 {
		t.Error("ReduceSum/ReduceMin/ReduceMax")
	}
	if got := ReduceLanesToInt64(OpAdd, v); got != 11 {
		t.Errorf("ADD to int64: %d", got)
	}
	if got := ReduceLanesToInt64Masked(OpMin, v, MaskFromValues(Float64x4, false, true, false, false)); got != -1 {
		t.Errorf("MIN to int64: %d", got)
	}
	expectViolation(t, ErrUnsupportedOperator, func() { ReduceLanes(OpSub, v) })
}

// The reduction of a buffer equals the fold of its chunk reductions.
func TestReduceDecomposition(t *testing.T) {
	s := Float32x4
	data := make([]float32, 32)
	for i := range data {
		data[i] = float32(i%7) - 2
	}
	for _, op := range []Operator{OpAdd, OpMin, OpMax} {
		acc := ReductionIdentity[float32](op)
		for off := 0; off < len(data); off += s.NumLanes() {
			r := ReduceLanes(op, FromSlice(s, data, off))
			switch op {
			case OpAdd:
				acc += r
			case OpMin:
				acc = min(acc, r)
			case OpMax:
				acc = max(acc, r)
			}
		}
		want := ReductionIdentity[float32](op)
		for _, x := range data {
			switch op {
			case OpAdd:
				want += x
			case OpMin:
				want = min(want, x)
			case OpMax:
				want = max(want, x)
			}
		}
		if acc != want {
			t.Errorf("%v: chunked %v, whole %v", op, acc, want)
		}
	}
}

func TestTruncateToInt64(t *testing.T) {
	tests := []struct {
		x    float64
		want int64
	}{
		{2.9, 2}, {-2.9, -2}, {math.NaN(), 0}, {math.Inf(1), math.MaxInt64}, {-1e300, math.MinInt64},
	}
	for _, tt := range tests {
		if got := TruncateToInt64(tt.x); got != tt.want {
			t.Errorf("TruncateToInt64(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}
