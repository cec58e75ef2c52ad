package hwy

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// expectViolation runs fn and fails unless it panics with a
// *PreconditionError caused by want.
func expectViolation(t *testing.T, want error, fn func()) {
	t.Helper()
	err := Catch(fn)
	if err == nil {
		t.Fatalf("expected %v, got no panic", want)
	}
	var pe *PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PreconditionError, got %T", err)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func lanesEqual[T Floats](t *testing.T, name string, got Vec[T], want []T) {
	t.Helper()
	if diff := cmp.Diff(want, got.ToSlice(), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("%s: mismatch (-want +got):\n%s", name, diff)
	}
}

var negZero = math.Copysign(0, -1)

func TestBinaryConcrete(t *testing.T) {
	s := Float64x2
	a, b := Broadcast(s, 5), Broadcast(s, 3)
	tests := []struct {
		op   Operator
		want float64
	}{
		{OpAdd, 8},
		{OpSub, 2},
		{OpMul, 15},
		{OpDiv, 5.0 / 3},
		{OpMin, 3},
		{OpMax, 5},
		{OpFirstNonzero, 5},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			lanesEqual(t, tt.op.String(), Binary(tt.op, a, b), []float64{tt.want, tt.want})
		})
	}
}

func TestConvenienceWrappers(t *testing.T) {
	s := Float32x4
	a := FromValues(s, 1, 4, 9, 16)
	b := FromValues(s, 2, 2, 2, 2)
	lanesEqual(t, "Add", Add(a, b), []float32{3, 6, 11, 18})
	lanesEqual(t, "Sub", Sub(a, b), []float32{-1, 2, 7, 14})
	lanesEqual(t, "Mul", Mul(a, b), []float32{2, 8, 18, 32})
	lanesEqual(t, "Div", Div(a, b), []float32{0.5, 2, 4.5, 8})
	lanesEqual(t, "Min", Min(a, b), []float32{1, 2, 2, 2})
	lanesEqual(t, "Max", Max(a, b), []float32{2, 4, 9, 16})
	lanesEqual(t, "Neg", Neg(a), []float32{-1, -4, -9, -16})
	lanesEqual(t, "Abs", Abs(Neg(a)), []float32{1, 4, 9, 16})
	lanesEqual(t, "Sqrt", Sqrt(a), []float32{1, 2, 3, 4})
	lanesEqual(t, "Pow", Pow(b, b), []float32{4, 4, 4, 4})
	lanesEqual(t, "FMA", FMA(a, b, b), []float32{4, 10, 20, 34})
}

func TestSpecialValues(t *testing.T) {
	s := Float64x1
	inf := math.Inf(1)
	if r := Add(Broadcast(s, inf), Broadcast(s, -inf)).Lane(0); !math.IsNaN(r) {
		t.Errorf("ADD(+Inf, -Inf) = %v, want NaN", r)
	}
	if r := Div(Broadcast(s, 1), Broadcast(s, negZero)).Lane(0); r != math.Inf(-1) {
		t.Errorf("DIV(1, -0) = %v, want -Inf", r)
	}
	if r := Min(Broadcast(s, 0), Broadcast(s, negZero)).Lane(0); !math.Signbit(r) {
		t.Errorf("MIN(0, -0) = %v, want -0", r)
	}
	if r := Max(Broadcast(s, math.NaN()), Broadcast(s, 1)).Lane(0); !math.IsNaN(r) {
		t.Errorf("MAX(NaN, 1) = %v, want NaN", r)
	}
	// -0 has a set sign bit, so it counts as non-zero.
	if r := Binary(OpFirstNonzero, Broadcast(s, negZero), Broadcast(s, 7)).Lane(0); !math.Signbit(r) || r != 0 {
		t.Errorf("FIRST_NONZERO(-0, 7) = %v, want -0", r)
	}
	if r := Binary(OpFirstNonzero, Broadcast(s, 0), Broadcast(s, 7)).Lane(0); r != 7 {
		t.Errorf("FIRST_NONZERO(0, 7) = %v, want 7", r)
	}
	if r := Abs(Broadcast(s, negZero)).Lane(0); math.Signbit(r) {
		t.Errorf("ABS(-0) = %v, want +0", r)
	}
}

func TestMinMaxPropagateNaN(t *testing.T) {
	s := Float64x1
	nan, inf := math.NaN(), math.Inf(1)
	tests := []struct {
		name string
		op   Operator
		a, b float64
	}{
		{"MIN(-Inf, NaN)", OpMin, -inf, nan},
		{"MIN(NaN, -Inf)", OpMin, nan, -inf},
		{"MIN(+Inf, NaN)", OpMin, inf, nan},
		{"MAX(+Inf, NaN)", OpMax, inf, nan},
		{"MAX(NaN, +Inf)", OpMax, nan, inf},
		{"MAX(-Inf, NaN)", OpMax, -inf, nan},
	}
	for _, tt := range tests {
		if r := Binary(tt.op, Broadcast(s, tt.a), Broadcast(s, tt.b)).Lane(0); !math.IsNaN(r) {
			t.Errorf("%s = %v, want NaN", tt.name, r)
		}
	}
	if r := MaxOf(float32(negZero), 0); math.Signbit(float64(r)) {
		t.Errorf("MaxOf(-0, 0) = %v, want +0", r)
	}
	if r := MinOf(float32(0), float32(negZero)); !math.Signbit(float64(r)) {
		t.Errorf("MinOf(0, -0) = %v, want -0", r)
	}
}

func TestReduceMinMaxPropagateNaN(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	v := FromValues(Float64x2, nan, -inf)
	if r := ReduceMin(v); !math.IsNaN(r) {
		t.Errorf("ReduceMin([NaN, -Inf]) = %v, want NaN", r)
	}
	w := FromValues(Float32x4, 1, float32(inf), float32(nan), 2)
	if r := ReduceMax(w); !math.IsNaN(float64(r)) {
		t.Errorf("ReduceMax([1, +Inf, NaN, 2]) = %v, want NaN", r)
	}
	if r := ReduceLanesToInt64(OpMin, v); r != 0 {
		t.Errorf("ReduceLanesToInt64(MIN, [NaN, -Inf]) = %d, want 0", r)
	}
	m := MaskFromValues(Float64x2, false, true)
	if r := ReduceLanesMasked(OpMin, v, m); r != -inf {
		t.Errorf("masked ReduceMin = %v, want -Inf", r)
	}
}

func TestBinaryScalar(t *testing.T) {
	a := FromValues(Float64x4, 1, 2, 3, 4)
	lanesEqual(t, "SUB broadcast", BinaryScalar(OpSub, a, 10), []float64{-9, -8, -7, -6})
	m := MaskFromValues(Float64x4, true, false, true, false)
	lanesEqual(t, "SUB broadcast masked", BinaryScalarMasked(OpSub, a, 10, m), []float64{-9, 2, -7, 4})
}

func TestMaskedPassthrough(t *testing.T) {
	s := Float32x4
	a := FromValues(s, 1, 2, 3, 4)
	b := FromValues(s, 10, 20, 30, 40)
	m := MaskFromValues(s, false, true, false, true)
	lanesEqual(t, "BinaryMasked", BinaryMasked(OpAdd, a, b, m), []float32{1, 22, 3, 44})
	lanesEqual(t, "UnaryMasked", UnaryMasked(OpNeg, a, m), []float32{1, -2, 3, -4})
	lanesEqual(t, "TernaryMasked", TernaryMasked(OpFMA, a, b, b, m), []float32{1, 60, 3, 200})
	lanesEqual(t, "all false", BinaryMasked(OpMul, a, b, MaskAll(s, false)), a.ToSlice())
	lanesEqual(t, "all true", BinaryMasked(OpMul, a, b, MaskAll(s, true)), Mul(a, b).ToSlice())
}

func TestMaskedTranscendentalPassthrough(t *testing.T) {
	s := Float64x4
	x := FromValues(s, 0.5, 1, 2, -3)
	y := FromValues(s, 2, 3, 0.5, 2)
	m := MaskFromValues(s, true, false, false, true)
	lanesEqual(t, "UnaryMasked SIN", UnaryMasked(OpSin, x, m), []float64{math.Sin(0.5), 1, 2, math.Sin(-3)})
	lanesEqual(t, "BinaryMasked POW", BinaryMasked(OpPow, x, y, m), []float64{math.Pow(0.5, 2), 1, 2, math.Pow(-3, 2)})
	lanesEqual(t, "BinaryMasked ATAN2", BinaryMasked(OpAtan2, x, y, m.Not()), []float64{0.5, math.Atan2(1, 3), math.Atan2(2, 0.5), -3})
	nan := FromValues(s, math.NaN(), 1, math.NaN(), 1)
	lanesEqual(t, "NaN passthrough", UnaryMasked(OpExp, nan, MaskFromValues(s, false, true, false, false)), []float64{math.NaN(), math.Exp(1), math.NaN(), 1})
}

func TestTernaryBroadcastForms(t *testing.T) {
	s := Float64x2
	a := FromValues(s, 1, 2)
	b := FromValues(s, 3, 4)
	c := FromValues(s, 5, 6)
	lanesEqual(t, "broadcast", TernaryBroadcast(OpFMA, a, b, 10), []float64{13, 18})
	lanesEqual(t, "alt-broadcast", TernaryAltBroadcast(OpFMA, a, 10, c), []float64{15, 26})
	lanesEqual(t, "double-broadcast", TernaryDoubleBroadcast(OpFMA, a, 10, 1), []float64{11, 21})
	m := MaskFromValues(s, true, false)
	lanesEqual(t, "double-broadcast masked", TernaryDoubleBroadcastMasked(OpFMA, a, 10, 1, m), []float64{11, 2})
}

func TestFMAFloat32RoundsOnce(t *testing.T) {
	a := float32(1 + 0x1p-12)
	c := float32(0x1p-60)
	// a*a = 1 + 2^-11 + 2^-24 exactly; adding c tips the tie upward.
	want := float32(1 + 0x1p-11 + 0x1p-23)
	got := FMA(Broadcast(Float32x2, a), Broadcast(Float32x2, a), Broadcast(Float32x2, c)).Lane(0)
	if got != want {
		t.Errorf("FMA = %v (%x), want %v (%x)", got, math.Float32bits(got), want, math.Float32bits(want))
	}
}

func TestBlend(t *testing.T) {
	s := Float64x4
	a := FromValues(s, 1, 2, 3, 4)
	b := FromValues(s, 5, 6, 7, 8)
	m := MaskFromValues(s, true, true, false, false)
	lanesEqual(t, "Blend", Blend(a, b, m), []float64{5, 6, 3, 4})
	lanesEqual(t, "IfThenElse", IfThenElse(m, a, b), []float64{1, 2, 7, 8})
	lanesEqual(t, "IfThenElseZero", IfThenElseZero(m, a), []float64{1, 2, 0, 0})
}

func TestAddIndex(t *testing.T) {
	lanesEqual(t, "AddIndex", AddIndex(Broadcast(Float32x4, -3), 2), []float32{-3, -1, 1, 3})
	lanesEqual(t, "Iota", Iota(Float64x4), []float64{0, 1, 2, 3})
}

func TestUnsupportedOperator(t *testing.T) {
	v := Broadcast(Float64x2, 1)
	expectViolation(t, ErrUnsupportedOperator, func() { Unary(OpAdd, v) })
	expectViolation(t, ErrUnsupportedOperator, func() { Binary(OpSin, v, v) })
	expectViolation(t, ErrUnsupportedOperator, func() { Ternary(OpMul, v, v, v) })
	expectViolation(t, ErrUnsupportedOperator, func() { Compare(OpIsNaN, v, v) })
	expectViolation(t, ErrUnsupportedOperator, func() { Test(OpEQ, v) })
}

func TestSpeciesMismatch(t *testing.T) {
	a := Broadcast(Float64x2, 1)
	b := Broadcast(Float64x4, 1)
	expectViolation(t, ErrSpeciesMismatch, func() { Add(a, b) })
	expectViolation(t, ErrSpeciesMismatch, func() { BinaryMasked(OpAdd, a, a, MaskAll(Float64x4, true)) })
	expectViolation(t, ErrSpeciesMismatch, func() { Add(a, Vec[float64]{}) })
}

func TestTranscendentalMatchesMath(t *testing.T) {
	s := Float64x4
	x := FromValues(s, 0.5, 1, 2, -3)
	tests := []struct {
		op Operator
		f  func(float64) float64
	}{
		{OpSin, math.Sin},
		{OpExp, math.Exp},
		{OpLog1p, math.Log1p},
		{OpCbrt, math.Cbrt},
	}
	for _, tt := range tests {
		want := make([]float64, 4)
		for i := range want {
			want[i] = tt.f(x.Lane(i))
		}
		lanesEqual(t, tt.op.String(), Unary(tt.op, x), want)
	}
}
