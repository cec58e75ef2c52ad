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

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-lanes/hwy"
)

func TestSameValue(t *testing.T) {
	nan := math.NaN()
	assert.True(t, SameValue(nan, -nan))
	assert.True(t, SameValue(1.5, 1.5))
	assert.False(t, SameValue(0.0, math.Copysign(0, -1)))
	assert.False(t, SameValue(nan, 0))
	assert.False(t, SameValue(float32(1), float32(math.NaN())))
}

func TestUlp(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{1, 0x1p-52},
		{-1, 0x1p-52},
		{0, math.SmallestNonzeroFloat64},
		{math.MaxFloat64, 0x1p971},
		{math.Inf(-1), math.Inf(1)},
		{1024, 0x1p-42},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Ulp(tt.x), "Ulp(%v)", tt.x)
	}
	assert.Equal(t, float32(0x1p-23), Ulp(float32(1)))
	assert.Equal(t, float32(0x1p104), Ulp(float32(math.MaxFloat32)))
	assert.True(t, math.IsNaN(Ulp(math.NaN())))
}

func TestWithinOneUlp(t *testing.T) {
	x := 0.1
	assert.True(t, WithinOneUlp(x, x))
	assert.True(t, WithinOneUlp(math.Nextafter(x, 1), x))
	assert.True(t, WithinOneUlp(math.Nextafter(x, 0), x))
	assert.False(t, WithinOneUlp(math.Nextafter(math.Nextafter(x, 1), 1), x))
	assert.True(t, WithinOneUlp(math.NaN(), math.NaN()))
	assert.False(t, WithinOneUlp(math.NaN(), 1))
	assert.False(t, WithinOneUlp(1, math.NaN()))
	assert.True(t, WithinOneUlp(math.Inf(1), math.Inf(1)))
	assert.False(t, WithinOneUlp(math.MaxFloat64, math.Inf(1)))
}

func TestAccept(t *testing.T) {
	std, strict := 2.0, math.Nextafter(2, 3)
	assert.True(t, Accept(std, std, strict))
	assert.True(t, Accept(math.Nextafter(strict, 3), 0, strict))
	assert.False(t, Accept(2.5, std, strict))
	assert.True(t, Accept(math.NaN(), math.NaN(), 1), "NaN matching the standard reference")
}

func TestUlpDistance(t *testing.T) {
	assert.Equal(t, 0.0, UlpDistance(math.NaN(), math.NaN()))
	assert.Equal(t, 0.0, UlpDistance(math.Inf(1), math.Inf(1)))
	assert.Equal(t, 2.0, UlpDistance(1+0x1p-51, 1.0))
	assert.True(t, math.IsInf(UlpDistance(1, math.Inf(-1)), 1))
}

func TestBinaryReferences(t *testing.T) {
	negZero := math.Copysign(0, -1)
	nan := math.NaN()

	minRef := mustBinary[float64](t, hwy.OpMin)
	assert.True(t, SameValue(negZero, minRef.Std(0, negZero)))
	assert.True(t, SameValue(negZero, minRef.Std(negZero, 0)))
	assert.True(t, math.IsNaN(minRef.Std(1, nan)))
	assert.Nil(t, minRef.Strict)

	maxRef := mustBinary[float64](t, hwy.OpMax)
	assert.True(t, SameValue(0.0, maxRef.Std(negZero, 0)))
	assert.True(t, math.IsNaN(maxRef.Std(nan, 1)))

	first := mustBinary[float64](t, hwy.OpFirstNonzero)
	assert.True(t, SameValue(negZero, first.Std(negZero, 3)))
	assert.Equal(t, 3.0, first.Std(0, 3))

	pow := mustBinary[float32](t, hwy.OpPow)
	require.NotNil(t, pow.Strict)
	assert.Equal(t, float32(8), pow.Std(2, 3))
	assert.Equal(t, float32(8), pow.Strict(2, 3))

	_, err := Binary[float64](hwy.OpSin)
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestUnaryReferences(t *testing.T) {
	abs, err := Unary[float64](hwy.OpAbs)
	require.NoError(t, err)
	assert.True(t, SameValue(0.0, abs.Std(math.Copysign(0, -1))))
	assert.Nil(t, abs.Strict)

	sin, err := Unary[float64](hwy.OpSin)
	require.NoError(t, err)
	require.NotNil(t, sin.Strict)
	assert.True(t, WithinOneUlp(sin.Std(1), sin.Strict(1)))

	_, err = Unary[float64](hwy.OpAdd)
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestTernaryFloat32RoundsOnce(t *testing.T) {
	fma, err := Ternary[float32](hwy.OpFMA)
	require.NoError(t, err)

	// a*b lands exactly on a float32 tie and c nudges it above, by less
	// than a float64 ulp.
	a := float32(1 + 0x1p-12)
	c := float32(0x1p-60)
	assert.Equal(t, float32(1+0x1p-11+0x1p-23), fma(a, a, c))
	assert.Equal(t, float32(7), fma(2, 3, 1))
	assert.True(t, math.IsNaN(float64(fma(float32(math.Inf(1)), 0, 1))))

	_, err = Ternary[float32](hwy.OpAdd)
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestTestReferences(t *testing.T) {
	values := []float64{math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(-1), math.Inf(1), math.NaN(), 0, math.Copysign(0, -1)}
	tests := []struct {
		op   hwy.Operator
		want []bool
	}{
		{hwy.OpIsFinite, []bool{true, true, false, false, false, true, true}},
		{hwy.OpIsNaN, []bool{false, false, false, false, true, false, false}},
		{hwy.OpIsInfinite, []bool{false, false, true, true, false, false, false}},
		{hwy.OpIsDefault, []bool{false, false, false, false, false, true, false}},
		{hwy.OpIsNegative, []bool{false, false, true, false, false, false, true}},
	}
	for _, tt := range tests {
		f, err := Test[float64](tt.op)
		require.NoError(t, err)
		got := make([]bool, len(values))
		for i, v := range values {
			got[i] = f(v)
		}
		assert.Equal(t, tt.want, got, "%v", tt.op)
	}
}

func TestCheckerBinary(t *testing.T) {
	c := NewChecker(hwy.OpSub.String(), hwy.Float64x2)
	sub := mustBinary[float64](t, hwy.OpSub)

	a := []float64{1, 2, 3, 4}
	b := []float64{10, 20, 30, 40}
	require.NoError(t, c.Binary(a, Broadcast(b), []float64{-9, -8, -27, -26}, nil, sub.Std))
	require.NoError(t, c.Binary(a, Elems(b), []float64{-9, 2, -27, 4}, []bool{true, false}, sub.Std))

	err := c.Binary(a, Elems(b), []float64{-9, -18, -27, -35}, nil, sub.Std)
	var m *Mismatch
	require.ErrorAs(t, err, &m)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.Equal(t, 3, m.Index)
	assert.Equal(t, 1, m.Lane)
	assert.Equal(t, -36.0, m.Expected)
	assert.Equal(t, -35.0, m.Actual)
	assert.Contains(t, m.Error(), "SUB: at index #3")
}

func TestCheckerUlp(t *testing.T) {
	c := Checker[float64]{Op: "EXP", Lanes: 1}
	exp, err := Unary[float64](hwy.OpExp)
	require.NoError(t, err)

	a := []float64{0, 1, -1}
	r := []float64{1, math.Exp(1), math.Nextafter(exp.Strict(-1), 0)}
	require.NoError(t, c.UnaryUlp(a, r, nil, exp))

	r[1] = 2.5
	err = c.UnaryUlp(a, r, nil, exp)
	var m *Mismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, 1, m.Index)
	assert.NotNil(t, m.Strict)
}

func TestCheckerReduction(t *testing.T) {
	c := Checker[float64]{Op: "ADD", Lanes: 2}
	ref, err := Reduce[float64](hwy.OpAdd)
	require.NoError(t, err)

	a := []float64{1, 2, 3, 4, 5, 6}
	require.NoError(t, c.Reduction(a, []float64{3, 7, 11}, 21, nil, ref))
	require.NoError(t, c.Reduction(a, []float64{1, 3, 5}, 9, []bool{true, false}, ref))

	err = c.Reduction(a, []float64{3, 7, 11}, 20, nil, ref)
	var m *Mismatch
	require.ErrorAs(t, err, &m)
	assert.Equal(t, "final result", m.Detail)

	require.NoError(t, c.ReductionInt64([]float64{1.5, 1.75, -0.5, 0}, []int64{3, 0}, 3, nil, ref))
}

func TestReduceIdentities(t *testing.T) {
	mul, err := Reduce[float32](hwy.OpMul)
	require.NoError(t, err)
	assert.Equal(t, float32(1), mul.Identity)
	assert.Equal(t, int64(1), mul.IdentityInt64)

	mn, err := Reduce[float64](hwy.OpMin)
	require.NoError(t, err)
	assert.Equal(t, 2.0, mn.Chunk([]float64{math.Inf(1), 2, 5}, 0, 3, nil))
	assert.Equal(t, math.Inf(1), mn.Chunk([]float64{1, 2}, 0, 2, []bool{false, false}))

	_, err = Reduce[float64](hwy.OpDiv)
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestToInt64(t *testing.T) {
	assert.Equal(t, int64(0), ToInt64(math.NaN()))
	assert.Equal(t, int64(-7), ToInt64(-7.9))
	assert.Equal(t, int64(math.MaxInt64), ToInt64(math.Inf(1)))
	assert.Equal(t, int64(math.MinInt64), ToInt64(-0x1p70))
}

func TestCheckerRearrange(t *testing.T) {
	c := Checker[float64]{Op: "REARRANGE", Lanes: 4}
	a := []float64{10, 11, 12, 13}
	order := []int{3, 0, 0, 2}
	require.NoError(t, c.Rearrange(a, order, []float64{13, 10, 10, 12}, nil))
	require.NoError(t, c.Rearrange(a, order, []float64{13, 0, 10, 0}, []bool{true, false, true, false}))
	require.NoError(t, c.SelectFrom(a, []float64{3, 0, 0, 2}, []float64{13, 10, 10, 12}, nil))
	assert.Error(t, c.Rearrange(a, order, []float64{13, 10, 10, 13}, nil))
}

func TestRoutingTables(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{5, 6, 7, 8}

	assert.Equal(t, []float64{3, 4, 0, 0}, SliceRef(a, 0, 2, 4))
	assert.Equal(t, []float64{4, 5, 6, 7}, SliceWithRef(a, b, 0, 3, 4))
	assert.Equal(t, []float64{0, 5, 0, 7}, SliceMaskedRef(a, b, []bool{false, true, false, true}, 0, 3, 4))

	assert.Equal(t, []float64{0, 1, 2, 3}, UnsliceRef(a, 0, 1, 4))
	assert.Equal(t, []float64{5, 1, 2, 3}, UnsliceWithRef(a, b, 0, 1, 0, 4))
	assert.Equal(t, []float64{4, 6, 7, 8}, UnsliceWithRef(a, b, 0, 1, 1, 4))
	// Unset lane 1 of a is replaced by b[(1+1)%4] before insertion.
	assert.Equal(t, []float64{5, 1, 7, 3}, UnsliceMaskedRef(a, b, []bool{true, false, true, true}, 0, 1, 0, 4))

	assert.Equal(t, []float64{1, 5, 2, 6}, ZipRef(a, b, 0, 0, 4))
	assert.Equal(t, []float64{3, 7, 4, 8}, ZipRef(a, b, 0, 1, 4))
	assert.Equal(t, []float64{1, 3, 5, 7}, UnzipRef(a, b, 0, 0, 4))
	assert.Equal(t, []float64{2, 4, 6, 8}, UnzipRef(a, b, 0, 1, 4))
}

func TestGatherScatterTables(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	idx := []int{2, 2, 0, 1}

	assert.Equal(t, []float64{3, 3, 1, 2}, GatherRef(a, 0, idx, 0, nil, 4))
	assert.Equal(t, []float64{3, 0, 1, 0}, GatherRef(a, 0, idx, 0, []bool{true, false, true, false}, 4))

	// Lanes 0 and 1 both target slot 2; lane 1 is stored last.
	assert.Equal(t, []float64{3, 4, 2, 0}, ScatterRef(a, 0, idx, 0, 4))

	dst := []float64{-1, -2, -3, -4}
	// Lane 1 is unset but still writes back the -3 it read, after lane 0.
	assert.Equal(t, []float64{3, 4, -3, -4}, ScatterMaskedRef(dst, a, 0, idx, 0, []bool{true, false, true, true}, 4))
}

func TestCheckerChunks(t *testing.T) {
	c := Checker[float64]{Op: "SLICE", Lanes: 2}
	a := []float64{1, 2, 3, 4}
	require.NoError(t, c.Chunks([]float64{2, 0, 4, 0}, func(off int) []float64 { return SliceRef(a, off, 1, 2) }))

	err := c.Chunks([]float64{2, 0, 4, 3}, func(off int) []float64 { return SliceRef(a, off, 1, 2) })
	var m *Mismatch
	require.True(t, errors.As(err, &m))
	assert.Equal(t, 3, m.Index)
}

func mustBinary[T hwy.Floats](t *testing.T, op hwy.Operator) BinaryRef[T] {
	t.Helper()
	ref, err := Binary[T](op)
	require.NoError(t, err)
	return ref
}
