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


// Package oracle holds the scalar references that vector results are
// checked against, the equivalence rules used to compare them, and
// assertion helpers that walk whole buffers chunk by chunk.
//
// References here are written independently of the hwy lanewise kernels:
// they operate on one element at a time and never call back into hwy.
package oracle

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"unsafe"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/strictmath"
)

// ErrNoReference is returned when an operator has no reference of the
// requested arity.
var ErrNoReference = errors.New("no scalar reference")

// UnaryRef is the pair of references for a unary operator. Strict is nil
// unless the operator is transcendental.
type UnaryRef[T hwy.Floats] struct {
	Std    func(T) T
	Strict func(T) T
}

// BinaryRef is the pair of references for a binary operator.
type BinaryRef[T hwy.Floats] struct {
	Std    func(a, b T) T
	Strict func(a, b T) T
}

// Unary resolves the references of a unary lanewise operator.
func Unary[T hwy.Floats](op hwy.Operator) (UnaryRef[T], error) {
	var f func(T) T
	switch op {
	case hwy.OpNeg:
		f = func(x T) T { return -x }
	case hwy.OpAbs:
		f = func(x T) T {
			if bits(x)&signMask[T]() != 0 {
				return -x
			}
			return x
		}
	case hwy.OpSqrt:
		f = func(x T) T { return T(math.Sqrt(float64(x))) }
	default:
		std := stdUnaryFuncs[op]
		if std == nil {
			return UnaryRef[T]{}, fmt.Errorf("oracle: %v: %w of arity 1", op, ErrNoReference)
		}
		return UnaryRef[T]{
			Std:    func(x T) T { return T(std(float64(x))) },
			Strict: strictmath.Unary[T](op),
		}, nil
	}
	return UnaryRef[T]{Std: f}, nil
}

// Binary resolves the references of a binary lanewise operator.
func Binary[T hwy.Floats](op hwy.Operator) (BinaryRef[T], error) {
	var f func(a, b T) T
	switch op {
	case hwy.OpAdd:
		f = func(a, b T) T { return a + b }
	case hwy.OpSub:
		f = func(a, b T) T { return a - b }
	case hwy.OpMul:
		f = func(a, b T) T { return a * b }
	case hwy.OpDiv:
		f = func(a, b T) T { return a / b }
	case hwy.OpMin:
		f = minRef[T]
	case hwy.OpMax:
		f = maxRef[T]
	case hwy.OpFirstNonzero:
		f = func(a, b T) T {
			if bits(a) != 0 {
				return a
			}
			return b
		}
	default:
		std := stdBinaryFuncs[op]
		if std == nil {
			return BinaryRef[T]{}, fmt.Errorf("oracle: %v: %w of arity 2", op, ErrNoReference)
		}
		return BinaryRef[T]{
			Std:    func(a, b T) T { return T(std(float64(a), float64(b))) },
			Strict: strictmath.Binary[T](op),
		}, nil
	}
	return BinaryRef[T]{Std: f}, nil
}

// Ternary resolves the reference of a ternary lanewise operator.
func Ternary[T hwy.Floats](op hwy.Operator) (func(a, b, c T) T, error) {
	if op != hwy.OpFMA {
		return nil, fmt.Errorf("oracle: %v: %w of arity 3", op, ErrNoReference)
	}
	if unsafe.Sizeof(T(0)) == 4 {
		return func(a, b, c T) T { return T(exactFMA32(float32(a), float32(b), float32(c))) }, nil
	}
	return func(a, b, c T) T { return T(math.FMA(float64(a), float64(b), float64(c))) }, nil
}

// Compare resolves the reference of a comparison operator.
func Compare[T hwy.Floats](op hwy.Operator) (func(a, b T) bool, error) {
	switch op {
	case hwy.OpLT:
		return func(a, b T) bool { return a < b }, nil
	case hwy.OpGT:
		return func(a, b T) bool { return a > b }, nil
	case hwy.OpEQ:
		return func(a, b T) bool { return a == b }, nil
	case hwy.OpNE:
		return func(a, b T) bool { return a != b }, nil
	case hwy.OpLE:
		return func(a, b T) bool { return a <= b }, nil
	case hwy.OpGE:
		return func(a, b T) bool { return a >= b }, nil
	}
	return nil, fmt.Errorf("oracle: %v: %w for comparison", op, ErrNoReference)
}

// Test resolves the reference of a test operator.
func Test[T hwy.Floats](op hwy.Operator) (func(T) bool, error) {
	switch op {
	case hwy.OpIsDefault:
		return func(x T) bool { return bits(x) == 0 }, nil
	case hwy.OpIsNegative:
		return func(x T) bool { return bits(x)&signMask[T]() != 0 }, nil
	case hwy.OpIsFinite:
		return func(x T) bool { return x-x == 0 }, nil
	case hwy.OpIsNaN:
		return func(x T) bool { return x != x }, nil
	case hwy.OpIsInfinite:
		return func(x T) bool { return x == x && x-x != 0 }, nil
	}
	return nil, fmt.Errorf("oracle: %v: %w for test", op, ErrNoReference)
}

// ReduceRef folds lanes for an associative operator, both in the element
// type and, for reductions to int64, over truncated chunk results.
type ReduceRef[T hwy.Floats] struct {
	Identity      T
	Fold          func(acc, x T) T
	IdentityInt64 int64
	FoldInt64     func(acc, x int64) int64
}

// Reduce resolves the reduction reference of op.
func Reduce[T hwy.Floats](op hwy.Operator) (ReduceRef[T], error) {
	switch op {
	case hwy.OpAdd:
		return ReduceRef[T]{
			Identity:  0,
			Fold:      func(acc, x T) T { return acc + x },
			FoldInt64: func(acc, x int64) int64 { return acc + x },
		}, nil
	case hwy.OpMul:
		return ReduceRef[T]{
			Identity:      1,
			Fold:          func(acc, x T) T { return acc * x },
			IdentityInt64: 1,
			FoldInt64:     func(acc, x int64) int64 { return acc * x },
		}, nil
	case hwy.OpMin:
		return ReduceRef[T]{
			Identity:      T(math.Inf(1)),
			Fold:          minRef[T],
			IdentityInt64: math.MaxInt64,
			FoldInt64:     func(acc, x int64) int64 { return min(acc, x) },
		}, nil
	case hwy.OpMax:
		return ReduceRef[T]{
			Identity:      T(math.Inf(-1)),
			Fold:          maxRef[T],
			IdentityInt64: math.MinInt64,
			FoldInt64:     func(acc, x int64) int64 { return max(acc, x) },
		}, nil
	}
	return ReduceRef[T]{}, fmt.Errorf("oracle: %v: %w for reduction", op, ErrNoReference)
}

// Chunk folds a[off:off+lanes] left to right from the identity. Lanes whose
// bit in mask (indexed by lane) is unset contribute the identity; a nil mask
// selects every lane.
func (r ReduceRef[T]) Chunk(a []T, off, lanes int, mask []bool) T {
	acc := r.Identity
	for j := range lanes {
		x := r.Identity
		if mask == nil || mask[j] {
			x = a[off+j]
		}
		acc = r.Fold(acc, x)
	}
	return acc
}

// ToInt64 truncates x toward zero. NaN maps to 0 and values outside the
// int64 range saturate.
func ToInt64(x float64) int64 {
	if x != x {
		return 0
	}
	if x >= 0x1p63 {
		return math.MaxInt64
	}
	if x < -0x1p63 {
		return math.MinInt64
	}
	return int64(x)
}

func minRef[T hwy.Floats](a, b T) T {
	switch {
	case a != a:
		return a
	case b != b:
		return b
	case a == 0 && b == 0:
		if bits(a)&signMask[T]() != 0 {
			return a
		}
		return b
	case a < b:
		return a
	}
	return b
}

func maxRef[T hwy.Floats](a, b T) T {
	switch {
	case a != a:
		return a
	case b != b:
		return b
	case a == 0 && b == 0:
		if bits(a)&signMask[T]() == 0 {
			return a
		}
		return b
	case a > b:
		return a
	}
	return b
}

var stdUnaryFuncs = map[hwy.Operator]func(float64) float64{
	hwy.OpSin:   math.Sin,
	hwy.OpCos:   math.Cos,
	hwy.OpTan:   math.Tan,
	hwy.OpAsin:  math.Asin,
	hwy.OpAcos:  math.Acos,
	hwy.OpAtan:  math.Atan,
	hwy.OpSinh:  math.Sinh,
	hwy.OpCosh:  math.Cosh,
	hwy.OpTanh:  math.Tanh,
	hwy.OpExp:   math.Exp,
	hwy.OpExpm1: math.Expm1,
	hwy.OpLog:   math.Log,
	hwy.OpLog1p: math.Log1p,
	hwy.OpLog10: math.Log10,
	hwy.OpCbrt:  math.Cbrt,
}

var stdBinaryFuncs = map[hwy.Operator]func(float64, float64) float64{
	hwy.OpAtan2: math.Atan2,
	hwy.OpHypot: math.Hypot,
	hwy.OpPow:   math.Pow,
}

// exactFMA32 rounds a*b+c to float32 once. Products of float32 values are
// exact in 48 bits and the sum of finite operands is exact at 1100 bits.
func exactFMA32(a, b, c float32) float32 {
	fa, fb, fc := float64(a), float64(b), float64(c)
	if math.IsInf(fa, 0) || math.IsInf(fb, 0) || math.IsInf(fc, 0) || fa != fa || fb != fb || fc != fc || a == 0 || b == 0 {
		return float32(fa*fb + fc)
	}
	x := new(big.Float).SetPrec(1100).SetFloat64(fa)
	x.Mul(x, new(big.Float).SetFloat64(fb))
	x.Add(x, new(big.Float).SetFloat64(fc))
	f, _ := x.Float32()
	return f
}

func bits[T hwy.Floats](x T) uint64 {
	if unsafe.Sizeof(x) == 4 {
		return uint64(math.Float32bits(float32(x)))
	}
	return math.Float64bits(float64(x))
}

func signMask[T hwy.Floats]() uint64 {
	if unsafe.Sizeof(T(0)) == 4 {
		return 1 << 31
	}
	return 1 << 63
}
