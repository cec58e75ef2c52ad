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
	"math/big"
	"unsafe"
)

// This file holds the per-lane semantics of every operator. Each apply
// function resolves an operator once to a scalar function that the vector
// loops then call per lane.

func is32[T Floats]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 4
}

// bitsOf returns the IEEE-754 bit pattern of x, zero extended.
func bitsOf[T Floats](x T) uint64 {
	if is32[T]() {
		return uint64(math.Float32bits(float32(x)))
	}
	return math.Float64bits(float64(x))
}

func signBit[T Floats](x T) bool {
	if is32[T]() {
		return math.Float32bits(float32(x))>>31 != 0
	}
	return math.Float64bits(float64(x))>>63 != 0
}

// MinOf returns the lesser of a and b. A NaN operand is returned as is,
// even against an infinity, and -0 orders below +0.
func MinOf[T Floats](a, b T) T {
	switch {
	case a != a:
		return a
	case b != b:
		return b
	case a == 0 && b == 0:
		if signBit(a) {
			return a
		}
		return b
	case a < b:
		return a
	}
	return b
}

// MaxOf returns the greater of a and b, with the NaN and signed zero
// rules of MinOf.
func MaxOf[T Floats](a, b T) T {
	switch {
	case a != a:
		return a
	case b != b:
		return b
	case a == 0 && b == 0:
		if signBit(a) {
			return b
		}
		return a
	case a > b:
		return a
	}
	return b
}

// mathUnary returns the math package function behind a unary
// transcendental operator, or nil.
func mathUnary(op Operator) func(float64) float64 {
	switch op {
	case OpSin:
		return math.Sin
	case OpCos:
		return math.Cos
	case OpTan:
		return math.Tan
	case OpAsin:
		return math.Asin
	case OpAcos:
		return math.Acos
	case OpAtan:
		return math.Atan
	case OpSinh:
		return math.Sinh
	case OpCosh:
		return math.Cosh
	case OpTanh:
		return math.Tanh
	case OpExp:
		return math.Exp
	case OpExpm1:
		return math.Expm1
	case OpLog:
		return math.Log
	case OpLog1p:
		return math.Log1p
	case OpLog10:
		return math.Log10
	case OpCbrt:
		return math.Cbrt
	}
	return nil
}

// mathBinary is mathUnary for the binary transcendental operators.
func mathBinary(op Operator) func(float64, float64) float64 {
	switch op {
	case OpAtan2:
		return math.Atan2
	case OpHypot:
		return math.Hypot
	case OpPow:
		return math.Pow
	}
	return nil
}

func applyUnary[T Floats](op Operator) func(T) T {
	switch op {
	case OpNeg:
		return func(x T) T { return -x }
	case OpAbs:
		return func(x T) T { return T(math.Abs(float64(x))) }
	case OpSqrt:
		return func(x T) T { return T(math.Sqrt(float64(x))) }
	}
	if f := mathUnary(op); f != nil {
		return func(x T) T { return T(f(float64(x))) }
	}
	violate("Unary", ErrUnsupportedOperator, "%v is not a unary lanewise operator", op)
	return nil
}

func applyBinary[T Floats](op Operator) func(a, b T) T {
	switch op {
	case OpAdd:
		return func(a, b T) T { return a + b }
	case OpSub:
		return func(a, b T) T { return a - b }
	case OpMul:
		return func(a, b T) T { return a * b }
	case OpDiv:
		return func(a, b T) T { return a / b }
	case OpMin:
		return MinOf[T]
	case OpMax:
		return MaxOf[T]
	case OpFirstNonzero:
		return func(a, b T) T {
			if bitsOf(a) != 0 {
				return a
			}
			return b
		}
	}
	if f := mathBinary(op); f != nil {
		return func(a, b T) T { return T(f(float64(a), float64(b))) }
	}
	violate("Binary", ErrUnsupportedOperator, "%v is not a binary lanewise operator", op)
	return nil
}

func applyTernary[T Floats](op Operator) func(a, b, c T) T {
	if op != OpFMA {
		violate("Ternary", ErrUnsupportedOperator, "%v is not a ternary lanewise operator", op)
	}
	return fusedMulAdd[T]
}

func applyCompare[T Floats](op Operator) func(a, b T) bool {
	switch op {
	case OpLT:
		return func(a, b T) bool { return a < b }
	case OpGT:
		return func(a, b T) bool { return a > b }
	case OpEQ:
		return func(a, b T) bool { return a == b }
	case OpNE:
		return func(a, b T) bool { return a != b }
	case OpLE:
		return func(a, b T) bool { return a <= b }
	case OpGE:
		return func(a, b T) bool { return a >= b }
	}
	violate("Compare", ErrUnsupportedOperator, "%v is not a comparison", op)
	return nil
}

func applyTest[T Floats](op Operator) func(T) bool {
	switch op {
	case OpIsDefault:
		return func(x T) bool { return bitsOf(x) == 0 }
	case OpIsNegative:
		return signBit[T]
	case OpIsFinite:
		return func(x T) bool { return !math.IsInf(float64(x), 0) && !math.IsNaN(float64(x)) }
	case OpIsNaN:
		return func(x T) bool { return x != x }
	case OpIsInfinite:
		return func(x T) bool { return math.IsInf(float64(x), 0) }
	}
	violate("Test", ErrUnsupportedOperator, "%v is not a test operator", op)
	return nil
}

// fusedMulAdd computes a*b+c with a single rounding to T.
func fusedMulAdd[T Floats](a, b, c T) T {
	if !is32[T]() {
		return T(math.FMA(float64(a), float64(b), float64(c)))
	}
	return T(fma32(float32(a), float32(b), float32(c)))
}

// fma32 is a float32 fused multiply-add. The product of two float32 values
// is exact in float64, but rounding p+c to float64 and then to float32 may
// round twice, so finite non-zero sums are formed exactly in big.Float.
func fma32(a, b, c float32) float32 {
	p := float64(a) * float64(b)
	z := float64(c)
	if p == 0 || z == 0 || math.IsInf(p, 0) || math.IsNaN(p) || math.IsInf(z, 0) || math.IsNaN(z) {
		return float32(p + z)
	}
	if p == -z {
		return 0
	}
	// Exponents of p and z span less than 600 bits, so the sum is exact.
	s := new(big.Float).SetPrec(1100).SetFloat64(p)
	s.Add(s, new(big.Float).SetFloat64(z))
	f, _ := s.Float32()
	return f
}
