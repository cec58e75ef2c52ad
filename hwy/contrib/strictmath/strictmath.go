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

package strictmath

import (
	"unsafe"

	"github.com/ajroetker/go-lanes/hwy"
)

// Sin returns the correctly rounded sine of x.
func Sin(x float64) float64 { return sinEval(x).float64() }

// Cos returns the correctly rounded cosine of x.
func Cos(x float64) float64 { return cosEval(x).float64() }

// Tan returns the correctly rounded tangent of x.
func Tan(x float64) float64 { return tanEval(x).float64() }

// Asin returns the correctly rounded arcsine of x.
func Asin(x float64) float64 { return asinEval(x).float64() }

// Acos returns the correctly rounded arccosine of x.
func Acos(x float64) float64 { return acosEval(x).float64() }

// Atan returns the correctly rounded arctangent of x.
func Atan(x float64) float64 { return atanEval(x).float64() }

// Sinh returns the correctly rounded hyperbolic sine of x.
func Sinh(x float64) float64 { return sinhEval(x).float64() }

// Cosh returns the correctly rounded hyperbolic cosine of x.
func Cosh(x float64) float64 { return coshEval(x).float64() }

// Tanh returns the correctly rounded hyperbolic tangent of x.
func Tanh(x float64) float64 { return tanhEval(x).float64() }

// Exp returns the correctly rounded e**x.
func Exp(x float64) float64 { return expEval(x).float64() }

// Expm1 returns the correctly rounded e**x - 1.
func Expm1(x float64) float64 { return expm1Eval(x).float64() }

// Log returns the correctly rounded natural logarithm of x.
func Log(x float64) float64 { return logEval(x).float64() }

// Log1p returns the correctly rounded natural logarithm of 1+x.
func Log1p(x float64) float64 { return log1pEval(x).float64() }

// Log10 returns the correctly rounded decimal logarithm of x.
func Log10(x float64) float64 { return log10Eval(x).float64() }

// Cbrt returns the correctly rounded cube root of x.
func Cbrt(x float64) float64 { return cbrtEval(x).float64() }

// Atan2 returns the correctly rounded arctangent of y/x, using the signs of
// the two to determine the quadrant.
func Atan2(y, x float64) float64 { return atan2Eval(y, x).float64() }

// Hypot returns the correctly rounded Sqrt(x*x + y*y).
func Hypot(x, y float64) float64 { return hypotEval(x, y).float64() }

// Pow returns the correctly rounded x**y.
func Pow(x, y float64) float64 { return powEval(x, y).float64() }

func unaryEval(op hwy.Operator) func(float64) result {
	switch op {
	case hwy.OpSin:
		return sinEval
	case hwy.OpCos:
		return cosEval
	case hwy.OpTan:
		return tanEval
	case hwy.OpAsin:
		return asinEval
	case hwy.OpAcos:
		return acosEval
	case hwy.OpAtan:
		return atanEval
	case hwy.OpSinh:
		return sinhEval
	case hwy.OpCosh:
		return coshEval
	case hwy.OpTanh:
		return tanhEval
	case hwy.OpExp:
		return expEval
	case hwy.OpExpm1:
		return expm1Eval
	case hwy.OpLog:
		return logEval
	case hwy.OpLog1p:
		return log1pEval
	case hwy.OpLog10:
		return log10Eval
	case hwy.OpCbrt:
		return cbrtEval
	}
	return nil
}

func binaryEval(op hwy.Operator) func(a, b float64) result {
	switch op {
	case hwy.OpAtan2:
		return atan2Eval
	case hwy.OpHypot:
		return hypotEval
	case hwy.OpPow:
		return powEval
	}
	return nil
}

func round[T hwy.Floats](r result) T {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return T(r.float32())
	}
	return T(r.float64())
}

// Unary returns the strict reference of a unary transcendental operator for
// lanes of type T, rounded once to T. It returns nil for any other operator.
func Unary[T hwy.Floats](op hwy.Operator) func(T) T {
	f := unaryEval(op)
	if f == nil {
		return nil
	}
	return func(x T) T { return round[T](f(float64(x))) }
}

// Binary is Unary for ATAN2, HYPOT and POW.
func Binary[T hwy.Floats](op hwy.Operator) func(a, b T) T {
	f := binaryEval(op)
	if f == nil {
		return nil
	}
	return func(a, b T) T { return round[T](f(float64(a), float64(b))) }
}
