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

import "math"

// Arguments beyond these bounds overflow or underflow every exp-based
// result, and would exceed the exponent range expBig handles.
const (
	expOverflow  = 1000
	expUnderflow = -1100
)

func isSpecial(x float64) bool {
	return x == 0 || math.IsInf(x, 0) || math.IsNaN(x)
}

func sinEval(x float64) result {
	switch {
	case math.IsNaN(x), math.IsInf(x, 0):
		return exact(math.NaN())
	case x == 0:
		return exact(x)
	}
	r, q := reduceHalfPi(fromFloat(x))
	s, c := sinCosSeries(r)
	switch q {
	case 0:
		return approx(s)
	case 1:
		return approx(c)
	case 2:
		return approx(s.Neg(s))
	default:
		return approx(c.Neg(c))
	}
}

func cosEval(x float64) result {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return exact(math.NaN())
	}
	if x == 0 {
		return exact(1)
	}
	r, q := reduceHalfPi(fromFloat(x))
	s, c := sinCosSeries(r)
	switch q {
	case 0:
		return approx(c)
	case 1:
		return approx(s.Neg(s))
	case 2:
		return approx(c.Neg(c))
	default:
		return approx(s)
	}
}

func tanEval(x float64) result {
	switch {
	case math.IsNaN(x), math.IsInf(x, 0):
		return exact(math.NaN())
	case x == 0:
		return exact(x)
	}
	r, q := reduceHalfPi(fromFloat(x))
	s, c := sinCosSeries(r)
	if q%2 == 0 {
		return approx(s.Quo(s, c))
	}
	c.Quo(c, s)
	return approx(c.Neg(c))
}

func asinEval(x float64) result {
	switch {
	case math.IsNaN(x), x < -1, x > 1:
		return exact(math.NaN())
	case x == 0:
		return exact(x)
	case x == 1:
		return approx(halfPi())
	case x == -1:
		hp := halfPi()
		return approx(hp.Neg(hp))
	}
	bx := fromFloat(x)
	t := newFloat().Mul(bx, bx)
	t.Sub(fromInt(1), t)
	t.Sqrt(t)
	return approx(atanBig(t.Quo(bx, t)))
}

func acosEval(x float64) result {
	switch {
	case math.IsNaN(x), x < -1, x > 1:
		return exact(math.NaN())
	case x == 1:
		return exact(0)
	case x == -1:
		return approx(pi())
	}
	// acos x = 2·atan(√((1-x)/(1+x)))
	bx := fromFloat(x)
	num := newFloat().Sub(fromInt(1), bx)
	den := newFloat().Add(fromInt(1), bx)
	num.Quo(num, den)
	num.Sqrt(num)
	a := atanBig(num)
	return approx(a.SetMantExp(a, 1))
}

func atanEval(x float64) result {
	switch {
	case math.IsNaN(x):
		return exact(x)
	case x == 0:
		return exact(x)
	case math.IsInf(x, 1):
		return approx(halfPi())
	case math.IsInf(x, -1):
		hp := halfPi()
		return approx(hp.Neg(hp))
	}
	return approx(atanBig(fromFloat(x)))
}

func sinhEval(x float64) result {
	switch {
	case isSpecial(x):
		return exact(x)
	case math.Abs(x) > expOverflow:
		return exact(math.Copysign(math.Inf(1), x))
	}
	bx := fromFloat(x)
	if math.Abs(x) < 1 {
		s, _ := sinhCoshSeries(bx)
		return approx(s)
	}
	e := expBig(bx)
	inv := newFloat().Quo(fromInt(1), e)
	e.Sub(e, inv)
	return approx(e.SetMantExp(e, -1))
}

func coshEval(x float64) result {
	switch {
	case math.IsNaN(x):
		return exact(x)
	case math.IsInf(x, 0), math.Abs(x) > expOverflow:
		return exact(math.Inf(1))
	case x == 0:
		return exact(1)
	}
	bx := fromFloat(x)
	if math.Abs(x) < 1 {
		_, c := sinhCoshSeries(bx)
		return approx(c)
	}
	e := expBig(bx)
	inv := newFloat().Quo(fromInt(1), e)
	e.Add(e, inv)
	return approx(e.SetMantExp(e, -1))
}

func tanhEval(x float64) result {
	switch {
	case math.IsNaN(x), x == 0:
		return exact(x)
	case math.Abs(x) > 40:
		return exact(math.Copysign(1, x))
	}
	bx := fromFloat(x)
	if math.Abs(x) < 1 {
		s, c := sinhCoshSeries(bx)
		return approx(s.Quo(s, c))
	}
	// (e^2x - 1) / (e^2x + 1)
	e := expBig(bx.SetMantExp(bx, 1))
	one := fromInt(1)
	num := newFloat().Sub(e, one)
	return approx(num.Quo(num, e.Add(e, one)))
}

func expEval(x float64) result {
	switch {
	case math.IsNaN(x):
		return exact(x)
	case x > expOverflow:
		return exact(math.Inf(1))
	case x < expUnderflow:
		return exact(0)
	case x == 0:
		return exact(1)
	}
	return approx(expBig(fromFloat(x)))
}

func expm1Eval(x float64) result {
	switch {
	case isSpecial(x) && !math.IsInf(x, -1):
		return exact(x)
	case x > expOverflow:
		return exact(math.Inf(1))
	case x < expUnderflow:
		return exact(-1)
	}
	bx := fromFloat(x)
	if math.Abs(x) >= 1 {
		e := expBig(bx)
		return approx(e.Sub(e, fromInt(1)))
	}
	// x + x²/2! + x³/3! + ... avoids the cancellation of e^x - 1.
	sum := newFloat().Set(bx)
	term := newFloat().Set(bx)
	for n := int64(2); ; n++ {
		term.Mul(term, bx)
		term.Quo(term, fromInt(n))
		sum.Add(sum, term)
		if converged(term, sum) {
			return approx(sum)
		}
	}
}

func logEval(x float64) result {
	switch {
	case math.IsNaN(x), x < 0:
		return exact(math.NaN())
	case x == 0:
		return exact(math.Inf(-1))
	case math.IsInf(x, 1):
		return exact(x)
	case x == 1:
		return exact(0)
	}
	return approx(logBig(fromFloat(x)))
}

func log1pEval(x float64) result {
	switch {
	case math.IsNaN(x), x < -1:
		return exact(math.NaN())
	case x == -1:
		return exact(math.Inf(-1))
	case x == 0, math.IsInf(x, 1):
		return exact(x)
	}
	bx := fromFloat(x)
	if math.Abs(x) < 0.5 {
		// log(1+x) = 2·atanh(x / (2+x))
		z := newFloat().Add(fromInt(2), bx)
		z.Quo(bx, z)
		s := atanhSeries(z)
		return approx(s.SetMantExp(s, 1))
	}
	return approx(logBig(bx.Add(bx, fromInt(1))))
}

func log10Eval(x float64) result {
	r := logEval(x)
	if r.f == nil {
		return r
	}
	return approx(r.f.Quo(r.f, ln10()))
}

func cbrtEval(x float64) result {
	if isSpecial(x) {
		return exact(x)
	}
	// Newton's iteration y ← (2y + x/y²)/3 from the float64 estimate; each
	// step doubles the number of correct bits.
	bx := fromFloat(x)
	y := fromFloat(math.Cbrt(x))
	t := newFloat()
	for range 3 {
		t.Mul(y, y)
		t.Quo(bx, t)
		y.SetMantExp(y, 1)
		y.Add(y, t)
		y.Quo(y, fromInt(3))
	}
	return approx(y)
}

func atan2Eval(y, x float64) result {
	if isSpecial(x) || isSpecial(y) {
		return exact(math.Atan2(y, x))
	}
	ratio := newFloat().Quo(fromFloat(math.Abs(y)), fromFloat(math.Abs(x)))
	a := atanBig(ratio)
	if x < 0 {
		a.Sub(pi(), a)
	}
	if y < 0 {
		a.Neg(a)
	}
	return approx(a)
}

func hypotEval(x, y float64) result {
	switch {
	case math.IsInf(x, 0), math.IsInf(y, 0):
		return exact(math.Inf(1))
	case math.IsNaN(x), math.IsNaN(y):
		return exact(math.NaN())
	case x == 0:
		return exact(math.Abs(y))
	case y == 0:
		return exact(math.Abs(x))
	}
	bx, by := fromFloat(x), fromFloat(y)
	s := newFloat().Mul(bx, bx)
	s.Add(s, by.Mul(by, by))
	return approx(s.Sqrt(s))
}

func powEval(x, y float64) result {
	if isSpecial(x) || isSpecial(y) || x == 1 {
		return exact(math.Pow(x, y))
	}
	neg := false
	if x < 0 {
		yi, frac := math.Modf(y)
		if frac != 0 {
			return exact(math.NaN())
		}
		neg = math.Mod(yi, 2) != 0
		x = -x
	}
	t := logBig(fromFloat(x))
	t.Mul(t, fromFloat(y))
	sign := 1.0
	if neg {
		sign = -1
	}
	switch tf, _ := t.Float64(); {
	case tf > expOverflow:
		return exact(math.Copysign(math.Inf(1), sign))
	case tf < expUnderflow:
		return exact(math.Copysign(0, sign))
	}
	r := expBig(t)
	if neg {
		r.Neg(r)
	}
	return approx(r)
}
