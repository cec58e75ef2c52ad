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
	"math"
	"math/big"
	"sync"
)

// prec is the working precision in bits.
const prec = 192

// widePiPrec bounds the precision of the π used for argument reduction. It
// must exceed prec plus the largest float64 exponent.
const widePiPrec = 1408

func newFloat() *big.Float {
	return new(big.Float).SetPrec(prec)
}

func fromFloat(x float64) *big.Float {
	return newFloat().SetFloat64(x)
}

func fromInt(n int64) *big.Float {
	return newFloat().SetInt64(n)
}

// converged reports whether adding term to sum no longer changes sum at the
// working precision.
func converged(term, sum *big.Float) bool {
	return term.Sign() == 0 || term.MantExp(nil) < sum.MantExp(nil)-prec-8
}

// result is either an exact float64 or a high-precision value still to be
// rounded to the destination type.
type result struct {
	f       *big.Float
	special float64
}

func exact(x float64) result {
	return result{special: x}
}

func approx(f *big.Float) result {
	return result{f: f}
}

func (r result) float64() float64 {
	if r.f == nil {
		return r.special
	}
	v, _ := r.f.Float64()
	return v
}

func (r result) float32() float32 {
	if r.f == nil {
		return float32(r.special)
	}
	v, _ := r.f.Float32()
	return v
}

// atanInv returns atan(1/k) at precision p.
func atanInv(k int64, p uint) *big.Float {
	x := new(big.Float).SetPrec(p).SetInt64(1)
	x.Quo(x, new(big.Float).SetPrec(p).SetInt64(k))
	k2 := new(big.Float).SetPrec(p).SetInt64(k * k)
	sum := new(big.Float).SetPrec(p).Set(x)
	term := new(big.Float).SetPrec(p)
	for n := int64(1); ; n++ {
		x.Quo(x, k2)
		term.Quo(x, new(big.Float).SetPrec(p).SetInt64(2*n+1))
		if n%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if term.Sign() == 0 || term.MantExp(nil) < sum.MantExp(nil)-int(p)-8 {
			return sum
		}
	}
}

// halfPiWide is π/2 at widePiPrec bits (Machin's formula).
var halfPiWide = sync.OnceValue(func() *big.Float {
	const p = widePiPrec + 32
	a := atanInv(5, p)
	a.SetMantExp(a, 4) // 16·atan(1/5)
	b := atanInv(239, p)
	b.SetMantExp(b, 2) // 4·atan(1/239)
	a.Sub(a, b)
	return a.SetMantExp(a, -1)
})

func halfPi() *big.Float {
	return newFloat().Set(halfPiWide())
}

func pi() *big.Float {
	hp := halfPi()
	return hp.SetMantExp(hp, 1)
}

var ln2 = sync.OnceValue(func() *big.Float {
	// ln 2 = 2·atanh(1/3)
	z := fromInt(1)
	z.Quo(z, fromInt(3))
	s := atanhSeries(z)
	return s.SetMantExp(s, 1)
})

var ln10 = sync.OnceValue(func() *big.Float {
	return logBig(fromInt(10))
})

// atanhSeries returns atanh(z) = z + z³/3 + z⁵/5 + ... for small |z|.
func atanhSeries(z *big.Float) *big.Float {
	z2 := newFloat().Mul(z, z)
	pow := newFloat().Set(z)
	sum := newFloat().Set(z)
	term := newFloat()
	for n := int64(1); ; n++ {
		pow.Mul(pow, z2)
		term.Quo(pow, fromInt(2*n+1))
		sum.Add(sum, term)
		if converged(term, sum) {
			return sum
		}
	}
}

// expBig returns e^x for |x| <= ~1100.
func expBig(x *big.Float) *big.Float {
	xf, _ := x.Float64()
	k := int64(math.Round(xf / math.Ln2))

	// r = (x - k·ln2) / 2^8, so |r| < 2^-9.
	r := newFloat().Mul(fromInt(k), ln2())
	r.Sub(x, r)
	r.SetMantExp(r, -8)

	sum := fromInt(1)
	term := fromInt(1)
	for n := int64(1); ; n++ {
		term.Mul(term, r)
		term.Quo(term, fromInt(n))
		sum.Add(sum, term)
		if converged(term, sum) {
			break
		}
	}
	for range 8 {
		sum.Mul(sum, sum)
	}
	return sum.SetMantExp(sum, int(k))
}

var sqrtHalf = big.NewFloat(math.Sqrt2 / 2)

// logBig returns ln x for x > 0.
func logBig(x *big.Float) *big.Float {
	m := new(big.Float)
	e := x.MantExp(m)
	m.SetPrec(prec)
	// m in [√½, √2) keeps the atanh argument below 0.172.
	if m.Cmp(sqrtHalf) < 0 {
		m.SetMantExp(m, 1)
		e--
	}
	one := fromInt(1)
	z := newFloat().Sub(m, one)
	z.Quo(z, newFloat().Add(m, one))
	s := atanhSeries(z)
	s.SetMantExp(s, 1)
	return s.Add(s, newFloat().Mul(fromInt(int64(e)), ln2()))
}

// atanBig returns atan(v).
func atanBig(v *big.Float) *big.Float {
	one := fromInt(1)
	neg := v.Sign() < 0
	a := newFloat().Abs(v)
	invert := a.Cmp(one) > 0
	if invert {
		a.Quo(one, a)
	}
	// atan(a) = 2·atan(a / (1 + √(1 + a²))), applied four times.
	t := newFloat()
	for range 4 {
		t.Mul(a, a)
		t.Add(t, one)
		t.Sqrt(t)
		t.Add(t, one)
		a.Quo(a, t)
	}
	a2 := newFloat().Mul(a, a)
	pow := newFloat().Set(a)
	sum := newFloat().Set(a)
	term := newFloat()
	for n := int64(1); ; n++ {
		pow.Mul(pow, a2)
		term.Quo(pow, fromInt(2*n+1))
		if n%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if converged(term, sum) {
			break
		}
	}
	sum.SetMantExp(sum, 4)
	if invert {
		sum.Sub(halfPi(), sum)
	}
	if neg {
		sum.Neg(sum)
	}
	return sum
}

// reduceHalfPi returns r and q in [0, 4) with x = n·π/2 + r for an integer
// n ≡ q (mod 4), and |r| < π/2.
func reduceHalfPi(x *big.Float) (*big.Float, int) {
	p := uint(prec + 64)
	if e := x.MantExp(nil); e > 0 {
		p += uint(e)
	}
	hp := halfPiWide()
	q := new(big.Float).SetPrec(p).Quo(x, hp)
	n, _ := q.Int(nil)
	r := new(big.Float).SetPrec(p).SetInt(n)
	r.Mul(r, hp)
	r.Sub(x, r)
	quad := new(big.Int).Mod(n, big.NewInt(4)).Int64()
	return newFloat().Set(r), int(quad)
}

// sinCosSeries returns sin r and cos r for |r| < π/2.
func sinCosSeries(r *big.Float) (sin, cos *big.Float) {
	r2 := newFloat().Mul(r, r)
	sin = newFloat().Set(r)
	cos = fromInt(1)
	ts := newFloat().Set(r)
	tc := fromInt(1)
	for k := int64(1); ; k++ {
		tc.Mul(tc, r2)
		tc.Quo(tc, fromInt((2*k-1)*(2*k)))
		ts.Mul(ts, r2)
		ts.Quo(ts, fromInt((2*k)*(2*k+1)))
		if k%2 == 1 {
			sin.Sub(sin, ts)
			cos.Sub(cos, tc)
		} else {
			sin.Add(sin, ts)
			cos.Add(cos, tc)
		}
		if converged(ts, sin) && converged(tc, cos) {
			return sin, cos
		}
	}
}

// sinhCoshSeries returns sinh x and cosh x for |x| < 1.
func sinhCoshSeries(x *big.Float) (sinh, cosh *big.Float) {
	x2 := newFloat().Mul(x, x)
	sinh = newFloat().Set(x)
	cosh = fromInt(1)
	ts := newFloat().Set(x)
	tc := fromInt(1)
	for k := int64(1); ; k++ {
		tc.Mul(tc, x2)
		tc.Quo(tc, fromInt((2*k-1)*(2*k)))
		ts.Mul(ts, x2)
		ts.Quo(ts, fromInt((2*k)*(2*k+1)))
		sinh.Add(sinh, ts)
		cosh.Add(cosh, tc)
		if converged(ts, sinh) && converged(tc, cosh) {
			return sinh, cosh
		}
	}
}
