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
	"math"
	"unsafe"

	"github.com/ajroetker/go-lanes/hwy"
)

// SameValue reports whether a and b are the same value: every NaN equals
// every other NaN, and +0 differs from -0.
func SameValue[T hwy.Floats](a, b T) bool {
	if a != a {
		return b != b
	}
	return bits(a) == bits(b)
}

// Ulp returns the spacing between |x| and the next representable value
// above it. The largest finite value uses the spacing below it, infinities
// have an infinite ulp and NaN is returned unchanged.
func Ulp[T hwy.Floats](x T) T {
	f := float64(x)
	switch {
	case f != f:
		return x
	case math.IsInf(f, 0):
		return T(math.Inf(1))
	}
	if unsafe.Sizeof(x) == 4 {
		a := float32(math.Abs(f))
		if a == math.MaxFloat32 {
			return T(a - math.Nextafter32(a, 0))
		}
		return T(math.Nextafter32(a, float32(math.Inf(1))) - a)
	}
	a := math.Abs(f)
	if a == math.MaxFloat64 {
		return T(a - math.Nextafter(a, 0))
	}
	return T(math.Nextafter(a, math.Inf(1)) - a)
}

// WithinOneUlp reports whether actual is at most one ulp away from
// expected. NaN-ness must match, and an infinite expected value must be
// matched exactly.
func WithinOneUlp[T hwy.Floats](actual, expected T) bool {
	if actual != actual || expected != expected {
		return actual != actual && expected != expected
	}
	if math.IsInf(float64(expected), 0) {
		return actual == expected
	}
	return math.Abs(float64(actual)-float64(expected)) <= float64(Ulp(expected))
}

// Accept is the rule for transcendental operators: actual passes when it
// is the same value as the standard reference or within one ulp of the
// strict one.
func Accept[T hwy.Floats](actual, std, strict T) bool {
	return SameValue(actual, std) || WithinOneUlp(actual, strict)
}

// UlpDistance measures |actual-ref| in ulps of ref. Matching NaNs and
// equal infinities are 0 apart; any other pairing with a non-finite value
// is infinitely far.
func UlpDistance[T hwy.Floats](actual, ref T) float64 {
	a, r := float64(actual), float64(ref)
	switch {
	case a != a || r != r:
		if a != a && r != r {
			return 0
		}
		return math.Inf(1)
	case a == r:
		return 0
	case math.IsInf(a, 0) || math.IsInf(r, 0):
		return math.Inf(1)
	}
	return math.Abs(a-r) / float64(Ulp(ref))
}
