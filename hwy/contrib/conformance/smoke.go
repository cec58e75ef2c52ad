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
	"fmt"
	"unsafe"

	"github.com/ajroetker/go-lanes/hwy"
	"github.com/ajroetker/go-lanes/hwy/contrib/oracle"
)

func smokeScenarios[T hwy.Floats]() []Scenario[T] {
	return []Scenario[T]{smokeIndexScenario[T](), smokeZipScenario[T](), speciesScenario[T]()}
}

func smokeFailure(op, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", oracle.ErrMismatch, op, fmt.Sprintf(format, args...))
}

// smokeIndexScenario builds -3 + i*scale and checks ordering, sign and
// finiteness of every lane, and the maximum.
func smokeIndexScenario[T hwy.Floats]() Scenario[T] {
	sc := namedScenario[T]("ADD_INDEX", "smoke", CategorySmoke)
	sc.run = func(x *exec[T]) error {
		scale := 2
		if unsafe.Sizeof(T(0)) == 8 {
			scale = 1_000_000
		}
		three := hwy.Broadcast(x.s, -3)
		higher := hwy.AddIndex(three, scale)
		if !hwy.Compare(hwy.OpLE, three, higher).AllTrue() {
			return smokeFailure(sc.Op, "%v is not <= %v", three, higher)
		}
		clamped := hwy.BinaryScalar(hwy.OpMin, higher, -1)
		if !hwy.Test(hwy.OpIsNegative, clamped).AllTrue() {
			return smokeFailure(sc.Op, "%v is not negative", clamped)
		}
		if !hwy.Test(hwy.OpIsFinite, higher).AllTrue() {
			return smokeFailure(sc.Op, "%v is not finite", higher)
		}
		want := T(-3) + T(scale*(x.lanes-1))
		if got := hwy.ReduceLanes(hwy.OpMax, higher); got != want {
			return smokeFailure(sc.Op, "max of %v is %v, want %v", higher, got, want)
		}
		return nil
	}
	return sc
}

// smokeZipScenario checks that unzipping the zip of two index vectors
// restores them.
func smokeZipScenario[T hwy.Floats]() Scenario[T] {
	sc := namedScenario[T]("ZIP", "smoke", CategorySmoke)
	sc.run = func(x *exec[T]) error {
		a := hwy.Iota(x.s)
		b := hwy.AddIndex(hwy.Broadcast(x.s, T(x.lanes)), 1)
		lo, hi := hwy.Zip(a, b, 0), hwy.Zip(a, b, 1)
		for j := range 2 * x.lanes {
			src := a
			if j%2 == 1 {
				src = b
			}
			got := lo
			if j >= x.lanes {
				got = hi
			}
			if got.Lane(j%x.lanes) != src.Lane(j/2) {
				return smokeFailure(sc.Op, "zip(%v, %v) = %v %v at %d", a, b, lo, hi, j)
			}
		}
		if ra := hwy.Unzip(lo, hi, 0); !vecEqual(ra, a) {
			return smokeFailure("UNZIP", "unzip(%v, %v, 0) = %v, want %v", lo, hi, ra, a)
		}
		if rb := hwy.Unzip(lo, hi, 1); !vecEqual(rb, b) {
			return smokeFailure("UNZIP", "unzip(%v, %v, 1) = %v, want %v", lo, hi, rb, b)
		}
		return nil
	}
	return sc
}

// speciesScenario checks the shape arithmetic of the species and the
// identity of its registry entry.
func speciesScenario[T hwy.Floats]() Scenario[T] {
	sc := namedScenario[T]("SPECIES", "smoke", CategorySmoke)
	sc.run = func(x *exec[T]) error {
		s := x.s
		if s.NumLanes()*s.ElementBits() != s.VectorBits() {
			return smokeFailure(sc.Op, "%v: %d lanes of %d bits in %d", s, s.NumLanes(), s.ElementBits(), s.VectorBits())
		}
		if hwy.SpeciesOf[T](s.Shape()) != s {
			return smokeFailure(sc.Op, "%v is not the registered species for %v", s, s.Shape())
		}
		if v := hwy.Zero(s); v.Species() != s || v.NumLanes() != s.NumLanes() {
			return smokeFailure(sc.Op, "%v: zero vector has %d lanes", s, v.NumLanes())
		}
		if m := hwy.MaskAll(s, true); m.CountTrue() != s.NumLanes() {
			return smokeFailure(sc.Op, "%v: all-true mask %v", s, m)
		}
		return nil
	}
	return sc
}

func vecEqual[T hwy.Floats](a, b hwy.Vec[T]) bool {
	return hwy.Compare(hwy.OpEQ, a, b).AllTrue()
}
