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
	"fmt"

	"github.com/ajroetker/go-lanes/hwy"
)

// Operand is a secondary input buffer of a lanewise check. A broadcast
// operand supplies the first element of each chunk to every lane of it.
type Operand[T hwy.Floats] struct {
	Buf       []T
	Broadcast bool
}

// Elems uses buf element by element.
func Elems[T hwy.Floats](buf []T) Operand[T] {
	return Operand[T]{Buf: buf}
}

// Broadcast uses buf[(i/lanes)*lanes] for element i.
func Broadcast[T hwy.Floats](buf []T) Operand[T] {
	return Operand[T]{Buf: buf, Broadcast: true}
}

// At returns the element operand i reads in a species of the given lane
// count.
func (o Operand[T]) At(i, lanes int) T {
	if o.Broadcast {
		return o.Buf[(i/lanes)*lanes]
	}
	return o.Buf[i]
}

// Checker compares buffers produced chunk by chunk, by a species of Lanes
// lanes, against scalar references.
//
// Mask arguments are indexed by lane (element i uses mask[i%Lanes]) and a
// nil mask means the operation was not masked. Masked lanewise results
// must hold the reference where the mask is set and the first operand
// elsewhere. Every method returns nil or a *Mismatch for the first bad
// element.
type Checker[T hwy.Floats] struct {
	Op    string
	Lanes int
}

// NewChecker returns a Checker labelled op for species s.
func NewChecker[T hwy.Floats](op string, s *hwy.Species[T]) Checker[T] {
	return Checker[T]{Op: op, Lanes: s.NumLanes()}
}

func (c Checker[T]) bit(mask []bool, i int) bool {
	return mask == nil || mask[i%c.Lanes]
}

func (c Checker[T]) mismatch(i int, mask []bool, expected, actual any, operands ...any) *Mismatch {
	return &Mismatch{
		Op:       c.Op,
		Index:    i,
		Lane:     i % c.Lanes,
		Operands: operands,
		Masked:   mask != nil,
		Set:      c.bit(mask, i),
		Expected: expected,
		Actual:   actual,
	}
}

// Unary checks r[i] against f(a[i]).
func (c Checker[T]) Unary(a, r []T, mask []bool, f func(T) T) error {
	for i := range r {
		want := a[i]
		if c.bit(mask, i) {
			want = f(a[i])
		}
		if !SameValue(r[i], want) {
			return c.mismatch(i, mask, want, r[i], a[i])
		}
	}
	return nil
}

// Binary checks r[i] against f(a[i], b[i]).
func (c Checker[T]) Binary(a []T, b Operand[T], r []T, mask []bool, f func(a, b T) T) error {
	for i := range r {
		x, y := a[i], b.At(i, c.Lanes)
		want := x
		if c.bit(mask, i) {
			want = f(x, y)
		}
		if !SameValue(r[i], want) {
			return c.mismatch(i, mask, want, r[i], x, y)
		}
	}
	return nil
}

// Ternary checks r[i] against f(a[i], b[i], cc[i]).
func (c Checker[T]) Ternary(a []T, b, cc Operand[T], r []T, mask []bool, f func(a, b, c T) T) error {
	for i := range r {
		x, y, z := a[i], b.At(i, c.Lanes), cc.At(i, c.Lanes)
		want := x
		if c.bit(mask, i) {
			want = f(x, y, z)
		}
		if !SameValue(r[i], want) {
			return c.mismatch(i, mask, want, r[i], x, y, z)
		}
	}
	return nil
}

// UnaryUlp checks a unary operator under its equivalence rule: exact
// against ref.Std when ref.Strict is nil, Accept otherwise.
func (c Checker[T]) UnaryUlp(a, r []T, mask []bool, ref UnaryRef[T]) error {
	if ref.Strict == nil {
		return c.Unary(a, r, mask, ref.Std)
	}
	for i := range r {
		if !c.bit(mask, i) {
			if !SameValue(r[i], a[i]) {
				return c.mismatch(i, mask, a[i], r[i], a[i])
			}
			continue
		}
		std, strict := ref.Std(a[i]), ref.Strict(a[i])
		if !Accept(r[i], std, strict) {
			m := c.mismatch(i, mask, std, r[i], a[i])
			m.Strict = strict
			return m
		}
	}
	return nil
}

// BinaryUlp is UnaryUlp for binary operators.
func (c Checker[T]) BinaryUlp(a []T, b Operand[T], r []T, mask []bool, ref BinaryRef[T]) error {
	if ref.Strict == nil {
		return c.Binary(a, b, r, mask, ref.Std)
	}
	for i := range r {
		x, y := a[i], b.At(i, c.Lanes)
		if !c.bit(mask, i) {
			if !SameValue(r[i], x) {
				return c.mismatch(i, mask, x, r[i], x, y)
			}
			continue
		}
		std, strict := ref.Std(x, y), ref.Strict(x, y)
		if !Accept(r[i], std, strict) {
			m := c.mismatch(i, mask, std, r[i], x, y)
			m.Strict = strict
			return m
		}
	}
	return nil
}

// Compare checks the mask lanes r[i] against f(a[i], b[i]). Unset mask
// lanes must be false.
func (c Checker[T]) Compare(a []T, b Operand[T], r, mask []bool, f func(a, b T) bool) error {
	for i := range r {
		x, y := a[i], b.At(i, c.Lanes)
		want := c.bit(mask, i) && f(x, y)
		if r[i] != want {
			return c.mismatch(i, mask, want, r[i], x, y)
		}
	}
	return nil
}

// Test checks the mask lanes r[i] against f(a[i]). Unset mask lanes must
// be false.
func (c Checker[T]) Test(a []T, r, mask []bool, f func(T) bool) error {
	for i := range r {
		want := c.bit(mask, i) && f(a[i])
		if r[i] != want {
			return c.mismatch(i, mask, want, r[i], a[i])
		}
	}
	return nil
}

// Reduction checks one result per chunk, r[k] for the chunk at k*Lanes,
// and the whole-array result folded from them.
func (c Checker[T]) Reduction(a, r []T, whole T, mask []bool, ref ReduceRef[T]) error {
	acc := ref.Identity
	for k := range len(a) / c.Lanes {
		want := ref.Chunk(a, k*c.Lanes, c.Lanes, mask)
		acc = ref.Fold(acc, want)
		if !SameValue(r[k], want) {
			return c.mismatch(k*c.Lanes, mask, want, r[k], a[k*c.Lanes:(k+1)*c.Lanes])
		}
	}
	if !SameValue(whole, acc) {
		m := c.mismatch(0, mask, acc, whole)
		m.Detail = "final result"
		return m
	}
	return nil
}

// ReductionInt64 is Reduction for reductions truncated to int64. The whole
// result folds the truncated chunk results.
func (c Checker[T]) ReductionInt64(a []T, r []int64, whole int64, mask []bool, ref ReduceRef[T]) error {
	acc := ref.IdentityInt64
	for k := range len(a) / c.Lanes {
		want := ToInt64(float64(ref.Chunk(a, k*c.Lanes, c.Lanes, mask)))
		acc = ref.FoldInt64(acc, want)
		if r[k] != want {
			return c.mismatch(k*c.Lanes, mask, want, r[k], a[k*c.Lanes:(k+1)*c.Lanes])
		}
	}
	if whole != acc {
		m := c.mismatch(0, mask, acc, whole)
		m.Detail = "final result"
		return m
	}
	return nil
}

// Rearrange checks r[i] against a[chunk+order[i]], or zero where the mask
// is unset.
func (c Checker[T]) Rearrange(a []T, order []int, r []T, mask []bool) error {
	for i := range r {
		var want T
		if c.bit(mask, i) {
			want = a[i-i%c.Lanes+order[i]]
		}
		if !SameValue(r[i], want) {
			return c.mismatch(i, mask, want, r[i], order[i])
		}
	}
	return nil
}

// SelectFrom is Rearrange with the order held as lane values.
func (c Checker[T]) SelectFrom(a, order, r []T, mask []bool) error {
	for i := range r {
		var want T
		if c.bit(mask, i) {
			want = a[i-i%c.Lanes+int(order[i])]
		}
		if !SameValue(r[i], want) {
			return c.mismatch(i, mask, want, r[i], order[i])
		}
	}
	return nil
}

// Chunks compares every chunk of r with the lanes ref computes for the
// chunk at that offset.
func (c Checker[T]) Chunks(r []T, ref func(off int) []T) error {
	for off := 0; off+c.Lanes <= len(r); off += c.Lanes {
		want := ref(off)
		for j, w := range want {
			if !SameValue(r[off+j], w) {
				m := c.mismatch(off+j, nil, w, r[off+j])
				m.Detail = fmt.Sprintf("chunk %v, want %v", r[off:off+c.Lanes], want)
				return m
			}
		}
	}
	return nil
}
