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

// Compare evaluates a comparison operator lane by lane. Ordered
// comparisons with a NaN operand are false; NE is true.
func Compare[T Floats](op Operator, a, b Vec[T]) Mask[T] {
	checkSpecies("Compare", a.s, b.s)
	f := applyCompare[T](op)
	m := Mask[T]{s: a.s}
	for i := range a.s.lanes {
		if f(a.lanes[i], b.lanes[i]) {
			m.bits |= 1 << i
		}
	}
	return m
}

// CompareMasked is Compare with every lane unset in mask forced false.
func CompareMasked[T Floats](op Operator, a, b Vec[T], mask Mask[T]) Mask[T] {
	checkSpecies("CompareMasked", a.s, mask.s)
	return Compare(op, a, b).And(mask)
}

// CompareScalar compares every lane of a against b.
func CompareScalar[T Floats](op Operator, a Vec[T], b T) Mask[T] {
	return Compare(op, a, Broadcast(a.s, b))
}

// CompareScalarMasked is CompareScalar gated by mask.
func CompareScalarMasked[T Floats](op Operator, a Vec[T], b T, mask Mask[T]) Mask[T] {
	return CompareMasked(op, a, Broadcast(a.s, b), mask)
}

// CompareInt64 compares every lane of a against b converted to T with
// round-to-nearest.
func CompareInt64[T Floats](op Operator, a Vec[T], b int64) Mask[T] {
	return CompareScalar(op, a, T(b))
}

// CompareInt64Masked is CompareInt64 gated by mask.
func CompareInt64Masked[T Floats](op Operator, a Vec[T], b int64, mask Mask[T]) Mask[T] {
	return CompareScalarMasked(op, a, T(b), mask)
}

// Test evaluates a classification operator (IS_NAN, IS_FINITE, ...) on
// every lane.
func Test[T Floats](op Operator, v Vec[T]) Mask[T] {
	if v.s == nil {
		violate("Test", ErrSpeciesMismatch, "zero value operand")
	}
	f := applyTest[T](op)
	m := Mask[T]{s: v.s}
	for i := range v.s.lanes {
		if f(v.lanes[i]) {
			m.bits |= 1 << i
		}
	}
	return m
}

// TestMasked is Test with every lane unset in mask forced false.
func TestMasked[T Floats](op Operator, v Vec[T], mask Mask[T]) Mask[T] {
	checkSpecies("TestMasked", v.s, mask.s)
	return Test(op, v).And(mask)
}

// Equal performs element-wise equality comparison.
func Equal[T Floats](a, b Vec[T]) Mask[T] {
	return Compare(OpEQ, a, b)
}

// NotEqual performs element-wise inequality comparison.
func NotEqual[T Floats](a, b Vec[T]) Mask[T] {
	return Compare(OpNE, a, b)
}

// LessThan performs element-wise less-than comparison.
func LessThan[T Floats](a, b Vec[T]) Mask[T] {
	return Compare(OpLT, a, b)
}

// LessEqual performs element-wise less-than-or-equal comparison.
func LessEqual[T Floats](a, b Vec[T]) Mask[T] {
	return Compare(OpLE, a, b)
}

// GreaterThan performs element-wise greater-than comparison.
func GreaterThan[T Floats](a, b Vec[T]) Mask[T] {
	return Compare(OpGT, a, b)
}

// GreaterEqual performs element-wise greater-than-or-equal comparison.
func GreaterEqual[T Floats](a, b Vec[T]) Mask[T] {
	return Compare(OpGE, a, b)
}

// IsNaN returns a mask of the NaN lanes.
func IsNaN[T Floats](v Vec[T]) Mask[T] {
	return Test(OpIsNaN, v)
}

// IsInf returns a mask of the infinite lanes.
func IsInf[T Floats](v Vec[T]) Mask[T] {
	return Test(OpIsInfinite, v)
}

// IsFinite returns a mask of the lanes that are neither infinite nor NaN.
func IsFinite[T Floats](v Vec[T]) Mask[T] {
	return Test(OpIsFinite, v)
}
