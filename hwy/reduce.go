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

import "math"

// ReductionIdentity returns the identity element of a reduction operator:
// 0 for ADD, 1 for MUL, +Inf for MIN and -Inf for MAX.
func ReductionIdentity[T Floats](op Operator) T {
	switch op {
	case OpAdd:
		return 0
	case OpMul:
		return 1
	case OpMin:
		return T(math.Inf(1))
	case OpMax:
		return T(math.Inf(-1))
	}
	violate("ReductionIdentity", ErrUnsupportedOperator, "%v is not associative", op)
	return 0
}

// ReduceLanes folds the lanes of v left to right with op, starting from
// op's identity.
func ReduceLanes[T Floats](op Operator, v Vec[T]) T {
	if v.s == nil {
		violate("ReduceLanes", ErrSpeciesMismatch, "zero value operand")
	}
	return reduce(op, v, MaskAll(v.s, true))
}

// ReduceLanesMasked is ReduceLanes with the identity substituted for every
// lane unset in m.
func ReduceLanesMasked[T Floats](op Operator, v Vec[T], m Mask[T]) T {
	checkSpecies("ReduceLanesMasked", v.s, m.s)
	return reduce(op, v, m)
}

// ReduceLanesToInt64 is ReduceLanes truncated toward zero to an int64.
func ReduceLanesToInt64[T Floats](op Operator, v Vec[T]) int64 {
	return TruncateToInt64(float64(ReduceLanes(op, v)))
}

// ReduceLanesToInt64Masked is ReduceLanesMasked truncated toward zero to an
// int64.
func ReduceLanesToInt64Masked[T Floats](op Operator, v Vec[T], m Mask[T]) int64 {
	return TruncateToInt64(float64(ReduceLanesMasked(op, v, m)))
}

func reduce[T Floats](op Operator, v Vec[T], m Mask[T]) T {
	id := ReductionIdentity[T](op)
	f := applyBinary[T](op)
	acc := id
	for i := range v.s.lanes {
		x := id
		if m.isSet(i) {
			x = v.lanes[i]
		}
		acc = f(acc, x)
	}
	return acc
}

// ReduceSum returns the sum of all lanes.
func ReduceSum[T Floats](v Vec[T]) T {
	return ReduceLanes(OpAdd, v)
}

// ReduceMin returns the minimum lane.
func ReduceMin[T Floats](v Vec[T]) T {
	return ReduceLanes(OpMin, v)
}

// ReduceMax returns the maximum lane.
func ReduceMax[T Floats](v Vec[T]) T {
	return ReduceLanes(OpMax, v)
}

// TruncateToInt64 converts x to int64 by truncation toward zero. NaN
// becomes 0 and out-of-range values saturate.
func TruncateToInt64(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= 0x1p63:
		return math.MaxInt64
	case x <= -0x1p63:
		return math.MinInt64
	}
	return int64(x)
}
