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

// Lanewise operations. Every masked form follows one rule: a lane whose
// mask bit is unset keeps the first operand's lane.

// Unary applies a unary lanewise operator (NEG, ABS, SQRT or a unary
// transcendental) to every lane of v.
func Unary[T Floats](op Operator, v Vec[T]) Vec[T] {
	if v.s == nil {
		violate("Unary", ErrSpeciesMismatch, "zero value operand")
	}
	f := applyUnary[T](op)
	r := Vec[T]{s: v.s}
	for i := range v.s.lanes {
		r.lanes[i] = f(v.lanes[i])
	}
	return r
}

// UnaryMasked is Unary restricted to the lanes set in m.
func UnaryMasked[T Floats](op Operator, v Vec[T], m Mask[T]) Vec[T] {
	checkSpecies("UnaryMasked", v.s, m.s)
	f := applyUnary[T](op)
	r := v
	for i := range v.s.lanes {
		if m.isSet(i) {
			r.lanes[i] = f(v.lanes[i])
		}
	}
	return r
}

// Binary applies a binary lanewise operator to a and b lane by lane.
func Binary[T Floats](op Operator, a, b Vec[T]) Vec[T] {
	checkSpecies("Binary", a.s, b.s)
	f := applyBinary[T](op)
	r := Vec[T]{s: a.s}
	for i := range a.s.lanes {
		r.lanes[i] = f(a.lanes[i], b.lanes[i])
	}
	return r
}

// BinaryMasked is Binary restricted to the lanes set in m; other lanes
// keep a's value.
func BinaryMasked[T Floats](op Operator, a, b Vec[T], m Mask[T]) Vec[T] {
	checkSpecies("BinaryMasked", a.s, b.s)
	checkSpecies("BinaryMasked", a.s, m.s)
	f := applyBinary[T](op)
	r := a
	for i := range a.s.lanes {
		if m.isSet(i) {
			r.lanes[i] = f(a.lanes[i], b.lanes[i])
		}
	}
	return r
}

// BinaryScalar applies op with b broadcast to every lane.
func BinaryScalar[T Floats](op Operator, a Vec[T], b T) Vec[T] {
	return Binary(op, a, Broadcast(a.s, b))
}

// BinaryScalarMasked applies op with b broadcast to the lanes set in m.
func BinaryScalarMasked[T Floats](op Operator, a Vec[T], b T, m Mask[T]) Vec[T] {
	return BinaryMasked(op, a, Broadcast(a.s, b), m)
}

// Ternary applies a ternary lanewise operator (FMA) lane by lane.
func Ternary[T Floats](op Operator, a, b, c Vec[T]) Vec[T] {
	checkSpecies("Ternary", a.s, b.s)
	checkSpecies("Ternary", a.s, c.s)
	f := applyTernary[T](op)
	r := Vec[T]{s: a.s}
	for i := range a.s.lanes {
		r.lanes[i] = f(a.lanes[i], b.lanes[i], c.lanes[i])
	}
	return r
}

// TernaryMasked is Ternary restricted to the lanes set in m; other lanes
// keep a's value.
func TernaryMasked[T Floats](op Operator, a, b, c Vec[T], m Mask[T]) Vec[T] {
	checkSpecies("TernaryMasked", a.s, b.s)
	checkSpecies("TernaryMasked", a.s, c.s)
	checkSpecies("TernaryMasked", a.s, m.s)
	f := applyTernary[T](op)
	r := a
	for i := range a.s.lanes {
		if m.isSet(i) {
			r.lanes[i] = f(a.lanes[i], b.lanes[i], c.lanes[i])
		}
	}
	return r
}

// TernaryBroadcast applies op with the third operand broadcast.
func TernaryBroadcast[T Floats](op Operator, a, b Vec[T], c T) Vec[T] {
	return Ternary(op, a, b, Broadcast(a.s, c))
}

// TernaryBroadcastMasked is TernaryBroadcast restricted to the lanes set in m.
func TernaryBroadcastMasked[T Floats](op Operator, a, b Vec[T], c T, m Mask[T]) Vec[T] {
	return TernaryMasked(op, a, b, Broadcast(a.s, c), m)
}

// TernaryAltBroadcast applies op with the second operand broadcast.
func TernaryAltBroadcast[T Floats](op Operator, a Vec[T], b T, c Vec[T]) Vec[T] {
	return Ternary(op, a, Broadcast(a.s, b), c)
}

// TernaryAltBroadcastMasked is TernaryAltBroadcast restricted to the lanes
// set in m.
func TernaryAltBroadcastMasked[T Floats](op Operator, a Vec[T], b T, c Vec[T], m Mask[T]) Vec[T] {
	return TernaryMasked(op, a, Broadcast(a.s, b), c, m)
}

// TernaryDoubleBroadcast applies op with the second and third operands
// broadcast.
func TernaryDoubleBroadcast[T Floats](op Operator, a Vec[T], b, c T) Vec[T] {
	return Ternary(op, a, Broadcast(a.s, b), Broadcast(a.s, c))
}

// TernaryDoubleBroadcastMasked is TernaryDoubleBroadcast restricted to the
// lanes set in m.
func TernaryDoubleBroadcastMasked[T Floats](op Operator, a Vec[T], b, c T, m Mask[T]) Vec[T] {
	return TernaryMasked(op, a, Broadcast(a.s, b), Broadcast(a.s, c), m)
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	return Binary(OpAdd, a, b)
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	return Binary(OpSub, a, b)
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	return Binary(OpMul, a, b)
}

// Div performs element-wise division.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	return Binary(OpDiv, a, b)
}

// Min returns the element-wise minimum. NaN propagates and -0 < +0.
func Min[T Floats](a, b Vec[T]) Vec[T] {
	return Binary(OpMin, a, b)
}

// Max returns the element-wise maximum. NaN propagates and -0 < +0.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	return Binary(OpMax, a, b)
}

// Neg negates all lanes.
func Neg[T Floats](v Vec[T]) Vec[T] {
	return Unary(OpNeg, v)
}

// Abs computes absolute value.
func Abs[T Floats](v Vec[T]) Vec[T] {
	return Unary(OpAbs, v)
}

// Sqrt computes square root.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	return Unary(OpSqrt, v)
}

// Pow computes base^exp element-wise.
func Pow[T Floats](base, exp Vec[T]) Vec[T] {
	return Binary(OpPow, base, exp)
}

// FMA performs a fused multiply-add: a*b + c, rounded once.
func FMA[T Floats](a, b, c Vec[T]) Vec[T] {
	return Ternary(OpFMA, a, b, c)
}
