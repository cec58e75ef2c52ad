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

//go:generate go tool stringer -type=Operator -linecomment

// Operator names one entry of the closed lanewise operator catalog.
//
// Unary, binary and ternary operators map lanes to lanes; comparison
// operators produce a Mask from two operands and test operators produce a
// Mask from one. ADD, MUL, MIN and MAX are also reduction operators.
type Operator uint8

const (
	OpAdd          Operator = iota // ADD
	OpSub                          // SUB
	OpMul                          // MUL
	OpDiv                          // DIV
	OpMin                          // MIN
	OpMax                          // MAX
	OpFirstNonzero                 // FIRST_NONZERO
	OpNeg                          // NEG
	OpAbs                          // ABS
	OpSqrt                         // SQRT
	OpFMA                          // FMA

	OpSin   // SIN
	OpCos   // COS
	OpTan   // TAN
	OpAsin  // ASIN
	OpAcos  // ACOS
	OpAtan  // ATAN
	OpSinh  // SINH
	OpCosh  // COSH
	OpTanh  // TANH
	OpExp   // EXP
	OpExpm1 // EXPM1
	OpLog   // LOG
	OpLog1p // LOG1P
	OpLog10 // LOG10
	OpCbrt  // CBRT
	OpAtan2 // ATAN2
	OpHypot // HYPOT
	OpPow   // POW

	OpLT // LT
	OpGT // GT
	OpEQ // EQ
	OpNE // NE
	OpLE // LE
	OpGE // GE

	OpIsDefault  // IS_DEFAULT
	OpIsNegative // IS_NEGATIVE
	OpIsFinite   // IS_FINITE
	OpIsNaN      // IS_NAN
	OpIsInfinite // IS_INFINITE
)

const numOperators = int(OpIsInfinite) + 1

// Category groups operators by the kind of result they produce and the way
// their results are checked.
type Category uint8

const (
	CategoryArithmetic Category = iota
	CategoryTranscendental
	CategoryComparison
	CategoryTest
)

func (c Category) String() string {
	switch c {
	case CategoryArithmetic:
		return "arithmetic"
	case CategoryTranscendental:
		return "transcendental"
	case CategoryComparison:
		return "comparison"
	case CategoryTest:
		return "test"
	default:
		return "unknown"
	}
}

// Equivalence is the rule an implementation's result is held to.
type Equivalence uint8

const (
	// ExactBits requires a bit-identical result (any NaN matches any NaN).
	ExactBits Equivalence = iota

	// WithinOneUlp accepts a result that is bit-identical to the standard
	// reference, or within one ulp of the strict reference.
	WithinOneUlp
)

func (e Equivalence) String() string {
	if e == WithinOneUlp {
		return "within-1-ulp"
	}
	return "exact"
}

// Operators returns every operator in catalog order.
func Operators() []Operator {
	ops := make([]Operator, numOperators)
	for i := range ops {
		ops[i] = Operator(i)
	}
	return ops
}

// OperatorsOf returns the operators of category c with the given arity.
func OperatorsOf(c Category, arity int) []Operator {
	var ops []Operator
	for _, op := range Operators() {
		if op.Category() == c && op.Arity() == arity {
			ops = append(ops, op)
		}
	}
	return ops
}

// ParseOperator returns the operator whose String() is name.
func ParseOperator(name string) (Operator, bool) {
	for _, op := range Operators() {
		if op.String() == name {
			return op, true
		}
	}
	return 0, false
}

// Valid reports whether op is part of the catalog.
func (op Operator) Valid() bool {
	return int(op) < numOperators
}

// Category returns the category of op.
func (op Operator) Category() Category {
	switch {
	case op <= OpFMA:
		return CategoryArithmetic
	case op <= OpPow:
		return CategoryTranscendental
	case op <= OpGE:
		return CategoryComparison
	default:
		return CategoryTest
	}
}

// Arity returns the number of vector operands op takes.
func (op Operator) Arity() int {
	switch op {
	case OpNeg, OpAbs, OpSqrt,
		OpSin, OpCos, OpTan, OpAsin, OpAcos, OpAtan, OpSinh, OpCosh, OpTanh,
		OpExp, OpExpm1, OpLog, OpLog1p, OpLog10, OpCbrt,
		OpIsDefault, OpIsNegative, OpIsFinite, OpIsNaN, OpIsInfinite:
		return 1
	case OpFMA:
		return 3
	default:
		return 2
	}
}

// Equivalence returns the rule results of op are checked with.
func (op Operator) Equivalence() Equivalence {
	if op.Category() == CategoryTranscendental {
		return WithinOneUlp
	}
	return ExactBits
}

// Associative reports whether op can be used as a reduction operator.
func (op Operator) Associative() bool {
	switch op {
	case OpAdd, OpMul, OpMin, OpMax:
		return true
	}
	return false
}
