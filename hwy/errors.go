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

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by PreconditionError.
var (
	ErrSpeciesMismatch     = errors.New("species mismatch")
	ErrOutOfBounds         = errors.New("index out of bounds")
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrInvalidShape        = errors.New("invalid shape")
)

// PreconditionError is the panic value raised when an operation is called
// with operands it cannot accept: values of different species, buffer
// ranges that do not fit, or an operator of the wrong arity. Use errors.Is
// against the Err* sentinels to classify it.
type PreconditionError struct {
	Op     string
	Err    error
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("hwy.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("hwy.%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Catch runs fn and returns the *PreconditionError it panicked with, if any.
// Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*PreconditionError)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()
	fn()
	return nil
}

func violate(op string, cause error, format string, args ...any) {
	panic(&PreconditionError{Op: op, Err: cause, Detail: fmt.Sprintf(format, args...)})
}

func checkSpecies[T Floats](op string, want, got *Species[T]) {
	if want == nil || got == nil {
		violate(op, ErrSpeciesMismatch, "zero value operand")
	}
	if want != got {
		violate(op, ErrSpeciesMismatch, "%s vs %s", want.name, got.name)
	}
}

func checkMaskSpecies[T Floats](op string, a, b Mask[T]) {
	checkSpecies(op, a.s, b.s)
}

// checkRange verifies that [offset, offset+n) lies inside a buffer of the
// given length.
func checkRange(op string, offset, n, length int) {
	if offset < 0 || offset > length-n {
		violate(op, ErrOutOfBounds, "range [%d, %d) with length %d", offset, offset+n, length)
	}
}

func checkLane(op string, i, lanes int) {
	if i < 0 || i >= lanes {
		violate(op, ErrOutOfBounds, "lane %d with %d lanes", i, lanes)
	}
}
