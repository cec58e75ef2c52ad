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
	"fmt"
	"sync"
	"unsafe"
)

// Shape is the total bit width of a vector, independent of its element type.
type Shape int

const (
	Shape64  Shape = 64
	Shape128 Shape = 128
	Shape256 Shape = 256
	Shape512 Shape = 512
)

// Shapes lists every supported shape, narrowest first.
var Shapes = []Shape{Shape64, Shape128, Shape256, Shape512}

// Bits returns the width in bits.
func (sh Shape) Bits() int {
	return int(sh)
}

// Width returns the width in bytes (8 for 64-bit, 16 for 128-bit, etc.)
func (sh Shape) Width() int {
	return int(sh) / 8
}

// Valid reports whether sh is one of the supported shapes.
func (sh Shape) Valid() bool {
	switch sh {
	case Shape64, Shape128, Shape256, Shape512:
		return true
	}
	return false
}

func (sh Shape) String() string {
	return fmt.Sprintf("S_%d_BIT", int(sh))
}

// ShapeForWidth returns the shape of a register that is width bytes wide,
// clamped to the supported range.
func ShapeForWidth(width int) Shape {
	switch {
	case width >= 64:
		return Shape512
	case width >= 32:
		return Shape256
	case width >= 16:
		return Shape128
	default:
		return Shape64
	}
}

// Species fixes the element type and shape of a vector, and therefore its
// lane count. There is exactly one Species per (T, Shape) pair in a
// process, so species are compared by pointer.
type Species[T Floats] struct {
	shape Shape
	lanes int
	name  string
}

// Predeclared species. The suffix is the lane count.
var (
	Float32x2  = SpeciesOf[float32](Shape64)
	Float32x4  = SpeciesOf[float32](Shape128)
	Float32x8  = SpeciesOf[float32](Shape256)
	Float32x16 = SpeciesOf[float32](Shape512)

	Float64x1 = SpeciesOf[float64](Shape64)
	Float64x2 = SpeciesOf[float64](Shape128)
	Float64x4 = SpeciesOf[float64](Shape256)
	Float64x8 = SpeciesOf[float64](Shape512)
)

type speciesKey struct {
	elem  any
	shape Shape
}

var speciesRegistry sync.Map // speciesKey -> *Species[T]

// SpeciesOf returns the unique species for element type T and the given
// shape. It panics with ErrInvalidShape if shape is not supported.
func SpeciesOf[T Floats](shape Shape) *Species[T] {
	if !shape.Valid() {
		violate("SpeciesOf", ErrInvalidShape, "%d bits", int(shape))
	}
	var zero T
	key := speciesKey{elem: any(zero), shape: shape}
	if s, ok := speciesRegistry.Load(key); ok {
		return s.(*Species[T])
	}
	lanes := shape.Bits() / (int(unsafe.Sizeof(zero)) * 8)
	s := &Species[T]{
		shape: shape,
		lanes: lanes,
		name:  fmt.Sprintf("%Tx%d", zero, lanes),
	}
	actual, _ := speciesRegistry.LoadOrStore(key, s)
	return actual.(*Species[T])
}

// PreferredSpecies returns the species whose shape matches the register
// width of the current dispatch level.
func PreferredSpecies[T Floats]() *Species[T] {
	return SpeciesOf[T](ShapeForWidth(CurrentWidth()))
}

// Shape returns the shape of s.
func (s *Species[T]) Shape() Shape {
	return s.shape
}

// VectorBits returns the total width of a vector in bits.
func (s *Species[T]) VectorBits() int {
	return s.shape.Bits()
}

// ElementSize returns the size of one lane in bytes.
func (s *Species[T]) ElementSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// ElementBits returns the size of one lane in bits.
func (s *Species[T]) ElementBits() int {
	return s.ElementSize() * 8
}

// NumLanes returns the lane count, VectorBits() / ElementBits().
func (s *Species[T]) NumLanes() int {
	if s == nil {
		return 0
	}
	return s.lanes
}

// Name returns a short name such as "float64x4".
func (s *Species[T]) Name() string {
	return s.name
}

func (s *Species[T]) String() string {
	return fmt.Sprintf("Species[%s, %d lanes, %s]", s.name, s.lanes, s.shape)
}

// laneBits returns a bit set with one bit per lane.
func (s *Species[T]) laneBits() uint16 {
	return uint16(1<<s.lanes - 1)
}
