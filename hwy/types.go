// Package hwy provides fixed-width, lane-parallel floating-point vectors.
//
// Every value is tied to a Species, the (element type, vector width) pair
// that fixes its lane count. Vectors, masks and shuffles are immutable
// values: every operation returns a new one. Operations that combine values
// of different species, or that touch a buffer out of range, panic with a
// *PreconditionError.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-lanes/hwy"
//
//	s := hwy.Float64x4
//	a := hwy.FromSlice(s, data1, 0)
//	b := hwy.FromSlice(s, data2, 0)
//
//	sum := hwy.Add(a, b)
//	masked := hwy.BinaryMasked(hwy.OpMul, a, b, hwy.Compare(hwy.OpGT, a, b))
//
//	sum.IntoSlice(output, 0)
package hwy

import (
	"fmt"
	"math/bits"
	"strings"
)

// Floats is a constraint for floating-point lane types.
type Floats interface {
	~float32 | ~float64
}

// maxLanes is the lane count of the widest species (512 bits of float32).
const maxLanes = 16

// Vec is an immutable vector of lanes belonging to one species.
//
// The zero Vec has no species; using it in an operation is a species
// mismatch. Create vectors with FromSlice, FromValues, Broadcast or Zero.
type Vec[T Floats] struct {
	s     *Species[T]
	lanes [maxLanes]T
}

// Species returns the species of v.
func (v Vec[T]) Species() *Species[T] {
	return v.s
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	if v.s == nil {
		return 0
	}
	return v.s.lanes
}

// Lane returns lane i.
func (v Vec[T]) Lane(i int) T {
	checkLane("Lane", i, v.NumLanes())
	return v.lanes[i]
}

// WithLane returns a copy of v with lane i replaced by x.
func (v Vec[T]) WithLane(i int, x T) Vec[T] {
	checkLane("WithLane", i, v.NumLanes())
	v.lanes[i] = x
	return v
}

// ToSlice returns a freshly allocated copy of the lanes.
func (v Vec[T]) ToSlice() []T {
	out := make([]T, v.NumLanes())
	copy(out, v.lanes[:])
	return out
}

// IntoSlice writes the lanes of v to dst[offset:offset+NumLanes()].
func (v Vec[T]) IntoSlice(dst []T, offset int) {
	n := v.NumLanes()
	checkRange("IntoSlice", offset, n, len(dst))
	copy(dst[offset:offset+n], v.lanes[:n])
}

func (v Vec[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range v.NumLanes() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, v.lanes[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

// Mask is a per-lane predicate tied to a species.
//
// Bit i of bits is lane i; bits above the lane count are always zero.
type Mask[T Floats] struct {
	s    *Species[T]
	bits uint16
}

// MaskAll returns a mask with every lane set to value.
func MaskAll[T Floats](s *Species[T], value bool) Mask[T] {
	if !value {
		return Mask[T]{s: s}
	}
	return Mask[T]{s: s, bits: s.laneBits()}
}

// MaskFromBools builds a mask from src[offset:offset+s.NumLanes()].
func MaskFromBools[T Floats](s *Species[T], src []bool, offset int) Mask[T] {
	n := s.NumLanes()
	checkRange("MaskFromBools", offset, n, len(src))
	m := Mask[T]{s: s}
	for i, b := range src[offset : offset+n] {
		if b {
			m.bits |= 1 << i
		}
	}
	return m
}

// MaskFromValues builds a mask from exactly s.NumLanes() booleans.
func MaskFromValues[T Floats](s *Species[T], values ...bool) Mask[T] {
	if len(values) != s.NumLanes() {
		violate("MaskFromValues", ErrOutOfBounds, "got %d values for %d lanes", len(values), s.NumLanes())
	}
	return MaskFromBools(s, values, 0)
}

// Species returns the species of m.
func (m Mask[T]) Species() *Species[T] {
	return m.s
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	if m.s == nil {
		return 0
	}
	return m.s.lanes
}

// GetBit returns whether lane i is set.
func (m Mask[T]) GetBit(i int) bool {
	checkLane("GetBit", i, m.NumLanes())
	return m.bits&(1<<i) != 0
}

// AllTrue returns true if all lanes are set.
func (m Mask[T]) AllTrue() bool {
	return m.s != nil && m.bits == m.s.laneBits()
}

// AnyTrue returns true if any lane is set.
func (m Mask[T]) AnyTrue() bool {
	return m.bits != 0
}

// CountTrue returns the number of set lanes.
func (m Mask[T]) CountTrue() int {
	return bits.OnesCount16(m.bits)
}

// ToBools returns the lanes of m as a freshly allocated slice.
func (m Mask[T]) ToBools() []bool {
	out := make([]bool, m.NumLanes())
	for i := range out {
		out[i] = m.bits&(1<<i) != 0
	}
	return out
}

// IntoBools writes the lanes of m to dst[offset:offset+NumLanes()].
func (m Mask[T]) IntoBools(dst []bool, offset int) {
	n := m.NumLanes()
	checkRange("Mask.IntoBools", offset, n, len(dst))
	for i := range n {
		dst[offset+i] = m.bits&(1<<i) != 0
	}
}

// And returns the lanes set in both masks.
func (m Mask[T]) And(o Mask[T]) Mask[T] {
	checkMaskSpecies("Mask.And", m, o)
	return Mask[T]{s: m.s, bits: m.bits & o.bits}
}

// Or returns the lanes set in either mask.
func (m Mask[T]) Or(o Mask[T]) Mask[T] {
	checkMaskSpecies("Mask.Or", m, o)
	return Mask[T]{s: m.s, bits: m.bits | o.bits}
}

// Xor returns the lanes set in exactly one of the masks.
func (m Mask[T]) Xor(o Mask[T]) Mask[T] {
	checkMaskSpecies("Mask.Xor", m, o)
	return Mask[T]{s: m.s, bits: m.bits ^ o.bits}
}

// AndNot returns the lanes set in m but not in o.
func (m Mask[T]) AndNot(o Mask[T]) Mask[T] {
	checkMaskSpecies("Mask.AndNot", m, o)
	return Mask[T]{s: m.s, bits: m.bits &^ o.bits}
}

// Not inverts every lane.
func (m Mask[T]) Not() Mask[T] {
	if m.s == nil {
		violate("Mask.Not", ErrSpeciesMismatch, "zero Mask")
	}
	return Mask[T]{s: m.s, bits: ^m.bits & m.s.laneBits()}
}

func (m Mask[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range m.NumLanes() {
		if m.bits&(1<<i) != 0 {
			sb.WriteByte('T')
		} else {
			sb.WriteByte('.')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (m Mask[T]) isSet(i int) bool {
	return m.bits&(1<<i) != 0
}
