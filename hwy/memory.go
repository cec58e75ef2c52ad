package hwy

// FromSlice loads s.NumLanes() contiguous elements of src starting at offset.
func FromSlice[T Floats](s *Species[T], src []T, offset int) Vec[T] {
	n := s.NumLanes()
	checkRange("FromSlice", offset, n, len(src))
	v := Vec[T]{s: s}
	copy(v.lanes[:n], src[offset:offset+n])
	return v
}

// FromSliceMasked loads the lanes set in m from src[offset+i]. Unset lanes
// are zero and their positions are not bounds checked.
func FromSliceMasked[T Floats](s *Species[T], src []T, offset int, m Mask[T]) Vec[T] {
	checkSpecies("FromSliceMasked", s, m.s)
	v := Vec[T]{s: s}
	for i := range s.lanes {
		if !m.isSet(i) {
			continue
		}
		checkLane("FromSliceMasked", offset+i, len(src))
		v.lanes[i] = src[offset+i]
	}
	return v
}

// IntoSliceMasked stores the lanes set in m to dst[offset+i], leaving the
// other elements of dst untouched.
func (v Vec[T]) IntoSliceMasked(dst []T, offset int, m Mask[T]) {
	checkSpecies("IntoSliceMasked", v.s, m.s)
	for i := range v.s.lanes {
		if !m.isSet(i) {
			continue
		}
		checkLane("IntoSliceMasked", offset+i, len(dst))
		dst[offset+i] = v.lanes[i]
	}
}

// FromValues builds a vector from exactly s.NumLanes() values.
func FromValues[T Floats](s *Species[T], values ...T) Vec[T] {
	if len(values) != s.NumLanes() {
		violate("FromValues", ErrOutOfBounds, "got %d values for %d lanes", len(values), s.NumLanes())
	}
	return FromSlice(s, values, 0)
}

// Broadcast returns a vector with every lane set to value.
func Broadcast[T Floats](s *Species[T], value T) Vec[T] {
	if s == nil {
		violate("Broadcast", ErrSpeciesMismatch, "nil species")
	}
	v := Vec[T]{s: s}
	for i := range s.lanes {
		v.lanes[i] = value
	}
	return v
}

// Zero returns a vector of positive zeros.
func Zero[T Floats](s *Species[T]) Vec[T] {
	if s == nil {
		violate("Zero", ErrSpeciesMismatch, "nil species")
	}
	return Vec[T]{s: s}
}

// Iota returns a vector with lane i set to i.
func Iota[T Floats](s *Species[T]) Vec[T] {
	return AddIndex(Zero(s), 1)
}

// AddIndex returns v with i*scale added to lane i.
func AddIndex[T Floats](v Vec[T], scale int) Vec[T] {
	if v.s == nil {
		violate("AddIndex", ErrSpeciesMismatch, "zero value operand")
	}
	r := v
	for i := range v.s.lanes {
		r.lanes[i] = v.lanes[i] + T(i*scale)
	}
	return r
}

// Blend returns b's lane where m is set and a's lane elsewhere.
func Blend[T Floats](a, b Vec[T], m Mask[T]) Vec[T] {
	checkSpecies("Blend", a.s, b.s)
	checkSpecies("Blend", a.s, m.s)
	r := a
	for i := range a.s.lanes {
		if m.isSet(i) {
			r.lanes[i] = b.lanes[i]
		}
	}
	return r
}

// IfThenElse selects yes where mask is set and no elsewhere.
func IfThenElse[T Floats](mask Mask[T], yes, no Vec[T]) Vec[T] {
	return Blend(no, yes, mask)
}

// IfThenElseZero selects v where mask is set and zero elsewhere.
func IfThenElseZero[T Floats](mask Mask[T], v Vec[T]) Vec[T] {
	return Blend(Zero(v.s), v, mask)
}
