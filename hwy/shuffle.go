package hwy

import (
	"fmt"
	"strings"
)

// Shuffle is a per-lane routing table tied to a species.
//
// An index in [0, NumLanes()) selects a source lane. A source index outside
// that range is partially wrapped at construction: it is reduced modulo the
// lane count and stored minus the lane count, so it lies in
// [-NumLanes(), 0). Such a lane is "exceptional": Rearrange rejects it,
// RearrangeZeroing zero-fills it and Rearrange2 reads it from the second
// vector.
type Shuffle[T Floats] struct {
	s   *Species[T]
	idx [maxLanes]int
}

func partialWrap(x int64, n int) int {
	if x >= 0 && x < int64(n) {
		return int(x)
	}
	w := int(x % int64(n))
	if w < 0 {
		w += n
	}
	return w - n
}

// NewShuffle builds a shuffle from exactly s.NumLanes() source indices.
func NewShuffle[T Floats](s *Species[T], indices ...int) Shuffle[T] {
	if len(indices) != s.NumLanes() {
		violate("NewShuffle", ErrOutOfBounds, "got %d indices for %d lanes", len(indices), s.NumLanes())
	}
	return ShuffleFromSlice(s, indices, 0)
}

// ShuffleFromSlice builds a shuffle from src[offset:offset+s.NumLanes()].
func ShuffleFromSlice[T Floats](s *Species[T], src []int, offset int) Shuffle[T] {
	n := s.NumLanes()
	checkRange("ShuffleFromSlice", offset, n, len(src))
	sh := Shuffle[T]{s: s}
	for i, x := range src[offset : offset+n] {
		sh.idx[i] = partialWrap(int64(x), n)
	}
	return sh
}

// ShuffleFromFunc builds a shuffle whose lane i routes from f(i).
func ShuffleFromFunc[T Floats](s *Species[T], f func(lane int) int) Shuffle[T] {
	if s == nil {
		violate("ShuffleFromFunc", ErrSpeciesMismatch, "nil species")
	}
	sh := Shuffle[T]{s: s}
	for i := range s.lanes {
		sh.idx[i] = partialWrap(int64(f(i)), s.lanes)
	}
	return sh
}

// ShuffleIota returns the shuffle start, start+step, start+2*step, ...
func ShuffleIota[T Floats](s *Species[T], start, step int) Shuffle[T] {
	return ShuffleFromFunc(s, func(i int) int { return start + i*step })
}

// Species returns the species of sh.
func (sh Shuffle[T]) Species() *Species[T] {
	return sh.s
}

// NumLanes returns the number of lanes in this shuffle.
func (sh Shuffle[T]) NumLanes() int {
	return sh.s.NumLanes()
}

// Index returns the normalised source index of lane i; it is negative for
// an exceptional lane.
func (sh Shuffle[T]) Index(i int) int {
	checkLane("Shuffle.Index", i, sh.NumLanes())
	return sh.idx[i]
}

// IsException reports whether lane i was built from an out-of-range index.
func (sh Shuffle[T]) IsException(i int) bool {
	return sh.Index(i) < 0
}

// Valid reports whether every lane holds an in-range index.
func (sh Shuffle[T]) Valid() bool {
	for i := range sh.NumLanes() {
		if sh.idx[i] < 0 {
			return false
		}
	}
	return true
}

// Wrap returns sh with every exceptional lane reduced modulo the lane count.
func (sh Shuffle[T]) Wrap() Shuffle[T] {
	n := sh.NumLanes()
	for i := range n {
		if sh.idx[i] < 0 {
			sh.idx[i] += n
		}
	}
	return sh
}

// ToSlice returns the normalised indices.
func (sh Shuffle[T]) ToSlice() []int {
	out := make([]int, sh.NumLanes())
	copy(out, sh.idx[:])
	return out
}

// ToVector returns the normalised indices as lane values.
func (sh Shuffle[T]) ToVector() Vec[T] {
	v := Vec[T]{s: sh.s}
	for i := range sh.NumLanes() {
		v.lanes[i] = T(sh.idx[i])
	}
	return v
}

func (sh Shuffle[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range sh.NumLanes() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, sh.idx[i])
	}
	sb.WriteByte(']')
	return sb.String()
}

// Rearrange returns the vector whose lane i is v[sh.Index(i)]. An
// exceptional lane is an out-of-bounds violation.
func Rearrange[T Floats](v Vec[T], sh Shuffle[T]) Vec[T] {
	checkSpecies("Rearrange", v.s, sh.s)
	r := Vec[T]{s: v.s}
	for i := range v.s.lanes {
		j := sh.idx[i]
		if j < 0 {
			violate("Rearrange", ErrOutOfBounds, "lane %d routes from index %d", i, j+v.s.lanes)
		}
		r.lanes[i] = v.lanes[j]
	}
	return r
}

// RearrangeMasked is Rearrange where each lane unset in m is zero. Only set
// lanes must be in range.
func RearrangeMasked[T Floats](v Vec[T], sh Shuffle[T], m Mask[T]) Vec[T] {
	checkSpecies("RearrangeMasked", v.s, sh.s)
	checkSpecies("RearrangeMasked", v.s, m.s)
	r := Vec[T]{s: v.s}
	for i := range v.s.lanes {
		if !m.isSet(i) {
			continue
		}
		j := sh.idx[i]
		if j < 0 {
			violate("RearrangeMasked", ErrOutOfBounds, "lane %d routes from index %d", i, j+v.s.lanes)
		}
		r.lanes[i] = v.lanes[j]
	}
	return r
}

// RearrangeZeroing is Rearrange where exceptional lanes are zero.
func RearrangeZeroing[T Floats](v Vec[T], sh Shuffle[T]) Vec[T] {
	checkSpecies("RearrangeZeroing", v.s, sh.s)
	r := Vec[T]{s: v.s}
	for i := range v.s.lanes {
		if j := sh.idx[i]; j >= 0 {
			r.lanes[i] = v.lanes[j]
		}
	}
	return r
}

// Rearrange2 routes lanes from two vectors: an in-range lane reads v and an
// exceptional lane e reads w[e+NumLanes()]. With indices built from
// [0, 2*NumLanes()), index k selects lane k of the concatenation v|w.
func Rearrange2[T Floats](v Vec[T], sh Shuffle[T], w Vec[T]) Vec[T] {
	checkSpecies("Rearrange2", v.s, sh.s)
	checkSpecies("Rearrange2", v.s, w.s)
	n := v.s.lanes
	r := Vec[T]{s: v.s}
	for i := range n {
		if j := sh.idx[i]; j >= 0 {
			r.lanes[i] = v.lanes[j]
		} else {
			r.lanes[i] = w.lanes[j+n]
		}
	}
	return r
}

// toShuffle converts lane values to source indices, truncating toward zero.
func toShuffle[T Floats](op string, v Vec[T]) Shuffle[T] {
	if v.s == nil {
		violate(op, ErrSpeciesMismatch, "zero value operand")
	}
	sh := Shuffle[T]{s: v.s}
	for i := range v.s.lanes {
		sh.idx[i] = partialWrap(TruncateToInt64(float64(v.lanes[i])), v.s.lanes)
	}
	return sh
}

// SelectFrom uses the lanes of idx, truncated to integers, as a shuffle
// over data: lane i of the result is data[int(idx[i])].
func SelectFrom[T Floats](idx, data Vec[T]) Vec[T] {
	return Rearrange(data, toShuffle("SelectFrom", idx))
}

// SelectFromMasked is SelectFrom where each lane unset in m is zero.
func SelectFromMasked[T Floats](idx, data Vec[T], m Mask[T]) Vec[T] {
	return RearrangeMasked(data, toShuffle("SelectFromMasked", idx), m)
}

func checkPart(op string, part int) {
	if part != 0 && part != 1 {
		violate(op, ErrOutOfBounds, "part %d", part)
	}
}

// ZipShuffle returns the two-vector shuffle producing half part of the
// interleaving a0, b0, a1, b1, ... of two vectors. Use it with Rearrange2.
func ZipShuffle[T Floats](s *Species[T], part int) Shuffle[T] {
	checkPart("ZipShuffle", part)
	n := s.NumLanes()
	return ShuffleFromFunc(s, func(i int) int {
		j := part*n + i
		if j%2 == 0 {
			return j / 2
		}
		return n + j/2
	})
}

// UnzipShuffle returns the two-vector shuffle that inverts ZipShuffle: part
// 0 collects the even lanes of the concatenation v|w, part 1 the odd ones.
func UnzipShuffle[T Floats](s *Species[T], part int) Shuffle[T] {
	checkPart("UnzipShuffle", part)
	return ShuffleFromFunc(s, func(i int) int { return 2*i + part })
}

// Zip interleaves a and b and returns half part of the result.
// [a0,a1,a2,a3], [b0,b1,b2,b3], 0 -> [a0,b0,a1,b1]
func Zip[T Floats](a, b Vec[T], part int) Vec[T] {
	return Rearrange2(a, ZipShuffle(a.s, part), b)
}

// Unzip inverts Zip: Unzip(Zip(a, b, 0), Zip(a, b, 1), p) is a for p = 0
// and b for p = 1.
func Unzip[T Floats](a, b Vec[T], part int) Vec[T] {
	return Rearrange2(a, UnzipShuffle(a.s, part), b)
}

// InterleaveLower interleaves the lower halves of two vectors.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a0,b0,a1,b1]
func InterleaveLower[T Floats](a, b Vec[T]) Vec[T] {
	return Zip(a, b, 0)
}

// InterleaveUpper interleaves the upper halves of two vectors.
// [a0,a1,a2,a3], [b0,b1,b2,b3] -> [a2,b2,a3,b3]
func InterleaveUpper[T Floats](a, b Vec[T]) Vec[T] {
	return Zip(a, b, 1)
}

// Reverse reverses the order of lanes in the vector.
func Reverse[T Floats](v Vec[T]) Vec[T] {
	n := v.NumLanes()
	return Rearrange(v, ShuffleIota(v.s, n-1, -1))
}

// BroadcastLane broadcasts a single lane to all lanes in the vector.
func BroadcastLane[T Floats](v Vec[T], lane int) Vec[T] {
	checkLane("BroadcastLane", lane, v.NumLanes())
	return Rearrange(v, ShuffleIota(v.s, lane, 0))
}
