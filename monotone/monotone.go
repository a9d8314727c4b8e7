// Package monotone implements the Elias-Fano-flavoured compressed storage
// of a sorted non-decreasing integer sequence described in spec.md §4.2:
// O(1) access, contains, rank-less-than, and find, in space close to
// m*(2 + log2((v_{m-1}-v_0)/m)) bits.
//
// The high-part unary-gap stream is itself a succinct bit-vector with rank
// and select support; rather than reimplement rank9-style block counters
// here (spec.md §4.1's "mandatory floor"), the high part is built directly
// on github.com/hillbig/rsdic, exactly as the teacher's RangeLocator used
// rsdic.RSDic as its bitvector (rloc.go). sbv's own Dense variant is a
// thin wrapper over the same library; monotone depends on rsdic directly
// instead of on package sbv to avoid a sbv<->monotone import cycle (sbv's
// Sparse/Biased variants are themselves built on monotone.Sequence).
package monotone

import (
	"kdwtree/errutil"
	"kdwtree/fwa"

	"github.com/hillbig/rsdic"
)

// Sequence stores a non-decreasing sequence v_0 <= ... <= v_{m-1} of
// non-negative integers.
type Sequence struct {
	m      uint64
	v0     uint64
	vLast  uint64
	bL     uint
	low    *fwa.PackedArray[uint64]
	high   *rsdic.RSDic // unary-gap stream, length m + floor((v_last-v0)/2^bL) + 1 (one trailing 0-bit)
	strict bool         // true if built from a strictly increasing sequence
}

// bitsOf returns the number of bits needed to represent x (bits.Len64-style,
// 0 for x==0).
func bitsOf(x uint64) uint {
	n := uint(0)
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

// Build constructs a Sequence over a non-decreasing slice of values. strict
// records whether the caller knows values are strictly increasing; it is
// stored but does not change the result of any query (Find returns the
// first index of a repeated value either way).
func Build(values []uint64, strict bool) *Sequence {
	m := uint64(len(values))
	if m == 0 {
		return &Sequence{m: 0, strict: strict}
	}
	for i := 1; i < len(values); i++ {
		errutil.BugOn(values[i] < values[i-1], "monotone: values must be non-decreasing")
	}

	v0 := values[0]
	vLast := values[m-1]
	span := vLast - v0

	bL := uint(0)
	if bits := bitsOf(span); bits > bitsOf(m-1) {
		bL = bits - bitsOf(m-1)
	}

	low := fwa.NewPackedArray[uint64](m, bL)
	maxHigh := uint64(0)
	if bL < 64 {
		maxHigh = span >> bL
	}
	highLen := m + maxHigh + 1
	high := rsdic.New()

	prevHigh := uint64(0)
	for i, v := range values {
		delta := v - v0
		var hi, lo uint64
		if bL >= 64 {
			hi = 0
			lo = delta
		} else {
			hi = delta >> bL
			lo = delta & (uint64(1)<<bL - 1)
		}
		low.Set(uint64(i), lo)

		errutil.BugOn(hi < prevHigh, "monotone: high part must be non-decreasing")
		for g := prevHigh; g < hi; g++ {
			high.PushBack(false)
		}
		high.PushBack(true)
		prevHigh = hi
	}
	for uint64(high.Num()) < highLen {
		high.PushBack(false)
	}

	return &Sequence{
		m:      m,
		v0:     v0,
		vLast:  vLast,
		bL:     bL,
		low:    low,
		high:   high,
		strict: strict,
	}
}

func (s *Sequence) Len() uint64 { return s.m }

// Access returns v_i.
func (s *Sequence) Access(i uint64) uint64 {
	errutil.BugOn(i >= s.m, "monotone: Access index out of bounds")
	selPos := s.high.Select(i+1, true)
	hi := selPos - i
	lo := s.low.Get(i)
	return s.v0 + hi<<s.bL + lo
}

// Contains reports whether v is present in the sequence.
func (s *Sequence) Contains(v uint64) bool {
	_, ok := s.findIndex(v)
	return ok
}

// Find returns the index of v if present (>= 0), or the bitwise complement
// of the insertion point if absent (spec.md §4.2).
func (s *Sequence) Find(v uint64) int64 {
	idx, ok := s.findIndex(v)
	if ok {
		return int64(idx)
	}
	return ^int64(idx)
}

// findIndex returns (index, true) if v is present, otherwise (insertion
// point, false): the insertion point is the first index i with v_i >= v.
func (s *Sequence) findIndex(v uint64) (uint64, bool) {
	if s.m == 0 || v > s.vLast || v < s.v0 {
		return s.ranklt(v), false
	}
	lo, hi := uint64(0), s.m
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s.Access(mid) < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < s.m && s.Access(lo) == v {
		return lo, true
	}
	return lo, false
}

// Ranklt returns the number of stored elements strictly less than v.
func (s *Sequence) Ranklt(v uint64) uint64 {
	return s.ranklt(v)
}

func (s *Sequence) ranklt(v uint64) uint64 {
	if s.m == 0 {
		return 0
	}
	lo, hi := uint64(0), s.m
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s.Access(mid) < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// ByteSize reports the resident size of the low/high backing storage.
func (s *Sequence) ByteSize() int {
	if s == nil {
		return 0
	}
	size := s.low.ByteSize()
	if s.high != nil {
		size += s.high.AllocSize()
	}
	return size
}
