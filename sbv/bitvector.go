// Package sbv implements the succinct bit-vector family of spec.md §4.1:
// a fixed-length bit sequence built append-then-freeze, exposing access,
// rank0/1, select0/1, next0/1, prev1 and the batched selectRanges0/1
// primitive in (amortised) O(1)/O(log n) time.
//
// Five interchangeable variants plus two trivial ones back the same
// interface (spec.md §9 "tagged-variant dispatch... is preferred over
// dynamic dispatch for cache locality"): BitVector is a single tagged
// struct, not an interface with N implementations, and every query method
// is a switch on the Kind tag.
package sbv

import (
	"kdwtree/errutil"

	"github.com/bits-and-blooms/bitset"
)

// Kind tags which physical representation a BitVector uses.
type Kind int

const (
	KindAll0 Kind = iota
	KindAll1
	KindDense
	KindSparse0
	KindSparse1
	KindBiased
	KindRRR16
)

func (k Kind) String() string {
	switch k {
	case KindAll0:
		return "All0"
	case KindAll1:
		return "All1"
	case KindDense:
		return "Dense"
	case KindSparse0:
		return "Sparse0"
	case KindSparse1:
		return "Sparse1"
	case KindBiased:
		return "Biased"
	case KindRRR16:
		return "RRR16"
	default:
		return "?"
	}
}

// BitVector is the frozen, read-only succinct bit-vector. Zero value is not
// usable; construct via a Builder.
type BitVector struct {
	kind   Kind
	length uint64
	ones   uint64

	dense   *denseBV
	sparse  *sparseBV // Sparse0 and Sparse1
	biased  *biasedBV
	rrr     *rrrBV
}

// Len returns the bit-vector's fixed length.
func (bv *BitVector) Len() uint64 { return bv.length }

// Kind returns the physical representation selected for this vector.
func (bv *BitVector) Kind() Kind { return bv.kind }

// Ones returns the total number of 1-bits.
func (bv *BitVector) Ones() uint64 { return bv.ones }

func (bv *BitVector) checkPos(i uint64) {
	errutil.BugOn(i >= bv.length, "sbv: position %d out of bounds (length %d)", i, bv.length)
}

func (bv *BitVector) checkRankPos(i uint64) {
	errutil.BugOn(i > bv.length, "sbv: rank position %d out of bounds (length %d)", i, bv.length)
}

// Access returns the bit at position i.
func (bv *BitVector) Access(i uint64) bool {
	bv.checkPos(i)
	switch bv.kind {
	case KindAll0:
		return false
	case KindAll1:
		return true
	case KindDense:
		return bv.dense.access(i)
	case KindSparse0, KindSparse1:
		return bv.sparse.access(i)
	case KindBiased:
		return bv.biased.access(i)
	case KindRRR16:
		return bv.rrr.access(i)
	}
	panic("sbv: unreachable")
}

// Rank1 counts 1-bits in [0, i).
func (bv *BitVector) Rank1(i uint64) uint64 {
	bv.checkRankPos(i)
	switch bv.kind {
	case KindAll0:
		return 0
	case KindAll1:
		return i
	case KindDense:
		return bv.dense.rank1(i)
	case KindSparse0, KindSparse1:
		return bv.sparse.rank1(i)
	case KindBiased:
		return bv.biased.rank1(i)
	case KindRRR16:
		return bv.rrr.rank1(i)
	}
	panic("sbv: unreachable")
}

// Rank0 counts 0-bits in [0, i).
func (bv *BitVector) Rank0(i uint64) uint64 {
	bv.checkRankPos(i)
	return i - bv.Rank1(i)
}

// Select1 returns the position of the (i+1)-th 1-bit (0-indexed i).
func (bv *BitVector) Select1(i uint64) uint64 {
	errutil.BugOn(i >= bv.ones, "sbv: Select1(%d) out of range (ones=%d)", i, bv.ones)
	switch bv.kind {
	case KindAll1:
		return i
	case KindDense:
		return bv.dense.select1(i)
	case KindSparse0, KindSparse1:
		return bv.sparse.select1(i)
	case KindBiased:
		return bv.biased.select1(i)
	case KindRRR16:
		return bv.rrr.select1(i)
	}
	panic("sbv: unreachable")
}

// Select0 returns the position of the (i+1)-th 0-bit.
func (bv *BitVector) Select0(i uint64) uint64 {
	zeros := bv.length - bv.ones
	errutil.BugOn(i >= zeros, "sbv: Select0(%d) out of range (zeros=%d)", i, zeros)
	switch bv.kind {
	case KindAll0:
		return i
	case KindDense:
		return bv.dense.select0(i)
	case KindSparse0, KindSparse1:
		return bv.sparse.select0(i)
	case KindBiased:
		return bv.biased.select0(i)
	case KindRRR16:
		return bv.rrr.select0(i)
	}
	panic("sbv: unreachable")
}

// Next1 returns the smallest position >= i with a 1-bit, or length if none.
func (bv *BitVector) Next1(i uint64) uint64 {
	errutil.BugOn(i > bv.length, "sbv: Next1 position out of bounds")
	r := bv.Rank1(i)
	if r >= bv.ones {
		return bv.length
	}
	return bv.Select1(r)
}

// Next0 returns the smallest position >= i with a 0-bit, or length if none.
func (bv *BitVector) Next0(i uint64) uint64 {
	errutil.BugOn(i > bv.length, "sbv: Next0 position out of bounds")
	r := bv.Rank0(i)
	zeros := bv.length - bv.ones
	if r >= zeros {
		return bv.length
	}
	return bv.Select0(r)
}

// Prev1 returns the largest position < i with a 1-bit and ok=true, or
// (0, false) if there is none.
func (bv *BitVector) Prev1(i uint64) (pos uint64, ok bool) {
	errutil.BugOn(i > bv.length, "sbv: Prev1 position out of bounds")
	if i == 0 {
		return 0, false
	}
	r := bv.Rank1(i)
	if r == 0 {
		return 0, false
	}
	return bv.Select1(r - 1), true
}

// ByteSize reports the resident size of the chosen representation.
func (bv *BitVector) ByteSize() int {
	switch bv.kind {
	case KindAll0, KindAll1:
		return 16
	case KindDense:
		return bv.dense.byteSize()
	case KindSparse0, KindSparse1:
		return bv.sparse.byteSize()
	case KindBiased:
		return bv.biased.byteSize()
	case KindRRR16:
		return bv.rrr.byteSize()
	}
	return 0
}

// Builder accumulates bits append-then-freeze (spec.md §3 "Lifecycle").
// Appending past Build, or Building twice, are usage errors.
type Builder struct {
	staging *bitset.BitSet
	length  uint64
	built   bool
}

// NewBuilder allocates a Builder with the given capacity hint in bits
// (spec.md §6 "initial scratch capacity").
func NewBuilder(capacityHint uint) *Builder {
	return &Builder{staging: bitset.New(capacityHint)}
}

// Append adds one bit to the sequence being built.
func (b *Builder) Append(bit bool) {
	errutil.BugOn(b.built, "sbv: Append called after Build")
	if bit {
		b.staging.Set(uint(b.length))
	}
	b.length++
}

// Length returns the number of bits appended so far.
func (b *Builder) Length() uint64 { return b.length }

// Build freezes the staged bits into the smallest-estimated variant and
// returns the read-only BitVector.
func (b *Builder) Build() *BitVector {
	errutil.BugOn(b.built, "sbv: Build called twice")
	b.built = true
	return buildFromBits(b.staging, b.length)
}

// buildFromBits scans the staged bit sequence once (spec.md §4.1 "a size
// estimator scans the planned bit sequence once") and constructs the
// cheapest representation.
func buildFromBits(staging *bitset.BitSet, length uint64) *BitVector {
	if length == 0 {
		return &BitVector{kind: KindAll0, length: 0}
	}

	ones := uint64(0)
	transitions := uint64(0)
	prev := false
	for i := uint64(0); i < length; i++ {
		bit := staging.Test(uint(i))
		if bit {
			ones++
		}
		if i > 0 && bit != prev {
			transitions++
		}
		prev = bit
	}
	zeros := length - ones

	if ones == 0 {
		return &BitVector{kind: KindAll0, length: length, ones: 0}
	}
	if zeros == 0 {
		return &BitVector{kind: KindAll1, length: length, ones: ones}
	}

	kind, _ := estimateBest(length, ones, zeros, transitions)

	bv := &BitVector{kind: kind, length: length, ones: ones}
	switch kind {
	case KindDense:
		bv.dense = buildDense(staging, length)
	case KindSparse0:
		bv.sparse = buildSparse(staging, length, false)
	case KindSparse1:
		bv.sparse = buildSparse(staging, length, true)
	case KindBiased:
		bv.biased = buildBiased(staging, length)
	case KindRRR16:
		bv.rrr = buildRRR(staging, length)
	}
	return bv
}

// bitsOf returns the number of bits needed to represent x (0 for x==0).
func bitsOf(x uint64) uint {
	n := uint(0)
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

// estimateMonotoneBits approximates the size, in bits, of an Elias-Fano
// monotone.Sequence holding cnt strictly increasing values drawn from
// [0, universe).
func estimateMonotoneBits(cnt, universe uint64) uint64 {
	if cnt == 0 {
		return 0
	}
	bL := uint(0)
	if b := bitsOf(universe); b > bitsOf(cnt) {
		bL = b - bitsOf(cnt)
	}
	return cnt*uint64(bL) + cnt*2 // low bits + ~2 bits/element unary overhead
}

// estimateBest returns the cheapest non-trivial variant for a bit-vector of
// the given shape, and its estimated bit size (spec.md §4.1 "a size
// estimator... picks the smallest representation").
func estimateBest(length, ones, zeros, transitions uint64) (Kind, uint64) {
	best := KindDense
	bestBits := length + length/8 // rsdic's broadword metadata overhead, rule of thumb

	if s := estimateMonotoneBits(zeros, length); s < bestBits {
		best, bestBits = KindSparse0, s
	}
	if s := estimateMonotoneBits(ones, length); s < bestBits {
		best, bestBits = KindSparse1, s
	}
	runs := transitions + 1
	if s := estimateMonotoneBits(runs, length) * 2; s < bestBits { // positions + running ranks
		best, bestBits = KindBiased, s
	}
	numBlocks := (length + 15) / 16
	rrrBits := numBlocks*(5+16) + estimateMonotoneBits(numBlocks, length)
	if rrrBits < bestBits {
		best, bestBits = KindRRR16, rrrBits
	}
	return best, bestBits
}
