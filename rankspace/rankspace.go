// Package rankspace implements the rank-space dictionaries of spec.md §4.8:
// an order-preserving map from the distinct double values seen on one
// dimension to a dense integer rank in [0, denserankMax], used to keep the
// wavelet matrix's alphabet as narrow as the input's true cardinality
// instead of the full 64-bit encoded range.
package rankspace

import (
	"sort"

	"kdwtree/errutil"
	"kdwtree/fwa"
	"kdwtree/monotone"
)

// Dict maps real values (already order-preserving uint64 encoded, see
// package floatcode) to dense ranks and back. Two backing encodings are
// supported, chosen by Build from the distinct-value count: a plain sorted
// PackedArray for small/dense alphabets, or an Elias-Fano monotone.Sequence
// when the distinct values are sparse relative to their span.
type Dict struct {
	sorted  *fwa.PackedArray[uint64]
	seq     *monotone.Sequence
	useSeq  bool
	n       uint64
}

// Build constructs a Dict over the distinct encoded values in values
// (duplicates allowed, need not be sorted).
func Build(values []uint64) *Dict {
	errutil.BugOn(len(values) == 0, "rankspace: Build called with no values")

	uniq := append([]uint64(nil), values...)
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	dedup := uniq[:0]
	for i, v := range uniq {
		if i == 0 || v != dedup[len(dedup)-1] {
			dedup = append(dedup, v)
		}
	}

	n := uint64(len(dedup))
	span := uint64(0)
	if n > 0 {
		span = dedup[n-1] - dedup[0]
	}

	// Elias-Fano pays off once the span is much larger than a dense
	// sorted array's per-element width would cost; otherwise keep the
	// flat array for its simpler, branch-free binary search.
	useSeq := span > 4*n

	d := &Dict{n: n, useSeq: useSeq}
	if useSeq {
		d.seq = monotone.Build(dedup, true)
	} else {
		width := bitsOf(dedup[n-1])
		arr := fwa.NewPackedArray[uint64](n, width)
		for i, v := range dedup {
			arr.Set(uint64(i), v)
		}
		d.sorted = arr
	}
	return d
}

func bitsOf(x uint64) uint {
	n := uint(1)
	for x >= 1<<n {
		n++
	}
	return n
}

// DenserankMax returns the largest valid dense rank (Len()-1).
func (d *Dict) DenserankMax() uint64 {
	if d.n == 0 {
		return 0
	}
	return d.n - 1
}

// Len returns the number of distinct values held.
func (d *Dict) Len() uint64 { return d.n }

// Real2Denserank finds the dense rank of v if present, or the rank it would
// occupy if inserted (insertion-point semantics, spec.md §4.8).
func (d *Dict) Real2Denserank(v uint64) (rank uint64, exact bool) {
	if d.useSeq {
		rank = d.seq.Ranklt(v)
		exact = rank < d.n && d.seq.Access(rank) == v
		return rank, exact
	}
	lo, hi := uint64(0), d.n
	for lo < hi {
		mid := lo + (hi-lo)/2
		if d.sorted.Get(mid) < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	exact = lo < d.n && d.sorted.Get(lo) == v
	return lo, exact
}

// Denserank2Real returns the real (encoded) value at a dense rank.
func (d *Dict) Denserank2Real(rank uint64) uint64 {
	errutil.BugOn(rank >= d.n, "rankspace: Denserank2Real rank out of bounds")
	if d.useSeq {
		return d.seq.Access(rank)
	}
	return d.sorted.Get(rank)
}

// ByteSize reports the resident size of the dictionary.
func (d *Dict) ByteSize() int {
	if d.useSeq {
		return d.seq.ByteSize()
	}
	return d.sorted.ByteSize()
}
