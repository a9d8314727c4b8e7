// Package zorder implements spec.md §4.3: the Z-order (Morton) comparator
// over k-dimensional dense-rank tuples, and an indirect quicksort that
// orders a permutation array by that comparator without moving the points
// themselves.
package zorder

import (
	"math/bits"

	"kdwtree/errutil"
)

// Less reports whether point a precedes point b in Z-order (shuffle
// comparator): the two tuples are compared by the most significant bit at
// which they differ across all dimensions, per Chan's shuffle trick —
// coordinates are compared dimension-by-dimension, but the tie-break picks
// the dimension whose differing value has the most significant differing
// bit, rather than lexicographic comparison of the coordinates directly.
//
// Dimensions are scanned from the highest index down to 0: in the
// bit-interleaved order a Morton code represents, dimension d's bit sits
// above dimension d-1's bit at the same exponent, so when two dimensions'
// XORs tie on highest-set-bit position, the higher-indexed dimension is
// the more significant one. Scanning high-to-low and only replacing the
// current winner on a strict improvement makes that dimension win the tie
// by being found first.
func Less(a, b []uint64) bool {
	k := len(a)
	errutil.BugOn(len(b) != k, "zorder: points of differing dimension compared")

	msdDim := -1
	var msdXor uint64
	for d := k - 1; d >= 0; d-- {
		x := a[d] ^ b[d]
		if x == 0 {
			continue
		}
		if msdDim == -1 || moreSignificant(x, msdXor) {
			msdDim = d
			msdXor = x
		}
	}
	if msdDim == -1 {
		return false // equal
	}
	return a[msdDim] < b[msdDim]
}

// moreSignificant reports whether x's highest set bit is higher than y's.
func moreSignificant(x, y uint64) bool {
	return bits.Len64(x) > bits.Len64(y)
}

// Sort orders idx (initially identity or caller-supplied, e.g. 0..n-1) by
// Less over points[idx[i]], via an indirect Hoare-partition quicksort
// (spec.md §4.3: "a hand-rolled indirect quicksort... Hoare partitioning on
// the permutation array, insertion-sort cutoff for small ranges").
func Sort(idx []uint32, points [][]uint64) {
	quicksort(idx, points, 0, len(idx)-1)
}

const insertionCutoff = 16

func quicksort(idx []uint32, points [][]uint64, lo, hi int) {
	for hi-lo > insertionCutoff {
		p := partition(idx, points, lo, hi)
		// recurse into the smaller side, loop on the larger to bound stack depth
		if p-lo < hi-p {
			quicksort(idx, points, lo, p)
			lo = p + 1
		} else {
			quicksort(idx, points, p+1, hi)
			hi = p
		}
	}
	insertionSort(idx, points, lo, hi)
}

func insertionSort(idx []uint32, points [][]uint64, lo, hi int) {
	for i := lo + 1; i <= hi; i++ {
		v := idx[i]
		j := i - 1
		for j >= lo && Less(points[v], points[idx[j]]) {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// partition is a Hoare partition using the midpoint as pivot, returning an
// index p such that everything in [lo, p] is <= everything in [p+1, hi].
func partition(idx []uint32, points [][]uint64, lo, hi int) int {
	mid := lo + (hi-lo)/2
	pivot := points[idx[mid]]

	i, j := lo-1, hi+1
	for {
		for {
			i++
			if !Less(points[idx[i]], pivot) {
				break
			}
		}
		for {
			j--
			if !Less(pivot, points[idx[j]]) {
				break
			}
		}
		if i >= j {
			return j
		}
		idx[i], idx[j] = idx[j], idx[i]
	}
}
