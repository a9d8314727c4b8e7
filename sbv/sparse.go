package sbv

import (
	"kdwtree/errutil"
	"kdwtree/monotone"

	"github.com/bits-and-blooms/bitset"
)

// sparseBV backs both Sparse0 (monotone-encodes the positions of 0-bits)
// and Sparse1 (monotone-encodes the positions of 1-bits): spec.md §4.1.
// The encoded bit (encodedIsOne) gets select straight from the monotone
// sequence's Access and rank from its Ranklt (a binary search); select of
// the complementary bit is a binary search over positions.
type sparseBV struct {
	seq           *monotone.Sequence
	length        uint64
	encodedIsOne  bool
}

func buildSparse(staging *bitset.BitSet, length uint64, encodeOnes bool) *sparseBV {
	positions := make([]uint64, 0)
	for i := uint64(0); i < length; i++ {
		if staging.Test(uint(i)) == encodeOnes {
			positions = append(positions, i)
		}
	}
	return &sparseBV{
		seq:          monotone.Build(positions, true),
		length:       length,
		encodedIsOne: encodeOnes,
	}
}

func (s *sparseBV) encodedCount() uint64 { return s.seq.Len() }

func (s *sparseBV) access(i uint64) bool {
	_, present := s.findEncodedIndex(i)
	return present == s.encodedIsOne
}

// findEncodedIndex reports whether position i holds the encoded bit.
func (s *sparseBV) findEncodedIndex(i uint64) (idx uint64, present bool) {
	idx = s.seq.Ranklt(i)
	if idx < s.seq.Len() && s.seq.Access(idx) == i {
		return idx, true
	}
	return idx, false
}

func (s *sparseBV) rankEncoded(i uint64) uint64 { return s.seq.Ranklt(i) }

func (s *sparseBV) rank1(i uint64) uint64 {
	encRank := s.rankEncoded(i)
	if s.encodedIsOne {
		return encRank
	}
	return i - encRank
}

func (s *sparseBV) selectEncoded(i uint64) uint64 { return s.seq.Access(i) }

// selectComplement finds the position of the (i+1)-th bit not matching
// encodedIsOne, via binary search over "how many complement bits occur in
// [0, p)" = p - rankEncoded(p).
func (s *sparseBV) selectComplement(i uint64) uint64 {
	lo, hi := uint64(0), s.length
	for lo < hi {
		mid := lo + (hi-lo)/2
		countComplementBefore := mid - s.rankEncoded(mid)
		if countComplementBefore <= i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	errutil.BugOn(lo == 0, "sbv: selectComplement out of range")
	return lo - 1
}

func (s *sparseBV) select1(i uint64) uint64 {
	if s.encodedIsOne {
		return s.selectEncoded(i)
	}
	return s.selectComplement(i)
}

func (s *sparseBV) select0(i uint64) uint64 {
	if s.encodedIsOne {
		return s.selectComplement(i)
	}
	return s.selectEncoded(i)
}

func (s *sparseBV) byteSize() int { return s.seq.ByteSize() + 16 }
