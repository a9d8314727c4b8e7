package sbv

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/hillbig/rsdic"
)

// denseBV is the mandatory-floor variant of spec.md §4.1: built directly on
// github.com/hillbig/rsdic, which implements the broadword two-level
// (large-block/medium-block) rank dictionary and sampled-select structure
// the spec describes, so this adapter only needs to supply the lifecycle
// (append-then-freeze) and expose the access/rank/select contract rsdic
// already has.
type denseBV struct {
	rs *rsdic.RSDic
}

func buildDense(staging *bitset.BitSet, length uint64) *denseBV {
	rs := rsdic.New()
	for i := uint64(0); i < length; i++ {
		rs.PushBack(staging.Test(uint(i)))
	}
	return &denseBV{rs: rs}
}

func (d *denseBV) access(i uint64) bool   { return d.rs.Bit(i) }
func (d *denseBV) rank1(i uint64) uint64  { return d.rs.Rank(i, true) }
func (d *denseBV) select1(i uint64) uint64 {
	return d.rs.Select(i+1, true)
}
func (d *denseBV) select0(i uint64) uint64 {
	return d.rs.Select(i+1, false)
}
func (d *denseBV) byteSize() int { return d.rs.AllocSize() }
