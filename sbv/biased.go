package sbv

import (
	"kdwtree/errutil"
	"kdwtree/monotone"

	"github.com/bits-and-blooms/bitset"
)

// biasedBV implements spec.md §4.1's Biased variant: "monotone-encode
// positions of 0->1 transitions plus their running ranks". Concretely we
// record every run boundary (not only 0->1 transitions, so the same
// structure handles runs starting with either bit) as a strictly
// increasing position sequence, paired with a non-decreasing sequence of
// the cumulative 1-count at each boundary. Runs alternate starting from
// startBit, so a run's parity against startBit tells access() the bit
// without touching the underlying staged bits again.
type biasedBV struct {
	startBit   bool
	runStarts  *monotone.Sequence // strictly increasing, runStarts[0] == 0
	cumOnes    *monotone.Sequence // non-decreasing, 1s strictly before each run start
	numRuns    uint64
	length     uint64
}

func buildBiased(staging *bitset.BitSet, length uint64) *biasedBV {
	errutil.BugOn(length == 0, "sbv: buildBiased called on empty vector")

	starts := make([]uint64, 0)
	cum := make([]uint64, 0)

	startBit := staging.Test(0)
	prev := startBit
	ones := uint64(0)
	starts = append(starts, 0)
	cum = append(cum, 0)

	for i := uint64(1); i < length; i++ {
		if staging.Test(uint(i - 1)) {
			ones++
		}
		bit := staging.Test(uint(i))
		if bit != prev {
			starts = append(starts, i)
			cum = append(cum, ones)
			prev = bit
		}
	}
	if staging.Test(uint(length - 1)) {
		ones++
	}

	return &biasedBV{
		startBit:  startBit,
		runStarts: monotone.Build(starts, true),
		cumOnes:   monotone.Build(cum, false),
		numRuns:   uint64(len(starts)),
		length:    length,
	}
}

// runIndexAt returns the index of the run covering position i.
func (b *biasedBV) runIndexAt(i uint64) uint64 {
	idx := b.runStarts.Ranklt(i + 1)
	errutil.BugOn(idx == 0, "sbv: biased run lookup underflow")
	return idx - 1
}

func (b *biasedBV) runIsOne(runIdx uint64) bool {
	if b.startBit {
		return runIdx%2 == 0
	}
	return runIdx%2 == 1
}

func (b *biasedBV) access(i uint64) bool {
	return b.runIsOne(b.runIndexAt(i))
}

func (b *biasedBV) rank1(i uint64) uint64 {
	if i == 0 {
		return 0
	}
	runIdx := b.runIndexAt(i - 1)
	cum := b.cumOnes.Access(runIdx)
	if b.runIsOne(runIdx) {
		start := b.runStarts.Access(runIdx)
		cum += i - start
	}
	return cum
}

func (b *biasedBV) select1(i uint64) uint64 {
	runIdx := b.cumOnes.Ranklt(i + 1)
	errutil.BugOn(runIdx == 0, "sbv: biased select1 out of range")
	runIdx--
	errutil.BugOn(!b.runIsOne(runIdx), "sbv: biased select1 landed on a zero-run")
	start := b.runStarts.Access(runIdx)
	offset := i - b.cumOnes.Access(runIdx)
	return start + offset
}

func (b *biasedBV) select0(i uint64) uint64 {
	// number of zeros strictly before run r is (runStart(r) - cumOnes(r));
	// binary search the run whose zero-run covers the i-th zero.
	lo, hi := uint64(0), b.numRuns
	for lo < hi {
		mid := lo + (hi-lo)/2
		start := b.runStarts.Access(mid)
		zerosBefore := start - b.cumOnes.Access(mid)
		if zerosBefore <= i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	errutil.BugOn(lo == 0, "sbv: biased select0 out of range")
	runIdx := lo - 1
	errutil.BugOn(b.runIsOne(runIdx), "sbv: biased select0 landed on a one-run")
	start := b.runStarts.Access(runIdx)
	zerosBeforeRun := start - b.cumOnes.Access(runIdx)
	return start + (i - zerosBeforeRun)
}

func (b *biasedBV) byteSize() int {
	return b.runStarts.ByteSize() + b.cumOnes.ByteSize() + 16
}
