package kdw

import (
	"kdwtree/floatcode"
	"kdwtree/rankspace"
)

// rankRect is a query rectangle translated into inclusive per-dimension
// dense-rank bounds against one Index's rankspace.Dict set.
type rankRect struct {
	lo, hi []uint64
	empty  bool
}

func toRankRect(dicts []*rankspace.Dict, r floatcode.Rectangle) rankRect {
	if r.Empty {
		return rankRect{empty: true}
	}
	k := len(dicts)
	rr := rankRect{lo: make([]uint64, k), hi: make([]uint64, k)}
	for d := 0; d < k; d++ {
		lo, hi, empty := rankBounds(dicts[d], floatcode.Encode(r.Min[d]), floatcode.Encode(r.Max[d]))
		if empty {
			rr.empty = true
			return rr
		}
		rr.lo[d], rr.hi[d] = lo, hi
	}
	return rr
}

// rankBounds converts an inclusive real-value range [encMin, encMax] into
// the inclusive dense-rank range covering exactly those distinct values
// dict holds within it (spec.md §4.8 "insertion-point semantics for absent
// values").
func rankBounds(dict *rankspace.Dict, encMin, encMax uint64) (lo, hi uint64, empty bool) {
	lo, _ = dict.Real2Denserank(encMin)
	hiIns, exact := dict.Real2Denserank(encMax)
	if exact {
		hi = hiIns
	} else {
		if hiIns == 0 {
			return 0, 0, true
		}
		hi = hiIns - 1
	}
	if dict.Len() == 0 || lo > hi {
		return 0, 0, true
	}
	return lo, hi, false
}
