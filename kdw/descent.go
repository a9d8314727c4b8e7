package kdw

// stopWidth is spec.md §4.5's STOP_WIDTH: once a candidate interval
// narrows to this many positions or fewer, the descent engine abandons
// further wavelet splitting and falls back to a direct linear scan — at
// this width, per-point overhead is cheaper than another round of
// per-dimension rank/rangeIntervals calls.
const stopWidth = 256

// leafSize is spec.md §4.5's LEAF_SIZE. Construct uses it only to batch its
// per-dimension diagnostic lines: one line every leafSize dimensions and one
// after the last dimension (see memreport.LogVariantChoice).
const leafSize = 256

// posRange is a half-open range of positions in the shared global order
// that the engine has proven fully satisfies every dimension's bound.
type posRange struct {
	s, e uint64
}

type candidate struct {
	s, e      uint64
	contained uint32 // bitmask: bit d set once dimension d is proven satisfied
	nextDim   int    // next dimension to check, round-robin from k-1 downward
}

// descend runs the shared multi-dimensional virtual-tree descent of
// spec.md §4.5 against rr, emitting every maximal fully-qualifying position
// range via emit. Dimensions are checked round-robin starting from k-1 and
// moving downward (wrapping), each dimension's wavelet matrix narrowing the
// candidate set via RangeIntervals; once proven fully contained on a
// dimension the candidate's bit is set and that dimension is skipped on
// later visits to the same candidate.
func (idx *Index) descend(rr rankRect, emit func(posRange)) {
	if rr.empty {
		return
	}
	k := idx.k
	fullMask := uint32(1)<<uint(k) - 1
	if k == 64 {
		fullMask = ^uint32(0)
	}

	stack := []candidate{{s: 0, e: idx.n, contained: 0, nextDim: k - 1}}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.e <= c.s {
			continue
		}
		if c.contained == fullMask {
			emit(posRange{c.s, c.e})
			continue
		}
		if c.e-c.s <= stopWidth {
			idx.linearScan(c.s, c.e, rr, emit)
			continue
		}

		d := nextUncontained(c.nextDim, c.contained, k)
		ivs := idx.matrices[d].RangeIntervals(c.s, c.e, rr.lo[d], rr.hi[d], nil)
		for _, iv := range ivs {
			var s, e uint64
			if iv.Root {
				s, e = iv.S, iv.E
			} else {
				s, e = idx.matrices[d].LiftOne(iv.Level, iv.S, iv.E)
			}
			stack = append(stack, candidate{
				s: s, e: e,
				contained: c.contained | (1 << uint(d)),
				nextDim:   d,
			})
		}
	}
}

func nextUncontained(d int, contained uint32, k int) int {
	for i := 0; i < k; i++ {
		if contained&(1<<uint(d)) == 0 {
			return d
		}
		d = (d - 1 + k) % k
	}
	panic("kdw: nextUncontained called with a fully-contained mask")
}

// linearScan checks every remaining position individually against every
// dimension's rank bounds, emitting width-1 ranges for matches. Used once a
// candidate has narrowed to stopWidth positions or fewer.
func (idx *Index) linearScan(s, e uint64, rr rankRect, emit func(posRange)) {
	for p := s; p < e; p++ {
		match := true
		for d := 0; d < idx.k; d++ {
			rank := idx.matrices[d].Access(p)
			if rank < rr.lo[d] || rank > rr.hi[d] {
				match = false
				break
			}
		}
		if match {
			emit(posRange{p, p + 1})
		}
	}
}
