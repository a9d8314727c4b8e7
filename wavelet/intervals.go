package wavelet

// Interval is a node range produced by RangeIntervals. Root intervals give
// positions directly in the matrix's original (root) order; Inner
// intervals give positions in the reordered domain of level Level and must
// be lifted with InnerIntervalsToRoot before use (spec.md §3 "Inner
// interval").
type Interval struct {
	Root  bool
	Level int // meaningful only when !Root
	S, E  uint64
}

type frame struct {
	level int
	s, e  uint64
	path  uint64
}

// RangeIntervals enumerates maximal node-intervals within [s, e) (root
// coordinates) whose values fall in [min, max], per spec.md §4.4: at each
// node, compare its value-prefix range against [min, max]; emit
// fully-contained nodes, prune disjoint ones, recurse on partial overlap.
// When min==0 and max covers the full value universe, a node is never split
// past the root and the whole range is returned as one Root interval.
func (m *Matrix) RangeIntervals(s, e, min, max uint64, out []Interval) []Interval {
	if s >= e {
		return out
	}
	start := len(out)

	stack := []frame{{level: int(m.depth) - 1, s: s, e: e, path: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		width := uint64(1) << uint(f.level+1)
		prefixMax := f.path | (width - 1)
		if prefixMax < min || f.path > max {
			continue // disjoint
		}
		if f.path >= min && prefixMax <= max {
			if f.level == int(m.depth)-1 {
				out = append(out, Interval{Root: true, S: f.s, E: f.e})
			} else {
				out = append(out, Interval{Level: f.level, S: f.s, E: f.e})
			}
			continue
		}

		bv := m.levels[f.level]
		s0, e0 := bv.Rank0(f.s), bv.Rank0(f.e)
		s1, e1 := f.s-s0, f.e-e0
		childPath := f.path | (1 << uint(f.level))
		if e1 > s1 {
			stack = append(stack, frame{level: f.level - 1, s: m.zeroCount[f.level] + s1, e: m.zeroCount[f.level] + e1, path: childPath})
		}
		if e0 > s0 {
			stack = append(stack, frame{level: f.level - 1, s: s0, e: e0, path: f.path})
		}
	}

	// spec.md §4.4: "if the total length of emitted intervals equals the
	// input width, emit a single root interval instead".
	total := uint64(0)
	for _, iv := range out[start:] {
		total += iv.E - iv.S
	}
	if total == e-s {
		out = append(out[:start], Interval{Root: true, S: s, E: e})
	}
	return out
}

// InnerIntervalsToRoot lifts a batch of same-level inner-interval spans
// (flattened [s0, e0, s1, e1, ...], ascending) up to root coordinates,
// applying selectRanges0/selectRanges1 one matrix level at a time (spec.md
// §4.4 innerInterval2rootIntervals). Spans that straddle a level's
// zero/one boundary are split in two before the select.
func (m *Matrix) InnerIntervalsToRoot(level int, spans []uint64) []uint64 {
	cur := append([]uint64(nil), spans...)
	for lvl := level; lvl <= int(m.depth)-2; lvl++ {
		bv := m.levels[lvl+1]
		z := m.zeroCount[lvl+1]

		var zeroSpans, oneSpans []uint64
		for i := 0; i+1 < len(cur); i += 2 {
			s, e := cur[i], cur[i+1]
			switch {
			case e <= z:
				zeroSpans = append(zeroSpans, s, e)
			case s >= z:
				oneSpans = append(oneSpans, s, e)
			default:
				zeroSpans = append(zeroSpans, s, z)
				oneSpans = append(oneSpans, z, e)
			}
		}

		next := bv.SelectRanges(false, zeroSpans, 0, len(zeroSpans), 0, nil)
		next = bv.SelectRanges(true, oneSpans, 0, len(oneSpans), z, next)
		cur = next
	}
	return cur
}

// LiftOne lifts a single inner interval to root coordinates.
func (m *Matrix) LiftOne(level int, s, e uint64) (uint64, uint64) {
	lifted := m.InnerIntervalsToRoot(level, []uint64{s, e})
	return lifted[0], lifted[1]
}
