package sbv

// rangeWalker amortises a sequence of ascending select_b queries by walking
// forward with next_b/next0 from the previous answer instead of always
// re-running a full select, as spec.md §4.1 describes for selectRanges:
// "amortises successive select calls by carrying state across consecutive
// range endpoints (reusing next_b to walk the bit-vector forward)".
type rangeWalker struct {
	bv         *BitVector
	bit        bool
	haveCursor bool
	cursorRank uint64
	cursorPos  uint64
}

func (w *rangeWalker) selectRaw(rank uint64) uint64 {
	if w.bit {
		return w.bv.Select1(rank)
	}
	return w.bv.Select0(rank)
}

func (w *rangeWalker) nextFrom(pos uint64) uint64 {
	if w.bit {
		return w.bv.Next1(pos)
	}
	return w.bv.Next0(pos)
}

// selectAt returns the position of the (rank+1)-th occurrence of the target
// bit. Calls must be made with non-decreasing rank for the fast path to
// trigger; out-of-order ranks fall back to a plain select.
func (w *rangeWalker) selectAt(rank uint64) uint64 {
	var pos uint64
	if w.haveCursor && rank == w.cursorRank {
		pos = w.cursorPos
	} else {
		pos = w.selectRaw(rank)
	}
	w.haveCursor = true
	w.cursorRank = rank + 1
	w.cursorPos = w.nextFrom(pos + 1)
	return pos
}

// SelectRanges translates a sorted stream of half-open rank intervals into
// the corresponding half-open position intervals of bit `bit` (spec.md
// §4.1 "selectRanges_b"). spans[begin:end] holds alternating (start, end)
// rank pairs; bias is subtracted from every endpoint before the select
// (used by wavelet's Matrix.InnerIntervalsToRoot when lifting a 1-child
// interval, whose ranks are offset by Z[level]). Results are appended to
// out and the extended slice is returned.
func (bv *BitVector) SelectRanges(bit bool, spans []uint64, begin, end int, bias uint64, out []uint64) []uint64 {
	w := &rangeWalker{bv: bv, bit: bit}
	for i := begin; i+1 < end; i += 2 {
		s, e := spans[i], spans[i+1]
		var rs, re uint64
		if s > bias {
			rs = s - bias
		}
		if e > bias {
			re = e - bias
		}
		if rs >= re {
			continue
		}
		startPos := w.selectAt(rs)
		endPosIncl := w.selectAt(re - 1)
		out = append(out, startPos, endPosIncl+1)
	}
	return out
}
