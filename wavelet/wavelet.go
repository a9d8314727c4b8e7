// Package wavelet implements the wavelet matrix of spec.md §4.4: a
// level-stacked bit-vector representation of a sequence of non-negative
// integers supporting access, rank/ranklt/rankgt/rankle/rankge, directional
// select, maximal-interval enumeration within a value range
// (rangeIntervals), and lifting an inner-node interval back to root
// coordinates (innerInterval2rootIntervals).
package wavelet

import (
	"kdwtree/errutil"
	"kdwtree/sbv"
)

// Matrix is immutable after Build.
type Matrix struct {
	levels    []*sbv.BitVector // levels[ℓ], ℓ in [0, depth); levels[depth-1] is built over the root order
	zeroCount []uint64         // Z[ℓ] = count of 0-bits on level ℓ
	length    uint64
	depth     uint
}

// Build constructs a depth-level wavelet matrix over values (each value
// must fit in `depth` bits). Construction processes levels top-down,
// MSB (depth-1) first, exactly as spec.md §4.4 describes: "Builds L
// bit-vectors bottom-to-top... At each level ℓ from L−1 down to 0... the
// sequence is then stably split — zeros first, ones after — yielding the
// input for level ℓ−1."
func Build(values []uint64, depth uint) *Matrix {
	n := uint64(len(values))
	levels := make([]*sbv.BitVector, depth)
	zeroCount := make([]uint64, depth)

	cur := make([]uint64, n)
	copy(cur, values)

	for level := int(depth) - 1; level >= 0; level-- {
		b := sbv.NewBuilder(uint(n))
		bit := uint(level)
		for _, v := range cur {
			b.Append((v>>bit)&1 == 1)
		}
		bv := b.Build()
		levels[level] = bv
		zeroCount[level] = bv.Len() - bv.Ones()

		if level > 0 {
			next := make([]uint64, 0, n)
			ones := make([]uint64, 0, n)
			for _, v := range cur {
				if (v>>bit)&1 == 0 {
					next = append(next, v)
				} else {
					ones = append(ones, v)
				}
			}
			cur = append(next, ones...)
		}
	}

	return &Matrix{levels: levels, zeroCount: zeroCount, length: n, depth: depth}
}

func (m *Matrix) Len() uint64  { return m.length }
func (m *Matrix) Depth() uint  { return m.depth }

func (m *Matrix) checkRange(s, e uint64) {
	errutil.BugOn(s > e || e > m.length, "wavelet: invalid range [%d,%d) over length %d", s, e, m.length)
}

// Access reconstructs the value originally at position i.
func (m *Matrix) Access(i uint64) uint64 {
	errutil.BugOn(i >= m.length, "wavelet: Access index out of bounds")
	var value uint64
	pos := i
	for level := int(m.depth) - 1; level >= 0; level-- {
		bv := m.levels[level]
		bit := bv.Access(pos)
		if bit {
			value |= 1 << uint(level)
			pos = m.zeroCount[level] + bv.Rank1(pos)
		} else {
			pos = bv.Rank0(pos)
		}
	}
	return value
}

// descend narrows [s, e) by the bits of c from MSB to LSB, returning the
// running less-than and greater-than accumulators alongside the final
// equal-range [s, e).
func (m *Matrix) descend(c, s, e uint64) (ns, ne, lt, gt uint64) {
	ns, ne = s, e
	for level := int(m.depth) - 1; level >= 0; level-- {
		bv := m.levels[level]
		bit := (c>>uint(level))&1 == 1
		s0, e0 := bv.Rank0(ns), bv.Rank0(ne)
		s1, e1 := ns-s0, ne-e0
		if bit {
			lt += e0 - s0
			ns = m.zeroCount[level] + s1
			ne = m.zeroCount[level] + e1
		} else {
			gt += e1 - s1
			ns, ne = s0, e0
		}
	}
	return ns, ne, lt, gt
}

// Rank counts exact occurrences of c in [s, e).
func (m *Matrix) Rank(c, s, e uint64) uint64 {
	m.checkRange(s, e)
	ns, ne, _, _ := m.descend(c, s, e)
	return ne - ns
}

// Ranklt counts values strictly less than c in [s, e).
func (m *Matrix) Ranklt(c, s, e uint64) uint64 {
	m.checkRange(s, e)
	_, _, lt, _ := m.descend(c, s, e)
	return lt
}

// Rankgt counts values strictly greater than c in [s, e).
func (m *Matrix) Rankgt(c, s, e uint64) uint64 {
	m.checkRange(s, e)
	_, _, _, gt := m.descend(c, s, e)
	return gt
}

// Rankle counts values <= c in [s, e).
func (m *Matrix) Rankle(c, s, e uint64) uint64 {
	m.checkRange(s, e)
	ns, ne, lt, _ := m.descend(c, s, e)
	return lt + (ne - ns)
}

// Rankge counts values >= c in [s, e).
func (m *Matrix) Rankge(c, s, e uint64) uint64 {
	m.checkRange(s, e)
	ns, ne, _, gt := m.descend(c, s, e)
	return gt + (ne - ns)
}

// Select finds the (i+1)-th occurrence (0-indexed i) of c within [s, e),
// in forward (left-to-right) or backward order, and returns its original
// position. ok is false if fewer than i+1 occurrences exist.
func (m *Matrix) Select(c, i, s, e uint64, forward bool) (pos uint64, ok bool) {
	m.checkRange(s, e)
	cs, ce, _, _ := m.descend(c, s, e)
	count := ce - cs
	if i >= count {
		return 0, false
	}
	var target uint64
	if forward {
		target = cs + i
	} else {
		target = ce - 1 - i
	}
	pos = target
	for level := uint(0); level < m.depth; level++ {
		bv := m.levels[level]
		bit := (c>>level)&1 == 1
		if bit {
			pos = bv.Select1(pos - m.zeroCount[level])
		} else {
			pos = bv.Select0(pos)
		}
	}
	return pos, true
}

// ByteSize reports the resident size of the level bit-vectors.
func (m *Matrix) ByteSize() int {
	size := 0
	for _, bv := range m.levels {
		size += bv.ByteSize()
	}
	size += len(m.zeroCount) * 8
	return size
}
