package wavelet

import (
	"math/rand"
	"testing"
)

func bruteRank(values []uint64, c, s, e uint64) (eq, lt, gt uint64) {
	for _, v := range values[s:e] {
		switch {
		case v == c:
			eq++
		case v < c:
			lt++
		default:
			gt++
		}
	}
	return
}

func TestAccessMatchesInput(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	n := 1000
	depth := uint(8)
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(rng.Intn(1 << depth))
	}
	m := Build(values, depth)
	for i, v := range values {
		if got := m.Access(uint64(i)); got != v {
			t.Fatalf("Access(%d)=%d want %d", i, got, v)
		}
	}
}

func TestRankFamilyAgainstBruteForce(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))
	n := 500
	depth := uint(6)
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(rng.Intn(1 << depth))
	}
	m := Build(values, depth)

	for trial := 0; trial < 200; trial++ {
		s := uint64(rng.Intn(n))
		e := s + uint64(rng.Intn(n-int(s))+1)
		c := uint64(rng.Intn(1 << depth))

		wantEq, wantLt, wantGt := bruteRank(values, c, s, e)
		if got := m.Rank(c, s, e); got != wantEq {
			t.Fatalf("Rank(%d,%d,%d)=%d want %d", c, s, e, got, wantEq)
		}
		if got := m.Ranklt(c, s, e); got != wantLt {
			t.Fatalf("Ranklt(%d,%d,%d)=%d want %d", c, s, e, got, wantLt)
		}
		if got := m.Rankgt(c, s, e); got != wantGt {
			t.Fatalf("Rankgt(%d,%d,%d)=%d want %d", c, s, e, got, wantGt)
		}
		if got := m.Rankle(c, s, e); got != wantLt+wantEq {
			t.Fatalf("Rankle(%d,%d,%d)=%d want %d", c, s, e, got, wantLt+wantEq)
		}
		if got := m.Rankge(c, s, e); got != wantGt+wantEq {
			t.Fatalf("Rankge(%d,%d,%d)=%d want %d", c, s, e, got, wantGt+wantEq)
		}
	}
}

func TestSelectRoundTrip(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(3))
	n := 400
	depth := uint(5)
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(rng.Intn(1 << depth))
	}
	m := Build(values, depth)

	for c := uint64(0); c < 1<<depth; c++ {
		var occurrences []uint64
		for i, v := range values {
			if v == c {
				occurrences = append(occurrences, uint64(i))
			}
		}
		for i, want := range occurrences {
			pos, ok := m.Select(c, uint64(i), 0, uint64(n), true)
			if !ok || pos != want {
				t.Fatalf("Select(%d,%d) forward = (%d,%v) want (%d,true)", c, i, pos, ok, want)
			}
		}
		for i := range occurrences {
			want := occurrences[len(occurrences)-1-i]
			pos, ok := m.Select(c, uint64(i), 0, uint64(n), false)
			if !ok || pos != want {
				t.Fatalf("Select(%d,%d) backward = (%d,%v) want (%d,true)", c, i, pos, ok, want)
			}
		}
		if _, ok := m.Select(c, uint64(len(occurrences)), 0, uint64(n), true); ok {
			t.Fatalf("Select(%d, out-of-range) should fail", c)
		}
	}
}

func TestRangeIntervalsCoverExactMatches(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(4))
	n := 300
	depth := uint(6)
	values := make([]uint64, n)
	for i := range values {
		values[i] = uint64(rng.Intn(1 << depth))
	}
	m := Build(values, depth)

	for trial := 0; trial < 50; trial++ {
		minV := uint64(rng.Intn(1 << depth))
		maxV := minV + uint64(rng.Intn(int(1<<depth)-int(minV)))

		ivs := m.RangeIntervals(0, uint64(n), minV, maxV, nil)

		positions := make(map[uint64]bool)
		for _, iv := range ivs {
			var s, e uint64
			if iv.Root {
				s, e = iv.S, iv.E
			} else {
				s, e = m.LiftOne(iv.Level, iv.S, iv.E)
			}
			for p := s; p < e; p++ {
				if positions[p] {
					t.Fatalf("position %d emitted twice", p)
				}
				positions[p] = true
			}
		}

		for i, v := range values {
			want := v >= minV && v <= maxV
			got := positions[uint64(i)]
			if got != want {
				t.Fatalf("trial %d: position %d value %d range [%d,%d]: emitted=%v want=%v", trial, i, v, minV, maxV, got, want)
			}
		}
	}
}
