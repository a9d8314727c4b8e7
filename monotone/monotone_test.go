package monotone

import (
	"math/rand"
	"sort"
	"testing"
)

func distinctSorted(rng *rand.Rand, n int, spread uint64) []uint64 {
	seen := make(map[uint64]struct{}, n)
	out := make([]uint64, 0, n)
	for len(out) < n {
		v := uint64(rng.Int63n(int64(spread)))
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestAccessRoundTrip(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	values := distinctSorted(rng, 2000, 1<<32)
	seq := Build(values, true)
	if seq.Len() != uint64(len(values)) {
		t.Fatalf("Len()=%d want %d", seq.Len(), len(values))
	}
	for i, v := range values {
		if got := seq.Access(uint64(i)); got != v {
			t.Fatalf("Access(%d)=%d want %d", i, got, v)
		}
	}
}

func TestFindAndContains(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))
	values := distinctSorted(rng, 500, 1<<20)
	seq := Build(values, true)

	for i, v := range values {
		if !seq.Contains(v) {
			t.Fatalf("Contains(%d) should be true (index %d)", v, i)
		}
		if idx := seq.Find(v); idx != int64(i) {
			t.Fatalf("Find(%d)=%d want %d", v, idx, i)
		}
	}
	if seq.Contains(values[len(values)-1] + 1<<20) {
		t.Fatalf("Contains should be false for out-of-range value")
	}
}

func TestRanklt(t *testing.T) {
	t.Parallel()
	values := []uint64{2, 5, 9, 9, 20}
	// non-strict: duplicates allowed
	seq := Build(values, false)
	cases := []struct {
		v    uint64
		want uint64
	}{
		{0, 0}, {2, 0}, {3, 1}, {9, 2}, {10, 4}, {100, 5},
	}
	for _, c := range cases {
		if got := seq.Ranklt(c.v); got != c.want {
			t.Errorf("Ranklt(%d)=%d want %d", c.v, got, c.want)
		}
	}
}

func TestNonDecreasingAllowsRepeats(t *testing.T) {
	t.Parallel()
	values := []uint64{0, 0, 0, 1, 1, 4}
	seq := Build(values, false)
	for i, v := range values {
		if got := seq.Access(uint64(i)); got != v {
			t.Fatalf("Access(%d)=%d want %d", i, got, v)
		}
	}
}
