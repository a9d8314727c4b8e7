package rankspace

import (
	"math/rand"
	"sort"
	"testing"
)

func TestRealToDenserankExactAndInsertion(t *testing.T) {
	t.Parallel()
	values := []uint64{10, 20, 20, 30, 50, 50, 50}
	d := Build(values)

	if d.Len() != 4 { // distinct: 10,20,30,50
		t.Fatalf("Len()=%d want 4", d.Len())
	}

	cases := []struct {
		v         uint64
		wantRank  uint64
		wantExact bool
	}{
		{10, 0, true},
		{20, 1, true},
		{30, 2, true},
		{50, 3, true},
		{5, 0, false},
		{15, 1, false},
		{100, 4, false},
	}
	for _, c := range cases {
		rank, exact := d.Real2Denserank(c.v)
		if rank != c.wantRank || exact != c.wantExact {
			t.Errorf("Real2Denserank(%d)=(%d,%v) want (%d,%v)", c.v, rank, exact, c.wantRank, c.wantExact)
		}
	}
}

func TestDenserank2RealRoundTrip(t *testing.T) {
	t.Parallel()
	values := []uint64{1, 2, 4, 8, 16, 32}
	d := Build(values)
	for i := uint64(0); i < d.Len(); i++ {
		real := d.Denserank2Real(i)
		rank, exact := d.Real2Denserank(real)
		if !exact || rank != i {
			t.Fatalf("round trip failed at rank %d: real=%d -> (%d,%v)", i, real, rank, exact)
		}
	}
}

func TestBothEncodingsAgree(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))

	// Dense, small-span values: picks the flat sorted-array encoding.
	dense := make([]uint64, 300)
	for i := range dense {
		dense[i] = uint64(rng.Intn(400))
	}
	checkDictConsistency(t, dense)

	// Sparse, wide-span values: picks the Elias-Fano encoding.
	seen := make(map[uint64]struct{})
	sparse := make([]uint64, 0, 300)
	for len(sparse) < 300 {
		v := uint64(rng.Int63n(1 << 40))
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		sparse = append(sparse, v)
	}
	checkDictConsistency(t, sparse)
}

func checkDictConsistency(t *testing.T, values []uint64) {
	t.Helper()
	d := Build(values)

	uniq := append([]uint64(nil), values...)
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	dedup := uniq[:0]
	for i, v := range uniq {
		if i == 0 || v != dedup[len(dedup)-1] {
			dedup = append(dedup, v)
		}
	}

	if d.Len() != uint64(len(dedup)) {
		t.Fatalf("Len()=%d want %d", d.Len(), len(dedup))
	}
	for i, v := range dedup {
		rank, exact := d.Real2Denserank(v)
		if !exact || rank != uint64(i) {
			t.Fatalf("Real2Denserank(%d)=(%d,%v) want (%d,true)", v, rank, exact, i)
		}
		if got := d.Denserank2Real(uint64(i)); got != v {
			t.Fatalf("Denserank2Real(%d)=%d want %d", i, got, v)
		}
	}
}
