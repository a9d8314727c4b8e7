package permute

import (
	"testing"

	"golang.org/x/exp/rand"
)

func checkSample(t *testing.T, n, k uint64) {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	got := Sample(rng, n, k)
	if uint64(len(got)) != k {
		t.Fatalf("Sample(n=%d,k=%d) returned %d elements", n, k, len(got))
	}
	seen := make(map[uint64]struct{}, k)
	for _, v := range got {
		if v >= n {
			t.Fatalf("Sample returned out-of-range value %d (n=%d)", v, n)
		}
		if _, dup := seen[v]; dup {
			t.Fatalf("Sample returned duplicate value %d", v)
		}
		seen[v] = struct{}{}
	}
}

func TestSampleViaShuffle(t *testing.T) {
	t.Parallel()
	checkSample(t, 1000, 800) // k/n > rejectThreshold: shuffle path
}

func TestSampleViaRejection(t *testing.T) {
	t.Parallel()
	checkSample(t, 1_000_000, 10) // k/n << rejectThreshold: rejection path
}

func TestSampleFullPopulation(t *testing.T) {
	t.Parallel()
	checkSample(t, 50, 50)
}

func TestSampleZero(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(2))
	if got := Sample(rng, 100, 0); len(got) != 0 {
		t.Fatalf("Sample(k=0) should return empty, got %v", got)
	}
}

func TestSampleOversizedPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when k > n")
		}
	}()
	rng := rand.New(rand.NewSource(3))
	Sample(rng, 5, 6)
}
