// Package permute implements the random partial permutation of spec.md
// §4.7, used to draw a uniform sample without replacement from a query's
// matching position set: a partial Fisher-Yates shuffle when the sample
// size k is a large fraction of n, falling back to rejection sampling
// (track-seen-set) when k is small relative to n, to avoid paying O(n) to
// draw a handful of samples from a huge range.
package permute

import "golang.org/x/exp/rand"

// rejectThreshold: below this k/n ratio, rejection sampling does less work
// than a partial Fisher-Yates over the whole range.
const rejectThreshold = 0.1

// Sample draws k distinct indices from [0, n) uniformly at random, using
// rng for randomness. Panics if k > n (a usage error, per spec.md §7).
func Sample(rng *rand.Rand, n, k uint64) []uint64 {
	if k > n {
		panic("permute: sample size exceeds population size")
	}
	if k == 0 {
		return nil
	}
	if float64(k) <= rejectThreshold*float64(n) {
		return sampleByRejection(rng, n, k)
	}
	return sampleByShuffle(rng, n, k)
}

// sampleByShuffle performs a partial Fisher-Yates shuffle over a dense
// index array, stopping after k swaps.
func sampleByShuffle(rng *rand.Rand, n, k uint64) []uint64 {
	a := make([]uint64, n)
	for i := range a {
		a[i] = uint64(i)
	}
	for i := uint64(0); i < k; i++ {
		j := i + uint64(rng.Int63n(int64(n-i)))
		a[i], a[j] = a[j], a[i]
	}
	return a[:k]
}

// sampleByRejection repeatedly draws a random index, keeping it only if
// not already chosen, tracked in a seen-set. Expected O(k) draws when
// k << n.
func sampleByRejection(rng *rand.Rand, n, k uint64) []uint64 {
	seen := make(map[uint64]struct{}, k)
	out := make([]uint64, 0, k)
	for uint64(len(out)) < k {
		v := uint64(rng.Int63n(int64(n)))
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
