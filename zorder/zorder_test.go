package zorder

import (
	"math/rand"
	"sort"
	"testing"
)

func TestLessIsStrictWeakOrder(t *testing.T) {
	t.Parallel()
	a := []uint64{1, 2}
	b := []uint64{1, 2}
	if Less(a, b) || Less(b, a) {
		t.Errorf("equal points must not be Less either way")
	}
}

func TestLessKnownMortonOrder(t *testing.T) {
	t.Parallel()
	// 2D points (x,y) in [0,3]x[0,3]; classic Z-order visits:
	// (0,0)(1,0)(0,1)(1,1)(2,0)(3,0)(2,1)(3,1)(0,2)(1,2)(0,3)(1,3)(2,2)(3,2)(2,3)(3,3)
	expected := [][]uint64{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
		{2, 0}, {3, 0}, {2, 1}, {3, 1},
		{0, 2}, {1, 2}, {0, 3}, {1, 3},
		{2, 2}, {3, 2}, {2, 3}, {3, 3},
	}
	for i := 0; i < len(expected); i++ {
		for j := i + 1; j < len(expected); j++ {
			if !Less(expected[i], expected[j]) {
				t.Fatalf("expected Less(%v, %v)", expected[i], expected[j])
			}
		}
	}
}

func TestSortMatchesLess(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	n := 500
	k := 4
	points := make([][]uint64, n)
	for i := range points {
		row := make([]uint64, k)
		for d := range row {
			row[d] = uint64(rng.Intn(1000))
		}
		points[i] = row
	}
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	Sort(idx, points)

	if !sort.SliceIsSorted(idx, func(i, j int) bool {
		return Less(points[idx[i]], points[idx[j]])
	}) {
		t.Fatalf("Sort did not produce a Less-ordered permutation")
	}
	if len(idx) != n {
		t.Fatalf("Sort must not change the permutation's length")
	}
	seen := make([]bool, n)
	for _, v := range idx {
		if seen[v] {
			t.Fatalf("Sort produced a duplicate index %d", v)
		}
		seen[v] = true
	}
}
