package kdtree

import (
	"math/rand"
	"testing"
)

func TestBuildProducesPermutation(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(11))
	n, k := 300, 3
	pts := make([][]float64, n)
	for i := range pts {
		row := make([]float64, k)
		for d := range row {
			row[d] = rng.Float64() * 100
		}
		pts[i] = row
	}
	coord := func(i uint32, d int) float64 { return pts[i][d] }

	tree := Build(n, k, coord)
	if len(tree.Order) != n {
		t.Fatalf("Order length=%d want %d", len(tree.Order), n)
	}
	seen := make([]bool, n)
	for _, v := range tree.Order {
		if seen[v] {
			t.Fatalf("Order has duplicate index %d", v)
		}
		seen[v] = true
	}
}

func TestMedianSplitBalances(t *testing.T) {
	t.Parallel()
	n, k := 63, 2
	coord := func(i uint32, d int) float64 { return float64(i) }
	tree := Build(n, k, coord)

	var depth func(node *Node) int
	depth = func(node *Node) int {
		if node == nil {
			return 0
		}
		l, r := depth(node.Left), depth(node.Right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	got := depth(tree.Root)
	// a perfectly balanced median-split tree over 63 points is 6 levels deep
	if got > 7 {
		t.Fatalf("tree depth %d looks unbalanced for n=%d", got, n)
	}
}

func TestTieBreakKeepsSingleSplitPerNode(t *testing.T) {
	t.Parallel()
	// all points share the same coordinate on dim 0: the tie-break rule
	// must still produce a valid permutation without infinite recursion.
	n, k := 40, 2
	coord := func(i uint32, d int) float64 {
		if d == 0 {
			return 1.0
		}
		return float64(i)
	}
	tree := Build(n, k, coord)
	if len(tree.Order) != n {
		t.Fatalf("Order length=%d want %d", len(tree.Order), n)
	}
}

func TestTieBreakGathersNonAdjacentDuplicates(t *testing.T) {
	t.Parallel()
	// dim 0 values are scattered so that points sharing the eventual median
	// value are not adjacent in index order, which is what quickselect's
	// Hoare partitioning alone would leave unresolved: a correct tie-break
	// must still route every point valued == root.Median into the left
	// subtree, not just whichever one landed next to the selected rank.
	n, k := 41, 2
	dim0 := make([]float64, n)
	for i := range dim0 {
		switch {
		case i%3 == 0:
			dim0[i] = 5.0 // the eventual median value, spread every 3rd slot
		case i%2 == 0:
			dim0[i] = float64(100 + i)
		default:
			dim0[i] = float64(-100 - i)
		}
	}
	coord := func(i uint32, d int) float64 {
		if d == 0 {
			return dim0[i]
		}
		return float64(i)
	}
	tree := Build(n, k, coord)
	if len(tree.Order) != n {
		t.Fatalf("Order length=%d want %d", len(tree.Order), n)
	}
	if tree.Root.Dim != 0 {
		t.Fatalf("root split dimension=%d want 0", tree.Root.Dim)
	}
	median := tree.Root.Median

	var walkLeft, walkRight func(node *Node)
	walkLeft = func(node *Node) {
		if node == nil {
			return
		}
		if dim0[node.Point] > median {
			t.Fatalf("left subtree holds point %d with dim0=%v > median %v", node.Point, dim0[node.Point], median)
		}
		walkLeft(node.Left)
		walkLeft(node.Right)
	}
	walkRight = func(node *Node) {
		if node == nil {
			return
		}
		if dim0[node.Point] <= median {
			t.Fatalf("right subtree holds point %d with dim0=%v <= median %v", node.Point, dim0[node.Point], median)
		}
		walkRight(node.Left)
		walkRight(node.Right)
	}
	walkLeft(tree.Root.Left)
	walkRight(tree.Root.Right)
}
