// Package kdtree builds the externalized k-d tree ordering of spec.md §4.6:
// an explicit, balanced, median-split binary tree over one dimension at a
// time (round-robin), used as an alternative to Z-order for laying out the
// shared global point sequence the per-dimension wavelet matrices are built
// over.
package kdtree

import "kdwtree/errutil"

// Node is one split of the externalized tree. Point is the index (into the
// original point set) of the pivot chosen at this node; Dim is the
// dimension it was split on; Median is that pivot's coordinate on Dim.
type Node struct {
	Dim    int
	Point  uint32
	Median float64
	Left   *Node
	Right  *Node
}

// Tree holds the built structure plus Order, the resulting permutation of
// point indices (an in-order traversal of the tree): this is the
// "externalized" global ordering, playing the same role Z-order plays for
// the Z-order variant.
type Tree struct {
	Root  *Node
	Order []uint32
}

// Build constructs the externalized k-d tree over n points of dimension k,
// coord(i, d) returning point i's coordinate on dimension d (already
// order-preserving encoded, so plain < comparison suffices).
func Build(n int, k int, coord func(i uint32, d int) float64) *Tree {
	errutil.BugOn(n <= 0, "kdtree: Build called with n <= 0")
	errutil.BugOn(k < 2, "kdtree: Build called with k < 2")

	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}

	t := &Tree{}
	t.Root = buildNode(idx, coord, k, 0)
	t.Order = make([]uint32, 0, n)
	inorder(t.Root, &t.Order)
	return t
}

func buildNode(idx []uint32, coord func(uint32, int) float64, k, dim int) *Node {
	n := len(idx)
	if n == 0 {
		return nil
	}
	quickselect(idx, coord, dim, 0, n-1, n/2)
	medianVal := coord(idx[n/2], dim)

	// Tie-break: points exactly equal to the median value are shifted into
	// the left (lower) subtree. quickselect's Hoare partitioning only
	// guarantees elements before the target rank are <= medianVal and
	// elements after are >=; same-valued points are not guaranteed to sit
	// contiguously around that rank, so a full three-way partition over
	// the whole slice is needed to actually gather every tied point to one
	// side before picking the split boundary.
	lt, eq := partitionByValue(idx, coord, dim, medianVal)
	mid := lt + eq - 1

	node := &Node{Dim: dim, Point: idx[mid], Median: medianVal}
	nextDim := (dim + 1) % k
	node.Left = buildNode(idx[:mid], coord, k, nextDim)
	if mid+1 < n {
		node.Right = buildNode(idx[mid+1:], coord, k, nextDim)
	}
	return node
}

func inorder(n *Node, out *[]uint32) {
	if n == nil {
		return
	}
	inorder(n.Left, out)
	*out = append(*out, n.Point)
	inorder(n.Right, out)
}

// quickselect places the element that would occupy sorted position `target`
// (by coord(·, dim)) at idx[target], via Hoare partitioning — the same
// partition discipline zorder.Sort uses, specialised to a single dimension.
func quickselect(idx []uint32, coord func(uint32, int) float64, dim, lo, hi, target int) {
	for lo < hi {
		p := partitionByDim(idx, coord, dim, lo, hi)
		switch {
		case target <= p:
			hi = p
		default:
			lo = p + 1
		}
	}
}

// partitionByValue rearranges idx in place into three contiguous groups —
// coord < value, coord == value, coord > value — via a Dutch-flag three-way
// partition, and returns (count of <, count of ==). Used after quickselect
// locates the median value, to gather every tied point to one side of the
// split regardless of where quickselect happened to leave them.
func partitionByValue(idx []uint32, coord func(uint32, int) float64, dim int, value float64) (lt, eq int) {
	lo, mid, hi := 0, 0, len(idx)-1
	for mid <= hi {
		v := coord(idx[mid], dim)
		switch {
		case v < value:
			idx[lo], idx[mid] = idx[mid], idx[lo]
			lo++
			mid++
		case v == value:
			mid++
		default:
			idx[mid], idx[hi] = idx[hi], idx[mid]
			hi--
		}
	}
	return lo, mid - lo
}

func partitionByDim(idx []uint32, coord func(uint32, int) float64, dim, lo, hi int) int {
	mid := lo + (hi-lo)/2
	pivot := coord(idx[mid], dim)

	i, j := lo-1, hi+1
	for {
		for {
			i++
			if coord(idx[i], dim) >= pivot {
				break
			}
		}
		for {
			j--
			if coord(idx[j], dim) <= pivot {
				break
			}
		}
		if i >= j {
			return j
		}
		idx[i], idx[j] = idx[j], idx[i]
	}
}
