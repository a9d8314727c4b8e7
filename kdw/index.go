// Package kdw is the top-level KDW-tree: a static, in-memory k-dimensional
// range index built from per-dimension wavelet matrices sharing one global
// point ordering (spec.md §4.5). Construct takes a point set, builds the
// global order (Z-order or the externalized k-d tree ordering of package
// kdtree) plus one rankspace.Dict + wavelet.Matrix pair per dimension, and
// returns an Index supporting Count, Report and Sample range queries.
package kdw

import (
	"fmt"

	"golang.org/x/exp/rand"

	"kdwtree/errutil"
	"kdwtree/floatcode"
	"kdwtree/interval"
	"kdwtree/kdtree"
	"kdwtree/memreport"
	"kdwtree/permute"
	"kdwtree/rankspace"
	"kdwtree/wavelet"
	"kdwtree/zorder"
)

// Ordering selects the global point ordering the per-dimension wavelet
// matrices are built over.
type Ordering int

const (
	// ZOrder sorts points by the Morton/shuffle comparator (package zorder).
	ZOrder Ordering = iota
	// Externalized builds a balanced median-split k-d tree (package kdtree)
	// and uses its in-order traversal as the global order.
	Externalized
)

func (o Ordering) String() string {
	if o == Externalized {
		return "externalized"
	}
	return "zorder"
}

// Index is immutable after Construct.
type Index struct {
	n        uint64
	k        int
	ordering Ordering
	order    []uint32 // order[pos] = original point index at global-order position pos
	dicts    []*rankspace.Dict
	matrices []*wavelet.Matrix
}

// Construct builds a KDW-tree over points (n rows of k coordinates each).
// points must satisfy floatcode.CheckPoints: n >= 1, k in [2,31], every
// coordinate finite, rows equal length.
func Construct(points [][]float64, ordering Ordering) (*Index, error) {
	n, k, err := floatcode.CheckPoints(points)
	if err != nil {
		return nil, err
	}

	encoded := make([][]uint64, k)
	for d := 0; d < k; d++ {
		encoded[d] = make([]uint64, n)
		for i, p := range points {
			encoded[d][i] = floatcode.Encode(p[d])
		}
	}

	var order []uint32
	switch ordering {
	case ZOrder:
		order = buildZOrder(encoded, n, k)
	case Externalized:
		order = buildExternalized(encoded, n, k)
	default:
		errutil.Bug("kdw: unknown ordering %d", ordering)
	}

	dicts := make([]*rankspace.Dict, k)
	matrices := make([]*wavelet.Matrix, k)
	for d := 0; d < k; d++ {
		dicts[d] = rankspace.Build(encoded[d])
		ranks := make([]uint64, n)
		for pos, origIdx := range order {
			rank, exact := dicts[d].Real2Denserank(encoded[d][origIdx])
			errutil.BugOn(!exact, "kdw: dense rank lookup missed its own value")
			ranks[pos] = rank
		}
		depth := bitsFor(dicts[d].DenserankMax())
		matrices[d] = wavelet.Build(ranks, depth)

		if (d+1)%leafSize == 0 || d == k-1 {
			memreport.LogVariantChoice(fmt.Sprintf("dim-%d wavelet built (depth=%d, distinct=%d)", d, depth, dicts[d].Len()))
		}
	}

	return &Index{n: uint64(n), k: k, ordering: ordering, order: order, dicts: dicts, matrices: matrices}, nil
}

func bitsFor(maxVal uint64) uint {
	d := uint(1)
	for (uint64(1)<<d)-1 < maxVal {
		d++
	}
	return d
}

func buildZOrder(encoded [][]uint64, n, k int) []uint32 {
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	points := make([][]uint64, n)
	for i := 0; i < n; i++ {
		row := make([]uint64, k)
		for d := 0; d < k; d++ {
			row[d] = encoded[d][i]
		}
		points[i] = row
	}
	zorder.Sort(idx, points)
	return idx
}

func buildExternalized(encoded [][]uint64, n, k int) []uint32 {
	coord := func(i uint32, d int) float64 { return float64(encoded[d][i]) }
	t := kdtree.Build(n, k, coord)
	return t.Order
}

// Len returns the number of points indexed.
func (idx *Index) Len() uint64 { return idx.n }

// Dims returns k, the point dimensionality.
func (idx *Index) Dims() int { return idx.k }

// Count returns the number of points inside the closed rectangle [min, max].
func (idx *Index) Count(min, max []float64) (uint64, error) {
	rect, err := floatcode.CheckRectangle(min, max, idx.k)
	if err != nil {
		return 0, err
	}
	rr := toRankRect(idx.dicts, rect)
	var total uint64
	idx.descend(rr, func(r posRange) { total += r.e - r.s })
	return total, nil
}

// Report returns the original indices (as passed to Construct) of every
// point inside the closed rectangle [min, max]. Order is the descent's
// emission order, not guaranteed to match input order.
func (idx *Index) Report(min, max []float64) ([]uint32, error) {
	rect, err := floatcode.CheckRectangle(min, max, idx.k)
	if err != nil {
		return nil, err
	}
	rr := toRankRect(idx.dicts, rect)
	var out []uint32
	idx.descend(rr, func(r posRange) {
		for p := r.s; p < r.e; p++ {
			out = append(out, idx.order[p])
		}
	})
	return out, nil
}

// Sample draws up to k distinct matching points uniformly at random from
// the closed rectangle [min, max], without materialising the full match set
// (spec.md §4.7/§6). If the rectangle matches F <= k points, Sample returns
// all F of them.
func (idx *Index) Sample(rng *rand.Rand, min, max []float64, k uint64) ([]uint32, error) {
	rect, err := floatcode.CheckRectangle(min, max, idx.k)
	if err != nil {
		return nil, err
	}
	rr := toRankRect(idx.dicts, rect)

	store := interval.NewStore()
	idx.descend(rr, func(r posRange) {
		store.Add(interval.Tagged{Level: -1, S: r.s, E: r.e})
	})
	total := store.TotalWidth()
	if k > total {
		k = total
	}
	if k == 0 {
		return nil, nil
	}

	picks := permute.Sample(rng, total, k)
	out := make([]uint32, len(picks))
	for i, offset := range picks {
		out[i] = idx.order[locate(store.Items(), offset)]
	}
	return out, nil
}

// locate maps a flat offset into the concatenation of ranges back to the
// absolute global-order position it names.
func locate(ranges []interval.Tagged, offset uint64) uint64 {
	for _, r := range ranges {
		width := r.Width()
		if offset < width {
			return r.S + offset
		}
		offset -= width
	}
	errutil.Bug("kdw: sample offset out of range")
	return 0
}

// PointAt reconstructs the k real coordinates of the point at global-order
// position pos, without any stored copy of the original point set: each
// coordinate is recovered as matrices[d].Access(pos) -> dense rank ->
// rankspace.Denserank2Real -> floatcode.Decode.
func (idx *Index) PointAt(pos uint64) []float64 {
	errutil.BugOn(pos >= idx.n, "kdw: PointAt position out of bounds")
	out := make([]float64, idx.k)
	for d := 0; d < idx.k; d++ {
		rank := idx.matrices[d].Access(pos)
		enc := idx.dicts[d].Denserank2Real(rank)
		out[d] = floatcode.Decode(enc)
	}
	return out
}

// MemReport breaks down the Index's resident memory by component.
func (idx *Index) MemReport() memreport.Report {
	r := memreport.Report{Name: "kdw.Index"}
	orderBytes := len(idx.order) * 4
	r.Children = append(r.Children, memreport.Report{Name: "order", TotalBytes: orderBytes})
	for d := 0; d < idx.k; d++ {
		r.Children = append(r.Children, memreport.Report{
			Name:       fmt.Sprintf("dim-%d", d),
			TotalBytes: idx.dicts[d].ByteSize() + idx.matrices[d].ByteSize(),
		})
	}
	r.TotalBytes = r.SumChildren()
	return r
}
