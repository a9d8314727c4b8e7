// Package interval implements the tagged interval store and scratch-buffer
// arena of spec.md §3 and §6: a query's working set of root and inner
// intervals, and a reusable growable-int scratch buffer seeded at the
// spec's initial capacity. kdw.Index.Sample uses a fresh Store per call;
// no query path uses Scratch or Arena.
package interval

// initialScratchCapacity is spec.md §6's "initial scratch capacity" for a
// query's working buffers.
const initialScratchCapacity = 8192

// Tagged pairs a half-open position range with the matrix level it lives
// in; Root intervals (Level < 0) are already in the dimension's root
// coordinate order, Inner ones still need lifting.
type Tagged struct {
	Level int // -1 means Root
	S, E  uint64
}

func (t Tagged) Root() bool { return t.Level < 0 }
func (t Tagged) Width() uint64 { return t.E - t.S }

// Store accumulates Tagged intervals produced during one query's descent.
// Reset empties it while keeping its capacity.
type Store struct {
	items []Tagged
}

func NewStore() *Store {
	return &Store{items: make([]Tagged, 0, 64)}
}

func (s *Store) Reset()         { s.items = s.items[:0] }
func (s *Store) Add(t Tagged)   { s.items = append(s.items, t) }
func (s *Store) Items() []Tagged { return s.items }
func (s *Store) Len() int       { return len(s.items) }

// TotalWidth sums the widths of all stored intervals.
func (s *Store) TotalWidth() uint64 {
	var total uint64
	for _, t := range s.items {
		total += t.Width()
	}
	return total
}

// Scratch is a reusable growable buffer of uint64s, allocated once at
// initialScratchCapacity and reset (not reallocated) between queries.
type Scratch struct {
	buf []uint64
}

func NewScratch() *Scratch {
	return &Scratch{buf: make([]uint64, 0, initialScratchCapacity)}
}

func (s *Scratch) Reset()          { s.buf = s.buf[:0] }
func (s *Scratch) Append(v uint64) { s.buf = append(s.buf, v) }
func (s *Scratch) Slice() []uint64 { return s.buf }
func (s *Scratch) Len() int        { return len(s.buf) }

// Arena bundles a Store and two Scratch buffers that a caller can Reset and
// reuse across queries. The kdw descent engine and Count/Report/Sample do
// not take an Arena.
type Arena struct {
	Store   *Store
	Scratch *Scratch
	Aux     *Scratch // second scratch buffer
}

func NewArena() *Arena {
	return &Arena{Store: NewStore(), Scratch: NewScratch(), Aux: NewScratch()}
}

func (a *Arena) Reset() {
	a.Store.Reset()
	a.Scratch.Reset()
	a.Aux.Reset()
}
