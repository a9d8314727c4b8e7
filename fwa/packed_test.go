package fwa

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackedArrayGetSet32(t *testing.T) {
	t.Parallel()
	testPackedArrayGetSet[uint32](t, 5)
	testPackedArrayGetSet[uint32](t, 17)
}

func TestPackedArrayGetSet64(t *testing.T) {
	t.Parallel()
	testPackedArrayGetSet[uint64](t, 40)
	testPackedArrayGetSet[uint64](t, 64)
}

func testPackedArrayGetSet[W Word](t *testing.T, width uint) {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(width) * 7919))
	n := uint64(500)
	a := NewPackedArray[W](n, width)

	max := uint64(1)<<width - 1
	if width == 64 {
		max = ^uint64(0)
	}
	want := make([]uint64, n)
	for i := range want {
		v := uint64(rng.Int63()) & max
		if width == 64 {
			v = rng.Uint64()
		}
		want[i] = v
		a.Set(uint64(i), v)
	}
	for i, v := range want {
		require.Equalf(t, v, a.Get(uint64(i)), "width=%d index=%d", width, i)
	}
}

func TestPackedArrayZeroWidth(t *testing.T) {
	t.Parallel()
	a := NewPackedArray[uint64](10, 0)
	for i := uint64(0); i < 10; i++ {
		if a.Get(i) != 0 {
			t.Fatalf("zero-width field must read back 0")
		}
	}
}
