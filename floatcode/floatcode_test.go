package floatcode

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	values := []float64{0, -0.0, 1, -1, 3.14159, -3.14159, math.MaxFloat64, -math.MaxFloat64, 1e-300, -1e-300}
	for _, v := range values {
		got := Decode(Encode(v))
		if v == 0 {
			assert.Zero(t, got, "round trip for zero")
			continue
		}
		assert.Equal(t, v, got, "round trip failed for %v", v)
	}
}

func TestEncodeOrderPreserving(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 2000)
	for i := range values {
		bits := rng.Uint64()
		f := math.Float64frombits(bits)
		if math.IsNaN(f) {
			f = 0
		}
		values[i] = f
	}
	values = append(values, 0, -0.0, math.Inf(1), math.Inf(-1), 1, -1)

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] > sorted[i] {
			continue
		}
		a, b := Encode(sorted[i-1]), Encode(sorted[i])
		if a > b {
			t.Fatalf("encoding not order preserving: Encode(%v)=%d > Encode(%v)=%d", sorted[i-1], a, sorted[i], b)
		}
	}
}

func TestCheckFinite(t *testing.T) {
	t.Parallel()
	if err := CheckFinite(1.0, "x"); err != nil {
		t.Errorf("unexpected error for finite value: %v", err)
	}
	if err := CheckFinite(math.NaN(), "x"); err == nil {
		t.Errorf("expected error for NaN")
	}
	if err := CheckFinite(math.Inf(1), "x"); err == nil {
		t.Errorf("expected error for +Inf")
	}
}

func TestCheckPoints(t *testing.T) {
	t.Parallel()
	if _, _, err := CheckPoints(nil); err == nil {
		t.Errorf("expected error for empty point set")
	}
	if _, _, err := CheckPoints([][]float64{{1}}); err == nil {
		t.Errorf("expected error for k < 2")
	}
	if _, _, err := CheckPoints([][]float64{{1, 2}, {1}}); err == nil {
		t.Errorf("expected error for ragged rows")
	}
	n, k, err := CheckPoints([][]float64{{1, 2}, {3, 4}})
	if err != nil || n != 2 || k != 2 {
		t.Errorf("unexpected result: n=%d k=%d err=%v", n, k, err)
	}
}

func TestCheckRectangleEmpty(t *testing.T) {
	t.Parallel()
	r, err := CheckRectangle([]float64{5, 5}, []float64{1, 1}, 2)
	require.NoError(t, err)
	assert.True(t, r.Empty, "expected Empty rectangle when min > max")
}
