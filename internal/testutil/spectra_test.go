package testutil

import (
	"math"
	"testing"
)

func TestGrid(t *testing.T) {
	g := Grid(6200, 0.5, 5)
	RequireSliceNearlyEqual(t, g, []float64{6200, 6200.5, 6201, 6201.5, 6202}, 0)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("non-deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestCubic(t *testing.T) {
	got := Cubic([]float64{0, 1, 2}, 1, -2, 3, -4)
	RequireSliceNearlyEqual(t, got, []float64{-4, -2, 2}, 1e-15)
}

func TestTripletDepth(t *testing.T) {
	tr := Triplet{Lambda0: 6562.8, Shift: 30, Amp1: 0.3, Wid1: 3, Amp2: 0.4, Wid2: 3}
	if d := tr.Depth(6562.8); math.Abs(d-0.4) > 0.01 {
		t.Fatalf("depth at center = %v, want ≈0.4", d)
	}
	if l, r := tr.Depth(6532.8), tr.Depth(6592.8); math.Abs(l-r) > 1e-12 {
		t.Fatalf("outer depths differ: %v vs %v", l, r)
	}
}

func TestSyntheticSpectrum(t *testing.T) {
	x := Grid(6000, 1, 100)
	flux, errs := SyntheticSpectrum(x, [4]float64{0, 0, 0, 2}, Triplet{})
	RequireSliceNearlyEqual(t, flux, Cubic(x, 0, 0, 0, 2), 0)
	for _, e := range errs {
		if e != 0.02 {
			t.Fatalf("error = %v, want 0.02", e)
		}
	}
}
