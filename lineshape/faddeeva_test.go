package lineshape

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFaddeevaReferenceValues(t *testing.T) {
	tests := []struct {
		z    complex128
		want complex128
	}{
		{z: 0, want: 1},
		{z: 1i, want: 0.42758357615580700442},          // erfcx(1)
		{z: 1 + 1i, want: 0.30474420525691259 + 0.20821893820283162i},
		{z: 0.5, want: complex(math.Exp(-0.25), 0.47892517290105713)}, // exp(-x²) + 2i/√π·D(x)
		{z: 3 + 0.5i, want: 0.037126366054692495 + 0.1929837553003618i},
	}

	for _, tt := range tests {
		got := Faddeeva(tt.z)
		if cmplx.Abs(got-tt.want) > 1e-10 {
			t.Fatalf("w(%v) = %v, want %v", tt.z, got, tt.want)
		}
	}
}

func TestFaddeevaLowerHalfPlane(t *testing.T) {
	// w(−z) = 2·exp(−z²) − w(z) holds everywhere.
	for _, z := range []complex128{0.3 + 0.4i, -1.2 + 0.1i, 2 + 2i} {
		lhs := Faddeeva(-z)
		rhs := 2*cmplx.Exp(-z*z) - Faddeeva(z)
		if cmplx.Abs(lhs-rhs) > 1e-10 {
			t.Fatalf("reflection at %v: %v vs %v", z, lhs, rhs)
		}
	}
}

func TestFaddeevaRealAxisIsGaussian(t *testing.T) {
	for _, x := range []float64{-3, -1, -0.2, 0, 0.7, 2.5} {
		if got := real(Faddeeva(complex(x, 0))); math.Abs(got-math.Exp(-x*x)) > 1e-12 {
			t.Fatalf("Re w(%v) = %v, want %v", x, got, math.Exp(-x*x))
		}
	}
}

func TestLowerOrderIsCoarser(t *testing.T) {
	w, err := NewWeideman(16)
	if err != nil {
		t.Fatalf("NewWeideman() error = %v", err)
	}
	got := w.Eval(1 + 1i)
	want := complex(0.30474420525691259, 0.20821893820283162)
	if d := cmplx.Abs(got - want); d > 1e-5 {
		t.Fatalf("order 16: |w - ref| = %v", d)
	}

	if _, err := NewWeideman(0); err == nil {
		t.Fatal("expected error for order 0")
	}
}

func BenchmarkFaddeeva(b *testing.B) {
	z := complex(1.3, 0.4)
	for b.Loop() {
		_ = Faddeeva(z)
	}
}
