package residual

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-zeeman/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func alternating(val float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = val
		} else {
			out[i] = -val
		}
	}

	return out
}

func TestCalculateEmpty(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v, want zero", s)
	}
}

func TestCalculateAlternating(t *testing.T) {
	r := alternating(0.5, 100)
	s := Calculate(r)

	if s.Length != 100 || !almostEqual(s.Mean, 0, tolerance) || !almostEqual(s.RMS, 0.5, tolerance) {
		t.Fatalf("length/mean/rms = %d/%v/%v", s.Length, s.Mean, s.RMS)
	}

	if s.Runs != 100 {
		t.Fatalf("runs = %d, want 100", s.Runs)
	}

	if s.RunsZ <= 0 {
		t.Fatalf("alternating signs should give positive z, got %v", s.RunsZ)
	}

	// Each difference is ±1 and each square 0.25: 99·1/(100·0.25).
	if !almostEqual(s.DurbinWatson, 3.96, tolerance) {
		t.Fatalf("Durbin–Watson = %v, want 3.96", s.DurbinWatson)
	}
}

func TestClusteredResiduals(t *testing.T) {
	r := make([]float64, 200)
	for i := range r {
		r[i] = math.Sin(2 * math.Pi * float64(i) / 200)
	}

	s := Calculate(r)

	if s.Runs > 3 {
		t.Fatalf("runs = %d, want ≤3 for one sine period", s.Runs)
	}

	if s.RunsZ > -5 {
		t.Fatalf("z = %v, want strongly negative", s.RunsZ)
	}

	if s.DurbinWatson > 0.01 {
		t.Fatalf("Durbin–Watson = %v, want ≈0", s.DurbinWatson)
	}
}

func TestWhiteNoiseLooksIndependent(t *testing.T) {
	s := Calculate(testutil.DeterministicNoise(11, 1, 5000))

	if math.Abs(s.RunsZ) > 4 {
		t.Fatalf("runs z = %v for independent noise", s.RunsZ)
	}

	if math.Abs(s.DurbinWatson-2) > 0.2 {
		t.Fatalf("Durbin–Watson = %v, want ≈2", s.DurbinWatson)
	}

	// Uniform noise has excess kurtosis −1.2.
	if math.Abs(s.Kurtosis+1.2) > 0.1 {
		t.Fatalf("kurtosis = %v, want ≈−1.2", s.Kurtosis)
	}
}

func TestMaxAbs(t *testing.T) {
	s := Calculate([]float64{0.1, -0.7, 0.3, 0.7})
	if s.MaxAbs != 0.7 || s.MaxAbsPos != 1 {
		t.Fatalf("max abs = %v at %d, want 0.7 at 1", s.MaxAbs, s.MaxAbsPos)
	}
}

func TestMoments(t *testing.T) {
	mean, variance, skewness, kurtosis := Moments([]float64{1, 2, 3, 4, 5})

	if !almostEqual(mean, 3, tolerance) || !almostEqual(variance, 2, tolerance) {
		t.Fatalf("mean/variance = %v/%v", mean, variance)
	}

	if !almostEqual(skewness, 0, tolerance) {
		t.Fatalf("skewness = %v, want 0", skewness)
	}

	// Discrete uniform on 5 points: μ₄/σ⁴ = 6.8/4 = 1.7.
	if !almostEqual(kurtosis, 1.7-3, tolerance) {
		t.Fatalf("kurtosis = %v, want −1.3", kurtosis)
	}
}

func TestDegenerate(t *testing.T) {
	if runs, z := RunsTest([]float64{0, 0, 1}); runs != 1 || z != 0 {
		t.Fatalf("RunsTest = %d, %v", runs, z)
	}

	if dw := DurbinWatson([]float64{0, 0}); dw != 0 {
		t.Fatalf("DurbinWatson(zeros) = %v", dw)
	}
}

func BenchmarkCalculate(b *testing.B) {
	r := testutil.DeterministicNoise(3, 1, 4096)

	for b.Loop() {
		Calculate(r)
	}
}
