package testutil

import (
	"math/rand"
)

// Grid returns n samples start, start+step, ...
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with
// a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Cubic evaluates a·x³ + b·x² + c·x + d at every x.
func Cubic(x []float64, a, b, c, d float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = ((a*xi+b)*xi+c)*xi + d
	}
	return out
}

// Triplet describes three Lorentzian dips centred at λ₀−Δλ, λ₀, λ₀+Δλ. The
// outer pair share Amp1/Wid1.
type Triplet struct {
	Lambda0, Shift float64
	Amp1, Wid1     float64
	Amp2, Wid2     float64
}

// Depth returns the summed Lorentzian depth at x.
func (tr Triplet) Depth(x float64) float64 {
	lor := func(amp, center, wid float64) float64 {
		d := x - center
		return amp * wid * wid / (d*d + wid*wid)
	}
	return lor(tr.Amp1, tr.Lambda0-tr.Shift, tr.Wid1) +
		lor(tr.Amp2, tr.Lambda0, tr.Wid2) +
		lor(tr.Amp1, tr.Lambda0+tr.Shift, tr.Wid1)
}

// SyntheticSpectrum returns (wavelength, flux, error) columns of a cubic
// continuum multiplied by 1 − tr.Depth. Errors are a constant fraction of
// the flux.
func SyntheticSpectrum(x []float64, cubic [4]float64, tr Triplet) (flux, errs []float64) {
	cont := Cubic(x, cubic[0], cubic[1], cubic[2], cubic[3])
	flux = make([]float64, len(x))
	errs = make([]float64, len(x))
	for i, xi := range x {
		flux[i] = cont[i] * (1 - tr.Depth(xi))
		errs[i] = 0.01 * cont[i]
	}
	return flux, errs
}
