package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-zeeman/core"
)

// Spectrum is an ordered set of (wavelength, flux, error) samples.
// Wavelength is strictly increasing. The slices must not be modified.
type Spectrum struct {
	Wavelength []float64
	Flux       []float64
	Error      []float64
}

// New validates the three columns and returns a Spectrum that shares them.
func New(wavelength, flux, errs []float64) (Spectrum, error) {
	if len(wavelength) == 0 {
		return Spectrum{}, fmt.Errorf("%w: spectrum has no samples", core.ErrEmptyInput)
	}

	if len(flux) != len(wavelength) {
		return Spectrum{}, core.ShapeMismatch("wavelength/flux", len(wavelength), len(flux))
	}

	if len(errs) != len(wavelength) {
		return Spectrum{}, core.ShapeMismatch("wavelength/error", len(wavelength), len(errs))
	}

	for i := 1; i < len(wavelength); i++ {
		if !(wavelength[i] > wavelength[i-1]) {
			return Spectrum{}, fmt.Errorf("%w: wavelength not strictly increasing at index %d (%v after %v)",
				core.ErrInvalidRegion, i, wavelength[i], wavelength[i-1])
		}
	}

	return Spectrum{Wavelength: wavelength, Flux: flux, Error: errs}, nil
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.Wavelength) }

// Slice returns the samples of r as a Spectrum sharing the receiver's
// storage. Capacity is clipped so appends never write into the parent.
// r must satisfy 0 <= Start <= End <= Len().
func (s Spectrum) Slice(r Region) Spectrum {
	out := Spectrum{
		Wavelength: s.Wavelength[r.Start:r.End:r.End],
		Flux:       s.Flux[r.Start:r.End:r.End],
	}

	if s.Error != nil {
		out.Error = s.Error[r.Start:r.End:r.End]
	}

	return out
}
