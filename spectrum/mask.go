package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-zeeman/core"
)

// Range is a half-open index range [Start, End) to excise.
type Range struct {
	Start int
	End   int
}

// Masked is a window with one or more index ranges removed.
type Masked struct {
	Wavelength []float64
	Flux       []float64
}

// Len returns the number of surviving samples.
func (m Masked) Len() int { return len(m.Wavelength) }

// Excise returns a copy of (wavelength, flux) with every range removed.
//
// All ranges index the unmasked input. The result equals deleting the ranges
// one at a time in descending order of Start, so the order in which ranges
// are given does not matter and overlapping ranges simply merge. Bounds
// beyond the input are clamped; reversed ranges remove nothing. The inputs
// are not modified.
func Excise(wavelength, flux []float64, ranges ...Range) (Masked, error) {
	if len(wavelength) != len(flux) {
		return Masked{}, core.ShapeMismatch("wavelength/flux", len(wavelength), len(flux))
	}

	n := len(wavelength)
	drop := make([]bool, n)

	for _, r := range ranges {
		start := max(r.Start, 0)
		end := min(r.End, n)

		for i := start; i < end; i++ {
			drop[i] = true
		}
	}

	out := Masked{
		Wavelength: make([]float64, 0, n),
		Flux:       make([]float64, 0, n),
	}

	for i := range n {
		if drop[i] {
			continue
		}

		out.Wavelength = append(out.Wavelength, wavelength[i])
		out.Flux = append(out.Flux, flux[i])
	}

	return out, nil
}

// ExciseWavelengths resolves each [low, high] band to a Range with
// SliceByWavelength semantics on s and excises them all from s.
// Bands that resolve to no samples are reported as core.ErrInvalidRegion.
func ExciseWavelengths(s Spectrum, bands ...[2]float64) (Masked, []Range, error) {
	ranges := make([]Range, 0, len(bands))

	for _, b := range bands {
		r, err := SliceByWavelength(s, b[0], b[1])
		if err != nil {
			return Masked{}, nil, fmt.Errorf("excise band [%v, %v]: %w", b[0], b[1], err)
		}

		ranges = append(ranges, r.Range())
	}

	m, err := Excise(s.Wavelength, s.Flux, ranges...)

	return m, ranges, err
}
