package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-zeeman/core"
)

// Window is the subset of a spectrum strictly inside (Low, High).
type Window struct {
	Low, High  float64
	Wavelength []float64
	Flux       []float64
	Error      []float64 // nil when the source had no errors
}

// Len returns the number of samples in the window.
func (w Window) Len() int { return len(w.Wavelength) }

// Clip copies the samples whose wavelength lies strictly between low and
// high. errs may be nil. An empty result wraps core.ErrEmptyInput.
func Clip(wavelength, flux, errs []float64, low, high float64) (Window, error) {
	if len(flux) != len(wavelength) {
		return Window{}, core.ShapeMismatch("wavelength/flux", len(wavelength), len(flux))
	}

	if errs != nil && len(errs) != len(wavelength) {
		return Window{}, core.ShapeMismatch("wavelength/error", len(wavelength), len(errs))
	}

	w := Window{Low: low, High: high}

	for i, x := range wavelength {
		if x <= low || x >= high {
			continue
		}

		w.Wavelength = append(w.Wavelength, x)
		w.Flux = append(w.Flux, flux[i])

		if errs != nil {
			w.Error = append(w.Error, errs[i])
		}
	}

	if w.Len() == 0 {
		return Window{}, fmt.Errorf("%w: no samples strictly inside (%v, %v)", core.ErrEmptyInput, low, high)
	}

	return w, nil
}
