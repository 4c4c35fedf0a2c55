package continuum

import (
	"github.com/cwbudde/algo-zeeman/core"
)

// Normalize returns flux[i]/continuum[i]. A zero continuum value fails with
// a *core.DivisionByZeroError naming its index rather than producing ±Inf or
// NaN. The same operation scales per-sample errors.
func Normalize(flux, continuum []float64) ([]float64, error) {
	if len(flux) != len(continuum) {
		return nil, core.ShapeMismatch("flux/continuum", len(flux), len(continuum))
	}

	out := make([]float64, len(flux))

	for i, c := range continuum {
		if c == 0 {
			return nil, &core.DivisionByZeroError{Index: i}
		}

		out[i] = flux[i] / c
	}

	return out, nil
}
