// Package core holds the error taxonomy and small numeric helpers shared by
// the spectrum, fit and measure packages.
//
// Every failure surfaced by the analysis wraps one of the sentinel errors
// below, so callers can classify it with [errors.Is]:
//
//	if errors.Is(err, core.ErrFitConvergence) {
//	    var ce *core.ConvergenceError
//	    errors.As(err, &ce) // last solver state
//	}
package core
