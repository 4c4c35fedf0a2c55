package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput reports that a sequence or region holds no samples.
	ErrEmptyInput = errors.New("zeeman: empty input")
	// ErrInvalidRegion reports a degenerate or out-of-bounds region.
	ErrInvalidRegion = errors.New("zeeman: invalid region")
	// ErrShapeMismatch reports paired sequences of different lengths.
	ErrShapeMismatch = errors.New("zeeman: shape mismatch")
	// ErrFitConvergence reports a solver that did not converge or a singular covariance.
	ErrFitConvergence = errors.New("zeeman: fit did not converge")
	// ErrParse reports a malformed input line.
	ErrParse = errors.New("zeeman: parse error")
	// ErrDivisionByZero reports a zero continuum value during normalization.
	ErrDivisionByZero = errors.New("zeeman: division by zero")
	// ErrInvalidSample reports a non-finite data value or a non-positive
	// uncertainty handed to a fit.
	ErrInvalidSample = errors.New("zeeman: invalid sample")
)

// ShapeMismatch returns an error wrapping ErrShapeMismatch that names the
// offending sequences.
func ShapeMismatch(what string, a, b int) error {
	return fmt.Errorf("%w: %s lengths %d and %d", ErrShapeMismatch, what, a, b)
}

// ParseError identifies a malformed line of a spectrum file.
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // offending line, trimmed
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("zeeman: parse error at line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Is makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// DivisionByZeroError identifies the first zero divisor met during normalization.
type DivisionByZeroError struct {
	Index int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("zeeman: division by zero: continuum is zero at index %d", e.Index)
}

// Is makes errors.Is(err, ErrDivisionByZero) hold for every DivisionByZeroError.
func (e *DivisionByZeroError) Is(target error) bool { return target == ErrDivisionByZero }

// ConvergenceError carries the last solver state of a failed fit.
type ConvergenceError struct {
	Stage       string    // "continuum", "voigt", "lorentzian", ...
	Reason      string    // human readable cause
	Params      []float64 // last parameter vector, nil if unavailable
	RSS         float64   // residual sum of squares at Params
	Evaluations int       // model evaluations spent by the solver
}

func (e *ConvergenceError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "zeeman: %s fit did not converge: %s", e.Stage, e.Reason)

	if e.Params != nil {
		fmt.Fprintf(&b, " (evaluations=%d rss=%.6g params=%v)", e.Evaluations, e.RSS, e.Params)
	}

	return b.String()
}

// Is makes errors.Is(err, ErrFitConvergence) hold for every ConvergenceError.
func (e *ConvergenceError) Is(target error) bool { return target == ErrFitConvergence }
