// Package continuum fits the slowly varying background of a spectrum with a
// cubic polynomial and divides it out.
//
// The fit runs in a centred, scaled variable u = (x − c)/s with the flux
// scaled to unit peak, so wavelengths near 6500 Å do not make the normal
// equations ill conditioned. Coefficients and covariance are reported for
// the raw form y = a·x³ + b·x² + c·x + d.
package continuum

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-zeeman/core"
	"github.com/cwbudde/algo-zeeman/fit"
)

// Degree is the polynomial degree of the continuum.
const Degree = 3

const nCoeffs = Degree + 1

// DefaultSeed is the initial guess (a, b, c, d).
var DefaultSeed = [nCoeffs]float64{1, 1, 1, 1}

// Model is a fitted cubic y = a·x³ + b·x² + c·x + d.
type Model struct {
	// Coeffs holds (a, b, c, d), highest power first.
	Coeffs     [nCoeffs]float64
	Covariance [nCoeffs][nCoeffs]float64
	// RSS is the residual sum of squares on the fitted samples.
	RSS         float64
	DOF         int
	Evaluations int
}

// At evaluates the polynomial at x.
func (m Model) At(x float64) float64 {
	a, b, c, d := m.Coeffs[0], m.Coeffs[1], m.Coeffs[2], m.Coeffs[3]
	return ((a*x+b)*x+c)*x + d
}

// Eval evaluates the polynomial at every x.
func (m Model) Eval(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = m.At(xi)
	}

	return out
}

// Sigmas returns the 1-sigma uncertainties of (a, b, c, d).
func (m Model) Sigmas() [nCoeffs]float64 {
	var out [nCoeffs]float64
	for i := range out {
		out[i] = math.Sqrt(m.Covariance[i][i])
	}

	return out
}

// Fit performs a least-squares fit of the cubic to (x, y) starting from seed
// (a, b, c, d). A solver failure wraps core.ErrFitConvergence.
func Fit(x, y []float64, seed [nCoeffs]float64, opts ...fit.Option) (Model, error) {
	if len(x) != len(y) {
		return Model{}, core.ShapeMismatch("continuum wavelength/flux", len(x), len(y))
	}

	if len(x) == 0 {
		return Model{}, fmt.Errorf("%w: no continuum samples", core.ErrEmptyInput)
	}

	sc := newScaling(x, y)

	u := make([]float64, len(x))
	v := make([]float64, len(y))

	for i := range x {
		u[i] = (x[i] - sc.center) / sc.span
		v[i] = y[i] / sc.flux
	}

	res, err := fit.Solve(fit.Problem{
		Stage:    "continuum",
		Model:    polynomial,
		Gradient: polynomialGradient,
		X:        u,
		Y:        v,
		Seed:     sc.toScaled(seed),
	}, opts...)
	if err != nil {
		return Model{}, err
	}

	t := sc.transform()

	q := mat.NewVecDense(nCoeffs, slices.Clone(res.Params))

	var raw mat.VecDense
	raw.MulVec(t, q)

	cq := mat.NewDense(nCoeffs, nCoeffs, nil)
	for r := range nCoeffs {
		for c := range nCoeffs {
			cq.Set(r, c, res.Covariance[r][c])
		}
	}

	var cov mat.Dense
	cov.Product(t, cq, t.T())

	m := Model{
		RSS:         res.RSS * sc.flux * sc.flux,
		DOF:         res.DOF,
		Evaluations: res.Evaluations,
	}

	// raw and cov are ascending in power; Model stores highest power first.
	for j := range nCoeffs {
		m.Coeffs[Degree-j] = raw.AtVec(j)
		for k := range nCoeffs {
			m.Covariance[Degree-j][Degree-k] = cov.At(j, k)
		}
	}

	return m, nil
}

// polynomial evaluates Σ p[k]·x^k (ascending powers).
func polynomial(dst, x, p []float64) {
	for i, xi := range x {
		var y float64
		for k := len(p) - 1; k >= 0; k-- {
			y = y*xi + p[k]
		}

		dst[i] = y
	}
}

// polynomialGradient writes x[i]^k, which does not depend on the coefficients.
func polynomialGradient(dst *mat.Dense, x, p []float64) {
	for i, xi := range x {
		pow := 1.0
		for k := range p {
			dst.Set(i, k, pow)
			pow *= xi
		}
	}
}

// scaling maps x → (x − center)/span and y → y/flux.
type scaling struct {
	center, span, flux float64
}

func newScaling(x, y []float64) scaling {
	lo, hi := slices.Min(x), slices.Max(x)

	sc := scaling{center: (lo + hi) / 2, span: (hi - lo) / 2, flux: 0}
	if sc.span == 0 {
		sc.span = 1
	}

	for _, v := range y {
		sc.flux = math.Max(sc.flux, math.Abs(v))
	}

	if sc.flux == 0 {
		sc.flux = 1
	}

	return sc
}

// transform returns T with raw = T·q for ascending coefficient vectors:
// T[j][k] = flux·C(k, j)·(−center)^(k−j) / span^k for k ≥ j.
func (sc scaling) transform() *mat.Dense {
	t := mat.NewDense(nCoeffs, nCoeffs, nil)

	for k := range nCoeffs {
		sk := math.Pow(sc.span, float64(k))
		for j := 0; j <= k; j++ {
			t.Set(j, k, sc.flux*binomial(k, j)*math.Pow(-sc.center, float64(k-j))/sk)
		}
	}

	return t
}

// toScaled converts a raw (a, b, c, d) guess to ascending scaled coefficients:
// q_k = span^k/flux · Σ_{j≥k} r_j·C(j, k)·center^(j−k).
func (sc scaling) toScaled(seed [nCoeffs]float64) []float64 {
	var r [nCoeffs]float64
	for j := range nCoeffs {
		r[j] = seed[Degree-j]
	}

	q := make([]float64, nCoeffs)
	for k := range nCoeffs {
		var sum float64
		for j := k; j < nCoeffs; j++ {
			sum += r[j] * binomial(j, k) * math.Pow(sc.center, float64(j-k))
		}

		q[k] = sum * math.Pow(sc.span, float64(k)) / sc.flux
	}

	return q
}

func binomial(n, k int) float64 {
	out := 1.0
	for i := 1; i <= k; i++ {
		out = out * float64(n-k+i) / float64(i)
	}

	return out
}
