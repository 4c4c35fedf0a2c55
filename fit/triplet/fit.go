package triplet

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-zeeman/fit"
	"github.com/cwbudde/algo-zeeman/zeeman"
)

// shiftStep is the λ₀ step used to differentiate the splitting law.
const shiftStep = 1e-3

// Data is a clipped, continuum-normalised window.
type Data struct {
	Wavelength []float64
	Flux       []float64
	// Sigma holds optional normalised per-sample errors used as weights.
	Sigma []float64
}

// Result is a triplet fit with named parameters.
type Result struct {
	fit.Result

	Model string
	Law   string
	Names []string
	// Shift is Δλ at the fitted (λ₀, B) and ShiftSigma its propagated 1-sigma error.
	Shift      float64
	ShiftSigma float64
	// Components holds the fitted σ⁻, π and σ⁺ lines.
	Components [3]Component
}

// Param returns the value and 1-sigma uncertainty of the named parameter.
func (r Result) Param(name string) (value, sigma float64, ok bool) {
	i := slices.Index(r.Names, name)
	if i < 0 {
		return 0, 0, false
	}

	return r.Params[i], r.Sigmas[i], true
}

// Fit fits m to d from seed.
func Fit(m Model, d Data, seed []float64, opts ...fit.Option) (Result, error) {
	names := m.ParamNames()
	if len(seed) != len(names) {
		return Result{}, fmt.Errorf("triplet: %s seed has %d parameters, want %d", m.Name(), len(seed), len(names))
	}

	res, err := fit.Solve(fit.Problem{
		Stage: m.Name(),
		Model: m.Eval,
		X:     d.Wavelength,
		Y:     d.Flux,
		Sigma: d.Sigma,
		Seed:  seed,
	}, opts...)
	if err != nil {
		return Result{}, err
	}

	canonicalize(&res, m.even())

	law := m.Law()
	lambda0, b := res.Params[0], res.Params[1]
	dShiftdLambda := (law.Shift(lambda0+shiftStep, b) - law.Shift(lambda0-shiftStep, b)) / (2 * shiftStep)
	dShiftdB := law.Shift(lambda0, 1)

	variance := dShiftdLambda*dShiftdLambda*res.Covariance[0][0] +
		2*dShiftdLambda*dShiftdB*res.Covariance[0][1] +
		dShiftdB*dShiftdB*res.Covariance[1][1]

	return Result{
		Result:     res,
		Model:      m.Name(),
		Law:        law.Name(),
		Names:      names,
		Shift:      law.Shift(lambda0, b),
		ShiftSigma: math.Sqrt(math.Max(variance, 0)),
		Components: m.Components(res.Params),
	}, nil
}

// FitVoigt fits the triple-Voigt model.
func FitVoigt(d Data, seed VoigtParams, law zeeman.Law, opts ...fit.Option) (Result, error) {
	return Fit(Voigt{SplittingLaw: law}, d, seed.Slice(), opts...)
}

// FitLorentzian fits the triple-Lorentzian model.
func FitLorentzian(d Data, seed LorentzianParams, law zeeman.Law, opts ...fit.Option) (Result, error) {
	return Fit(Lorentzian{SplittingLaw: law}, d, seed.Slice(), opts...)
}

// canonicalize flips negative parameters the model is even in. Flipping a
// parameter negates its covariance row and column.
func canonicalize(res *fit.Result, even []int) {
	for _, i := range even {
		if res.Params[i] >= 0 {
			continue
		}

		res.Params[i] = -res.Params[i]

		for k := range res.Covariance {
			if k == i {
				continue
			}

			res.Covariance[i][k] = -res.Covariance[i][k]
			res.Covariance[k][i] = -res.Covariance[k][i]
		}
	}
}
