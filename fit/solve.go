package fit

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-zeeman/core"
)


// Model writes model(x[i]; params) to dst[i].
type Model func(dst, x, params []float64)

// Gradient writes ∂model(x[i])/∂params[k] to dst, a len(x)×len(params) matrix.
type Gradient func(dst *mat.Dense, x, params []float64)

// Problem is a least-squares problem: fit Model to (X, Y) from Seed.
type Problem struct {
	// Stage names the fit in errors, e.g. "continuum" or "voigt".
	Stage string
	Model Model
	// Gradient is optional. Without it the Jacobian is taken by central differences.
	Gradient Gradient
	X, Y  []float64
	// Sigma holds optional per-sample uncertainties; nil weights all samples equally.
	Sigma []float64
	Seed  []float64
}

// Solve runs Levenberg–Marquardt on p and derives the covariance at the
// solution.
func Solve(p Problem, opts ...Option) (Result, error) {
	cfg := ApplyOptions(opts...)
	n, dim := len(p.X), len(p.Seed)

	if len(p.Y) != n {
		return Result{}, core.ShapeMismatch(p.Stage+" x/y", n, len(p.Y))
	}

	if p.Sigma != nil {
		if len(p.Sigma) != n {
			return Result{}, core.ShapeMismatch(p.Stage+" x/sigma", n, len(p.Sigma))
		}

		for i, s := range p.Sigma {
			if !(s > 0) || math.IsInf(s, 1) {
				return Result{}, fmt.Errorf("%w: %s sigma[%d] = %v", core.ErrInvalidSample, p.Stage, i, s)
			}
		}
	}

	for i := range p.X {
		if !core.IsFinite(p.X[i]) || !core.IsFinite(p.Y[i]) {
			return Result{}, fmt.Errorf("%w: %s sample %d is (%v, %v)",
				core.ErrInvalidSample, p.Stage, i, p.X[i], p.Y[i])
		}
	}

	if dim == 0 || n <= dim {
		return Result{}, fmt.Errorf("%w: %s fit has %d samples for %d parameters",
			core.ErrEmptyInput, p.Stage, n, dim)
	}

	residual := func(dst, params []float64) {
		p.Model(dst, p.X, params)

		for i := range dst {
			dst[i] -= p.Y[i]
			if p.Sigma != nil {
				dst[i] /= p.Sigma[i]
			}
		}
	}

	jacobian := func(dst *mat.Dense, params []float64) {
		if p.Gradient == nil {
			fd.Jacobian(dst, residual, params, &fd.JacobianSettings{Formula: fd.Central})
			return
		}

		p.Gradient(dst, p.X, params)

		if p.Sigma != nil {
			for i, s := range p.Sigma {
				row := dst.RawRowView(i)
				for k := range row {
					row[k] /= s
				}
			}
		}
	}

	seedResidual := make([]float64, n)
	residual(seedResidual, p.Seed)
	seedChi2 := sumSquares(seedResidual)

	budget := cfg.budget(dim)
	evaluations := 0

	counted := func(dst, params []float64) {
		evaluations++
		residual(dst, params)
	}

	problem := lm.LMProblem{
		Dim:        dim,
		Size:       n,
		Func:       counted,
		Jac:        jacobian,
		InitParams: slices.Clone(p.Seed),
		Tau:        cfg.Tau,
		Eps1:       cfg.GradientTol,
		Eps2:       cfg.StepTol,
	}

	solution, err := lm.LM(problem, &lm.Settings{Iterations: budget, ObjectiveTol: cfg.ObjectiveTol})
	if err != nil {
		return Result{}, &core.ConvergenceError{
			Stage:       p.Stage,
			Reason:      err.Error(),
			Params:      slices.Clone(p.Seed),
			RSS:         seedChi2,
			Evaluations: evaluations,
		}
	}

	params := slices.Clone(solution.X)
	weighted := make([]float64, n)
	residual(weighted, params)
	chi2 := sumSquares(weighted)

	fail := func(reason string) error {
		return &core.ConvergenceError{
			Stage:       p.Stage,
			Reason:      reason,
			Params:      params,
			RSS:         chi2,
			Evaluations: evaluations,
		}
	}

	switch {
	case !core.AllFinite(params) || !core.IsFinite(chi2):
		return Result{}, fail("non-finite parameters or objective")
	case evaluations >= budget:
		return Result{}, fail(fmt.Sprintf("evaluation budget of %d exhausted", budget))
	case chi2 > seedChi2:
		return Result{}, fail(fmt.Sprintf("objective rose from %.6g to %.6g", seedChi2, chi2))
	}

	dof := n - dim

	cov, err := covariance(jacobian, params, n, chi2/float64(dof))
	if err != nil {
		return Result{}, fail(err.Error())
	}

	resid := make([]float64, n)
	p.Model(resid, p.X, params)

	for i := range resid {
		resid[i] -= p.Y[i]
	}

	return Result{
		Params:           params,
		Covariance:       cov,
		Sigmas:           sigmasOf(cov),
		Residuals:        resid,
		RSS:              sumSquares(resid),
		ChiSquare:        chi2,
		DOF:              dof,
		ReducedChiSquare: chi2 / float64(dof),
		Evaluations:      evaluations,
	}, nil
}

// covariance returns scale·(JᵀJ)⁻¹ with J evaluated at params.
func covariance(jacobian func(*mat.Dense, []float64), params []float64, n int, scale float64) ([][]float64, error) {
	dim := len(params)

	j := mat.NewDense(n, dim, nil)
	jacobian(j, params)

	var jtj mat.SymDense
	jtj.SymOuterK(1, j.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&jtj); !ok {
		return nil, errors.New("singular JᵀJ: parameters are not identifiable from the data")
	}

	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("inverting JᵀJ: %w", err)
	}

	cov := make([][]float64, dim)
	for r := range dim {
		cov[r] = make([]float64, dim)
		for c := range dim {
			cov[r][c] = scale * inv.At(r, c)
		}

		if !core.IsFinite(cov[r][r]) || cov[r][r] < 0 {
			return nil, fmt.Errorf("covariance diagonal %d is %v", r, cov[r][r])
		}
	}

	return cov, nil
}

func sumSquares(r []float64) float64 {
	sq := make([]float64, len(r))
	vecmath.MulBlock(sq, r, r)

	var sum float64
	for _, v := range sq {
		sum += v
	}

	return sum
}
