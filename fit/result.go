package fit

import "math"

// Result is the outcome of a converged fit. It is not mutated after Solve
// returns.
type Result struct {
	Params     []float64
	Covariance [][]float64
	// Sigmas are the 1-sigma uncertainties √diag(Covariance).
	Sigmas []float64
	// Residuals are model(xᵢ) − yᵢ, unweighted.
	Residuals []float64
	// RSS is the unweighted residual sum of squares.
	RSS float64
	// ChiSquare is the weighted sum Σ(rᵢ/σᵢ)²; equal to RSS without weights.
	ChiSquare        float64
	DOF              int
	ReducedChiSquare float64
	Evaluations      int
}

func sigmasOf(cov [][]float64) []float64 {
	out := make([]float64, len(cov))
	for i := range cov {
		out[i] = math.Sqrt(cov[i][i])
	}

	return out
}
