// Package fit drives non-linear least-squares fits with the
// Levenberg–Marquardt method and turns the solution into a [Result] with a
// covariance matrix and 1-sigma uncertainties.
//
// A [Problem] pairs a [Model] with data. The solver minimises
//
//	Σ ((model(xᵢ) − yᵢ) / σᵢ)²
//
// starting from the seed. The covariance is s²·(JᵀJ)⁻¹ with J the residual
// Jacobian at the solution and s² the reduced chi-square, which matches the
// relative-sigma convention of common curve-fitting tools.
//
// A fit that exhausts its evaluation budget, ends above the seed's
// objective, produces non-finite parameters or has a singular JᵀJ fails with
// a *core.ConvergenceError holding the last solver state. Nothing is
// reseeded or retried.
package fit
