// Package lineshape evaluates spectral line profiles: Gaussian, Lorentzian
// and Voigt, plus the Faddeeva function w(z) the Voigt profile is built on.
//
// The Voigt profile follows the area-normalised convention
//
//	V(x; A, c, σ, γ) = A · Re w(z) / (σ·√(2π)),  z = (x − c + iγ) / (σ·√2)
//
// Widths enter through their absolute value, so an optimizer that steps
// across zero sees a continuous, even function of each width.
//
// w(z) is computed with Weideman's rational expansion. Its coefficients are
// the FFT of a sampled kernel and are built once per expansion order.
package lineshape
