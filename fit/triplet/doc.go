// Package triplet fits the Zeeman-split Balmer-alpha triplet in a
// continuum-normalised spectrum.
//
// Both models describe absorption as a downward deviation from unity:
//
//	M(x) = 1 − [P(x; σ⁻) + P(x; π) + P(x; σ⁺)]
//
// where the σ± components sit at λ₀ ∓ Δλ(λ₀, B) given by a [zeeman.Law]
// and share amplitude and widths. [Voigt] uses area-normalised Voigt
// profiles; [Lorentzian] uses peak-height Lorentzians and has two fewer
// parameters, which makes it a cheap cross-check on the Voigt fit.
//
// Both models are even in B and in every width, so fitted values are
// reported in canonical form with those parameters non-negative.
package triplet
