// Package zeeman maps a field-proportional parameter B to the wavelength
// offset of the σ components of the Balmer-alpha Zeeman triplet.
//
// Two forms of the linear Zeeman law are provided. [Empirical] scales a
// 20.2 Å/MG coefficient, calibrated at 6564 Å, by (λ₀/6564)². [Quadratic]
// uses the textbook 4.67e-13·λ₀²·B[G]. Both take B in MG and agree to
// about 0.4% at Hα.
package zeeman

import (
	"fmt"
	"strings"
)

const (
	// HAlpha is the rest wavelength of Balmer-alpha in Å.
	HAlpha = 6562.8

	// empiricalCoefficient is the σ-component shift in Å per MG at empiricalReference.
	empiricalCoefficient = 20.2
	empiricalReference   = 6564.0

	// quadraticCoefficient is the Zeeman constant in Å⁻¹ G⁻¹ (Δλ in Å for λ in Å).
	quadraticCoefficient = 4.67e-13
	gaussPerMegagauss    = 1e6
)

// Law converts (λ₀, B) to the offset Δλ of the outer components.
type Law interface {
	Name() string
	Shift(lambda0, b float64) float64
}

type empirical struct{}

// Empirical is Δλ = 20.2·(λ₀/6564)²·B with B in MG.
var Empirical Law = empirical{}

func (empirical) Name() string { return "empirical" }

func (empirical) Shift(lambda0, b float64) float64 {
	r := lambda0 / empiricalReference
	return empiricalCoefficient * r * r * b
}

type quadratic struct{}

// Quadratic is Δλ = 4.67e-13·λ₀²·(B·10⁶) with B in MG.
var Quadratic Law = quadratic{}

func (quadratic) Name() string { return "quadratic" }

func (quadratic) Shift(lambda0, b float64) float64 {
	return quadraticCoefficient * lambda0 * lambda0 * b * gaussPerMegagauss
}

// ParseLaw returns the law registered under name. The empty name selects Empirical.
func ParseLaw(name string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "empirical":
		return Empirical, nil
	case "quadratic":
		return Quadratic, nil
	default:
		return nil, fmt.Errorf("zeeman: unknown splitting law %q", name)
	}
}

// Centers returns the σ⁻, π and σ⁺ component centers λ₀−Δλ, λ₀, λ₀+Δλ.
// A nil law selects Empirical.
func Centers(law Law, lambda0, b float64) (minus, center, plus float64) {
	if law == nil {
		law = Empirical
	}

	d := law.Shift(lambda0, b)

	return lambda0 - d, lambda0, lambda0 + d
}
